package pcd

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

const (
	BinPointDataLen = 4 * 4
)

var (
	ErrInvalidDataFormat = errors.New("invalid data")
)

// Bin is a headerless stream of little endian float32 x, y, z, r.
type Bin struct {
	PointCloud
}

func DecodeBin(r io.Reader) (bin *Bin, err error) {
	bin = &Bin{}
	var data = make([]byte, BinPointDataLen)
	for {
		_, err = io.ReadFull(r, data)
		if err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			if err == io.ErrUnexpectedEOF {
				err = ErrInvalidDataFormat
			}
			return
		}
		bin.AddPoint(Point{
			X: math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(data[4:8])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(data[8:12])),
			R: math.Float32frombits(binary.LittleEndian.Uint32(data[12:16])),
		})
	}
	return
}

func (bin *Bin) Encode(w io.Writer) error {
	for _, p := range bin.Points {
		if err := writePoint(w, p); err != nil {
			return err
		}
	}
	return nil
}

func (bin *Bin) ToPcd() (*Pcd, error) {
	return &Pcd{
		PointCloud: bin.PointCloud,
	}, nil
}

func writePoint(w io.Writer, p Point) error {
	var buf [BinPointDataLen]byte
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(p.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(p.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(p.Z))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(p.R))
	_, err := w.Write(buf[:])
	return err
}
