package pcd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportFileType = errors.New("unsupport pointCloud fileType")
)

// Point is one heatmap sample. X and Y are grid indexes, Z is the clock
// hand and R the raw overlap count.
type Point struct {
	X, Y, Z float32
	R       float32
}

type PointCloud struct {
	Points []Point
}

func (p *PointCloud) AddPoint(pt Point) {
	p.Points = append(p.Points, pt)
}

func (p *PointCloud) PointCount() int {
	return len(p.Points)
}

// WriteFile encodes points as .pcd or .bin depending on the extension.
func WriteFile(path string, points []Point) (err error) {
	var enc interface{ Encode(io.Writer) error }
	pc := PointCloud{Points: points}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcd":
		enc = &Pcd{PointCloud: pc}
	case ".bin":
		enc = &Bin{PointCloud: pc}
	default:
		return ErrUnsupportFileType
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return enc.Encode(f)
}

// ReadFile decodes a .pcd or .bin file.
func ReadFile(path string) (*PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcd":
		p, err := DecodePcd(f)
		if err != nil {
			return nil, err
		}
		return &p.PointCloud, nil
	case ".bin":
		b, err := DecodeBin(f)
		if err != nil {
			return nil, err
		}
		return &b.PointCloud, nil
	default:
		return nil, ErrUnsupportFileType
	}
}
