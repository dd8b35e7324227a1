package pcd

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	lzf "github.com/zhuyie/golzf"
)

var (
	ErrUnsupportPcdVersion   = errors.New("unsupport pcd version")
	ErrUnsupportPcdFieldSize = errors.New("unsupport pcd field size")
	ErrUnsupportPcdFieldType = errors.New("unsupport pcd field type")
	ErrUnsupportPcdDataType  = errors.New("unsupport pcd data type")
	ErrInvalidPcdFormat      = errors.New("invalid pcd format")
)

// header lines following VERSION, in file order
const headerLines = 9

type Pcd struct {
	PointCloud
}

type layout struct {
	fields map[string]int
	sizes  []int
	counts []int
	types  []string
}

func DecodePcd(r io.Reader) (pcd *Pcd, err error) {
	bio := bufio.NewReader(r)
	var version string
	for {
		version, err = bio.ReadString('\n')
		if err != nil {
			return
		}
		if !strings.HasPrefix(version, "#") {
			break
		}
	}

	if !strings.HasPrefix(version, "VERSION 0.7") {
		return nil, ErrUnsupportPcdVersion
	}

	var headers = map[string][]string{}
	for i := 0; i < headerLines; i++ {
		header, err := bio.ReadString('\n')
		if err != nil {
			return nil, err
		}
		h := strings.Fields(header)
		if len(h) < 1 {
			return nil, ErrInvalidPcdFormat
		}
		headers[h[0]] = h[1:]
	}

	l := layout{fields: map[string]int{}, types: headers["TYPE"]}
	for i, f := range headers["FIELDS"] {
		l.fields[f] = i
	}
	if l.sizes, err = getIntHeaders(headers, "SIZE"); err != nil {
		return
	}
	if l.counts, err = getIntHeaders(headers, "COUNT"); err != nil {
		return
	}
	if len(l.fields) != len(l.sizes) || len(l.fields) != len(l.types) || len(l.fields) != len(l.counts) {
		return nil, ErrInvalidPcdFormat
	}

	if len(headers["DATA"]) != 1 {
		return nil, ErrInvalidPcdFormat
	}
	dataType := strings.ToLower(headers["DATA"][0])

	if len(headers["WIDTH"]) != 1 || len(headers["HEIGHT"]) != 1 {
		return nil, ErrInvalidPcdFormat
	}
	width, _ := strconv.Atoi(headers["WIDTH"][0])
	height, _ := strconv.Atoi(headers["HEIGHT"][0])

	pcd = &Pcd{
		PointCloud: PointCloud{
			Points: make([]Point, 0, width*height),
		},
	}
	switch dataType {
	case "binary":
		err = pcd.LoadBinPoints(bio, l)
	case "ascii":
		err = pcd.LoadAsciiPoints(bio, l)
	case "binary_compressed":
		err = pcd.LoadBinCompressedPoints(bio, width*height, l)
	default:
		return nil, ErrUnsupportPcdDataType
	}
	if err != nil {
		return nil, err
	}
	return
}

const (
	BinaryCompressedSize = 8
)

func (l layout) pointSize() int {
	var size int
	for i := range l.sizes {
		size += l.sizes[i] * l.counts[i]
	}
	return size
}

// LoadBinCompressedPoints reads the lzf block of a binary_compressed file.
// The payload is column major: all x, then all y and so on.
func (pcd *Pcd) LoadBinCompressedPoints(r io.Reader, points int, l layout) (err error) {
	compressedSizesRaw := make([]byte, BinaryCompressedSize)
	if _, err = io.ReadFull(r, compressedSizesRaw); err != nil {
		return
	}
	compressedSize := binary.LittleEndian.Uint32(compressedSizesRaw[:4])
	uncompressedSize := binary.LittleEndian.Uint32(compressedSizesRaw[4:])
	if uncompressedSize != uint32(points*l.pointSize()) {
		return ErrInvalidPcdFormat
	}

	raw := make([]byte, compressedSize)
	if _, err = io.ReadFull(r, raw); err != nil {
		return
	}
	uncompressed := make([]byte, uncompressedSize)
	n, err := lzf.Decompress(raw, uncompressed)
	if err != nil {
		return fmt.Errorf("lzf: %w", err)
	}
	if n != int(uncompressedSize) {
		return ErrInvalidPcdFormat
	}

	// transpose to row major and reuse the binary reader
	rowMajor := make([]byte, len(uncompressed))
	size := l.pointSize()
	colOffset, rowOffset := 0, 0
	for i := range l.sizes {
		w := l.sizes[i] * l.counts[i]
		for p := 0; p < points; p++ {
			copy(rowMajor[p*size+rowOffset:p*size+rowOffset+w], uncompressed[colOffset+p*w:colOffset+(p+1)*w])
		}
		colOffset += points * w
		rowOffset += w
	}
	return pcd.LoadBinPoints(bytes.NewReader(rowMajor), l)
}

func (pcd *Pcd) LoadBinPoints(r io.Reader, l layout) (err error) {
	for _, f := range []string{"x", "y", "z"} {
		if err = checkfield(l, f); err != nil {
			return
		}
	}
	_, xb, xe := getfieldIndexAndOffset(l, "x")
	_, yb, ye := getfieldIndexAndOffset(l, "y")
	_, zb, ze := getfieldIndexAndOffset(l, "z")
	ri, rb, re := getfieldIndexAndOffset(l, "intensity")
	if ri >= 0 && checkfield(l, "intensity") != nil {
		ri = -1
	}

	bs := make([]byte, l.pointSize())
	for {
		_, err = io.ReadFull(r, bs)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		pt := Point{
			X: math.Float32frombits(binary.LittleEndian.Uint32(bs[xb:xe])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(bs[yb:ye])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(bs[zb:ze])),
			R: 1,
		}
		if ri >= 0 {
			pt.R = math.Float32frombits(binary.LittleEndian.Uint32(bs[rb:re]))
		}
		pcd.AddPoint(pt)
	}
	return nil
}

func (pcd *Pcd) LoadAsciiPoints(r *bufio.Reader, l layout) error {
	xi, _, _ := getfieldIndexAndOffset(l, "x")
	yi, _, _ := getfieldIndexAndOffset(l, "y")
	zi, _, _ := getfieldIndexAndOffset(l, "z")
	ri, _, _ := getfieldIndexAndOffset(l, "intensity")
	if !(xi >= 0 && yi >= 0 && zi >= 0) {
		return ErrInvalidPcdFormat
	}
	var n int
	for _, c := range l.counts {
		n += c
	}
	fs := make([]float64, 0, n)
	for {
		fs = fs[:0]
		err := AsciiGetFloats(r, &fs)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if len(fs) != n {
			return ErrInvalidPcdFormat
		}
		pt := Point{
			X: float32(fs[xi]),
			Y: float32(fs[yi]),
			Z: float32(fs[zi]),
			R: 1,
		}
		if ri >= 0 {
			pt.R = float32(fs[ri])
		}
		pcd.AddPoint(pt)
	}
	return nil
}

func (pcd *Pcd) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("# .PCD v0.7 - Point Cloud Data file format\n")
	bw.WriteString("VERSION 0.7\n")
	bw.WriteString("FIELDS x y z intensity\n")
	bw.WriteString("SIZE 4 4 4 4\n")
	bw.WriteString("TYPE F F F F\n")
	bw.WriteString("COUNT 1 1 1 1\n")
	fmt.Fprintf(bw, "WIDTH %d\n", len(pcd.Points))
	bw.WriteString("HEIGHT 1\n")
	bw.WriteString("VIEWPOINT 0 0 0 1 0 0 0\n")
	fmt.Fprintf(bw, "POINTS %d\n", len(pcd.Points))
	bw.WriteString("DATA binary\n")
	for _, p := range pcd.Points {
		if err := writePoint(bw, p); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func getIntHeaders(headers map[string][]string, field string) ([]int, error) {
	vals := []int{}
	for _, v := range headers[field] {
		vi, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid int field %s: %w", field, ErrInvalidPcdFormat)
		}
		vals = append(vals, vi)
	}
	return vals, nil
}

func checkfield(l layout, field string) error {
	i, ok := l.fields[field]
	if !ok {
		return ErrInvalidPcdFormat
	}
	if l.sizes[i] != 4 {
		return ErrUnsupportPcdFieldSize
	}
	if l.types[i] != "F" {
		return ErrUnsupportPcdFieldType
	}
	return nil
}

// getfieldIndexAndOffset returns the value index of field and its byte range
// inside one point, idx is -1 when the field is missing.
func getfieldIndexAndOffset(l layout, field string) (idx, begin, end int) {
	idx = -1
	id, ok := l.fields[field]
	if !ok {
		return
	}
	idx = 0
	for i := 0; i < id; i++ {
		idx += l.counts[i]
		begin += l.sizes[i] * l.counts[i]
	}
	end = begin + l.sizes[id]*l.counts[id]
	return
}

func AsciiGetFloats(r *bufio.Reader, fs *[]float64) (err error) {
	line, _, err := r.ReadLine()
	if err != nil {
		return
	}
	var v float64
	for _, r := range strings.Fields(string(line)) {
		v, err = strconv.ParseFloat(r, 64)
		if err != nil {
			return
		}
		*fs = append(*fs, v)
	}
	return
}
