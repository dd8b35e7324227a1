package pcd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePoints = []Point{
	{X: 0, Y: 0, Z: 12, R: 0},
	{X: 1, Y: 0, Z: 1, R: 13},
	{X: 2, Y: 3, Z: 11, R: 11},
}

func TestEncodeDecodePcd(t *testing.T) {
	var buf bytes.Buffer
	p := &Pcd{PointCloud: PointCloud{Points: samplePoints}}
	require.NoError(t, p.Encode(&buf))
	assert.Contains(t, buf.String(), "POINTS 3\n")

	got, err := DecodePcd(&buf)
	require.NoError(t, err)
	assert.Equal(t, samplePoints, got.Points)
}

func TestDecodeAscii(t *testing.T) {
	src := strings.Join([]string{
		"# heatmap",
		"VERSION 0.7",
		"FIELDS x y z intensity",
		"SIZE 4 4 4 4",
		"TYPE F F F F",
		"COUNT 1 1 1 1",
		"WIDTH 2",
		"HEIGHT 1",
		"VIEWPOINT 0 0 0 1 0 0 0",
		"POINTS 2",
		"DATA ascii",
		"1 2 3 4",
		"5 6 7 8",
		"",
	}, "\n")
	got, err := DecodePcd(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2, 3, 4}, {5, 6, 7, 8}}, got.Points)
}

// lzfLiterals encodes data as lzf literal runs only.
func lzfLiterals(data []byte) []byte {
	var out []byte
	for len(data) > 0 {
		n := min(len(data), 32)
		out = append(out, byte(n-1))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return out
}

func TestDecodeBinaryCompressed(t *testing.T) {
	// column major: x x x, y y y, z z z, intensity x3
	var cols bytes.Buffer
	for _, get := range []func(Point) float32{
		func(p Point) float32 { return p.X },
		func(p Point) float32 { return p.Y },
		func(p Point) float32 { return p.Z },
		func(p Point) float32 { return p.R },
	} {
		for _, p := range samplePoints {
			binary.Write(&cols, binary.LittleEndian, math.Float32bits(get(p)))
		}
	}
	compressed := lzfLiterals(cols.Bytes())

	var src bytes.Buffer
	src.WriteString("VERSION 0.7\nFIELDS x y z intensity\nSIZE 4 4 4 4\nTYPE F F F F\nCOUNT 1 1 1 1\n")
	fmt.Fprintf(&src, "WIDTH %d\nHEIGHT 1\nVIEWPOINT 0 0 0 1 0 0 0\nPOINTS %d\nDATA binary_compressed\n", len(samplePoints), len(samplePoints))
	binary.Write(&src, binary.LittleEndian, uint32(len(compressed)))
	binary.Write(&src, binary.LittleEndian, uint32(cols.Len()))
	src.Write(compressed)

	got, err := DecodePcd(&src)
	require.NoError(t, err)
	assert.Equal(t, samplePoints, got.Points)
}

func TestDecodeRejectsVersion(t *testing.T) {
	_, err := DecodePcd(strings.NewReader("VERSION 0.6\n"))
	assert.ErrorIs(t, err, ErrUnsupportPcdVersion)
}

func TestBinRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	b := &Bin{PointCloud: PointCloud{Points: samplePoints}}
	require.NoError(t, b.Encode(&buf))
	assert.Equal(t, len(samplePoints)*BinPointDataLen, buf.Len())

	got, err := DecodeBin(&buf)
	require.NoError(t, err)
	assert.Equal(t, samplePoints, got.Points)

	_, err = DecodeBin(bytes.NewReader(make([]byte, 5)))
	assert.ErrorIs(t, err, ErrInvalidDataFormat)
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"map.pcd", "map.bin"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, samplePoints))
		pc, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, samplePoints, pc.Points, name)
	}
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "map.png"), samplePoints), ErrUnsupportFileType)
}
