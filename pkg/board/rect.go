package board

import (
	"fmt"

	"clockboard/pkg/sequence"
)

const (
	// Side is the width and height of the board.
	Side = 50515093
	// RectCount is the number of rectangles stamped on the board.
	RectCount = 100_000
)

const (
	OffsetXA = 0
	OffsetXB = 1
	OffsetYA = 2
	OffsetYB = 3

	StreamPerRect = 4
)

// Rect is an axis aligned rectangle, all bounds inclusive.
type Rect struct {
	XMin, XMax int64
	YMin, YMax int64
}

func Normalize(xa, xb, ya, yb int64) Rect {
	if xb < xa {
		xa, xb = xb, xa
	}
	if yb < ya {
		ya, yb = yb, ya
	}
	return Rect{XMin: xa, XMax: xb, YMin: ya, YMax: yb}
}

func (r Rect) ContainsY(y int64) bool {
	return r.YMin <= y && y <= r.YMax
}

func (r Rect) ContainsX(x int64) bool {
	return r.XMin <= x && x <= r.XMax
}

// FromStream builds n rectangles, rectangle t (1-based) taking the stream
// values at 4(t-1) ... 4(t-1)+3 as xa, xb, ya, yb.
func FromStream(stream []int64, n int) []Rect {
	if len(stream) < n*StreamPerRect {
		panic(fmt.Sprintf("board: stream of %d values is too short for %d rectangles", len(stream), n))
	}
	rects := make([]Rect, n)
	for t := range rects {
		s := stream[t*StreamPerRect : (t+1)*StreamPerRect]
		rects[t] = Normalize(s[OffsetXA], s[OffsetXB], s[OffsetYA], s[OffsetYB])
	}
	return rects
}

func Generate(g sequence.Generator, n int) []Rect {
	return FromStream(g.Table(n*StreamPerRect), n)
}

// Default returns the rectangles of the fixed board.
func Default() []Rect {
	return Generate(sequence.Default(), RectCount)
}
