package board

import (
	"slices"
	"sort"
)

// Band is a run of rows [MinY, MaxY) crossed by the same set of rectangles.
type Band struct {
	MinY int64 // inclusive
	MaxY int64 // exclusive
}

func (b Band) Height() int64 {
	return b.MaxY - b.MinY
}

// Mid is the truncated midpoint, the row sampled for the whole band.
func (b Band) Mid() int64 {
	return (b.MinY + b.MaxY) / 2
}

// DivisionPoints returns every YMin and YMax+1, sorted, duplicates kept.
func DivisionPoints(rects []Rect) []int64 {
	points := make([]int64, 0, len(rects)*2)
	for _, r := range rects {
		points = append(points, r.YMin, r.YMax+1)
	}
	slices.Sort(points)
	return points
}

// Partition cuts [0, side) into bands at every division point.
// Duplicate points produce zero height bands.
func Partition(rects []Rect, side int64) []Band {
	points := DivisionPoints(rects)
	bands := make([]Band, 0, len(points)+1)
	prev := int64(0)
	for _, p := range points {
		bands = append(bands, Band{MinY: prev, MaxY: p})
		prev = p
	}
	return append(bands, Band{MinY: prev, MaxY: side})
}

// Locate returns the index of the band holding y, or -1.
// Zero height bands never hold a row.
func Locate(bands []Band, y int64) int {
	i := sort.Search(len(bands), func(i int) bool {
		return bands[i].MaxY > y
	})
	if i == len(bands) || bands[i].MinY > y {
		return -1
	}
	return i
}
