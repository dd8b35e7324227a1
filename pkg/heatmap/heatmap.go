// Package heatmap samples the board on a regular grid.
package heatmap

import (
	"fmt"

	"clockboard/pkg/board"
	"clockboard/pkg/pcd"
	"clockboard/pkg/region"
)

// Sample evaluates every grid point (i*step, j*step) inside the board.
// Points carry grid indexes in X and Y, the clock hand in Z and the
// overlap count in R.
func Sample(rects []board.Rect, side, step int64) []pcd.Point {
	if step <= 0 {
		panic(fmt.Sprintf("heatmap: step %d must be positive", step))
	}
	cols := (side + step - 1) / step
	points := make([]pcd.Point, 0, cols*cols)
	for j := int64(0); j*step < side; j++ {
		row := region.Row(rects, side, j*step)
		i := int64(0)
		row.Leaves(func(start, end, count int64) bool {
			for ; i*step < end; i++ {
				points = append(points, pcd.Point{
					X: float32(i),
					Y: float32(j),
					Z: float32(region.ClockHand(count)),
					R: float32(count),
				})
			}
			return i*step < side
		})
	}
	return points
}
