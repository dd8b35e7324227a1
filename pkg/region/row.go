package region

import (
	"errors"
	"fmt"

	"github.com/tidwall/btree"

	"clockboard/pkg/board"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy computes the clock hand sum of row y.
type Strategy func(rects []board.Rect, side, y int64) int64

var strategies = map[string]Strategy{
	"tree":  RowSum,
	"sweep": SweepRowSum,
}

func ParseStrategy(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Row builds the propagated tree of row y.
func Row(rects []board.Rect, side, y int64) *Region {
	root := New(0, side)
	for _, r := range rects {
		if !r.ContainsY(y) {
			continue
		}
		root.Update(r.XMin, r.XMax+1)
	}
	root.Propagate()
	return root
}

func RowSum(rects []board.Rect, side, y int64) int64 {
	return Row(rects, side, y).ClockHandSum()
}

// SweepRowSum computes the same value as RowSum from an ordered map of
// count deltas keyed by column.
func SweepRowSum(rects []board.Rect, side, y int64) int64 {
	var deltas btree.Map[int64, int64]
	deltas.Set(0, 0)
	for _, r := range rects {
		if !r.ContainsY(y) {
			continue
		}
		d, _ := deltas.Get(r.XMin)
		deltas.Set(r.XMin, d+1)
		d, _ = deltas.Get(r.XMax + 1)
		deltas.Set(r.XMax+1, d-1)
	}
	if _, ok := deltas.Get(side); !ok {
		deltas.Set(side, 0)
	}

	var sum, count, prev int64
	deltas.Scan(func(x, d int64) bool {
		if x > side {
			return false
		}
		sum += ClockHand(count) * (x - prev)
		count += d
		prev = x
		return true
	})
	return sum
}
