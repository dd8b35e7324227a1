// Package region counts rectangle overlaps along one row of the board.
//
// A Region is an incrementally materialized interval partition: the root
// covers the whole row and a node is only split at the endpoint of some
// update, so the boundaries of the tree are the union of all applied
// update endpoints. Updates that cover a node exactly are kept on that
// node as a pending count and pushed down later by Propagate.
package region

import (
	"fmt"
)

// Region covers the columns [start, end).
type Region struct {
	count       int64
	start, end  int64
	left, right *Region
}

func New(start, end int64) *Region {
	return &Region{start: start, end: end}
}

func (r *Region) Start() int64 { return r.start }
func (r *Region) End() int64   { return r.end }

// Count is the pending count of the node. After Propagate it is the final
// overlap count for leaves and zero for inner nodes.
func (r *Region) Count() int64 { return r.count }

func (r *Region) IsLeaf() bool { return r.left == nil }

// Update adds one to every column in [min, max).
func (r *Region) Update(min, max int64) {
	if min < r.start || max > r.end || min >= max {
		panic(fmt.Sprintf("region: update [%d, %d) outside node [%d, %d)", min, max, r.start, r.end))
	}
	r.update(min, max)
}

func (r *Region) update(min, max int64) {
	if min == r.start && max == r.end {
		r.count++
		return
	}
	if r.left == nil {
		// split at whichever endpoint differs from the node bounds
		mid := min
		if min == r.start {
			mid = max
		}
		r.left = &Region{start: r.start, end: mid}
		r.right = &Region{start: mid, end: r.end}
	}
	mid := r.left.end
	switch {
	case max <= mid:
		r.left.update(min, max)
	case min >= mid:
		r.right.update(min, max)
	default:
		r.left.update(min, mid)
		r.right.update(mid, max)
	}
}

// Propagate pushes pending counts down so only leaves hold counts.
func (r *Region) Propagate() {
	if r.left == nil {
		return
	}
	r.left.count += r.count
	r.right.count += r.count
	r.count = 0
	r.left.Propagate()
	r.right.Propagate()
}

// ClockHandSum returns the sum of ClockHand(count) * width over the leaves.
// Propagate must have run first.
func (r *Region) ClockHandSum() int64 {
	if r.left == nil {
		return ClockHand(r.count) * (r.end - r.start)
	}
	if r.count != 0 {
		panic(fmt.Sprintf("region: node [%d, %d) still holds %d pending", r.start, r.end, r.count))
	}
	return r.left.ClockHandSum() + r.right.ClockHandSum()
}

// Leaves calls fn for every leaf from left to right until fn returns false.
func (r *Region) Leaves(fn func(start, end, count int64) bool) bool {
	if r.left == nil {
		return fn(r.start, r.end, r.count)
	}
	return r.left.Leaves(fn) && r.right.Leaves(fn)
}

// Nodes returns the number of nodes in the tree.
func (r *Region) Nodes() int {
	if r.left == nil {
		return 1
	}
	return 1 + r.left.Nodes() + r.right.Nodes()
}

// ClockHand maps an overlap count onto a 12 hour dial, 0 reads as 12.
func ClockHand(count int64) int64 {
	if count < 0 {
		panic(fmt.Sprintf("region: negative overlap count %d", count))
	}
	h := count % 12
	if h == 0 {
		return 12
	}
	return h
}
