// Package aggregate sums the clock hands of every band on the board.
package aggregate

import (
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clockboard/pkg/board"
	"clockboard/pkg/region"
)

const DefaultChunks = 50

// Progress is reported once per finished chunk.
type Progress struct {
	Chunk    int // 0-based
	Chunks   int
	Bands    int
	Subtotal int64
	Elapsed  time.Duration
}

type Aggregator struct {
	Side     int64
	Chunks   int
	Workers  int
	Strategy region.Strategy
	Logger   *zap.Logger
	OnChunk  func(Progress)
}

func New(side int64) *Aggregator {
	return &Aggregator{
		Side:     side,
		Chunks:   DefaultChunks,
		Workers:  runtime.GOMAXPROCS(0),
		Strategy: region.RowSum,
		Logger:   zap.NewNop(),
	}
}

// Split cuts bands into at most n contiguous chunks of nearly equal size.
func Split(bands []board.Band, n int) [][]board.Band {
	if n > len(bands) {
		n = len(bands)
	}
	if n < 1 {
		return [][]board.Band{bands}
	}
	chunks := make([][]board.Band, 0, n)
	size, extra := len(bands)/n, len(bands)%n
	for i, lo := 0, 0; i < n; i++ {
		hi := lo + size
		if i < extra {
			hi++
		}
		chunks = append(chunks, bands[lo:hi])
		lo = hi
	}
	return chunks
}

// BandTotal is the clock hand sum of the band's sample row times its height.
func (a *Aggregator) BandTotal(rects []board.Rect, b board.Band) int64 {
	if b.Height() == 0 {
		return 0
	}
	return b.Height() * a.Strategy(rects, a.Side, b.Mid())
}

// Total computes the weighted clock hand sum over all bands. Chunks run one
// after another, the bands inside a chunk run on the worker pool.
func (a *Aggregator) Total(rects []board.Rect, bands []board.Band) int64 {
	chunks := Split(bands, a.Chunks)
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting aggregation",
		zap.Int("bands", len(bands)),
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", a.Workers))

	var total int64
	prev := time.Now()
	for i, chunk := range chunks {
		sub := a.chunkTotal(rects, chunk)
		total += sub

		now := time.Now()
		p := Progress{
			Chunk:    i,
			Chunks:   len(chunks),
			Bands:    len(chunk),
			Subtotal: sub,
			Elapsed:  now.Sub(prev),
		}
		prev = now
		logger.Info("finished chunk",
			zap.Int("chunk", p.Chunk),
			zap.Int("of", p.Chunks),
			zap.Duration("elapsed", p.Elapsed))
		if a.OnChunk != nil {
			a.OnChunk(p)
		}
	}
	return total
}

func (a *Aggregator) chunkTotal(rects []board.Rect, chunk []board.Band) int64 {
	results := make([]int64, len(chunk))
	var g errgroup.Group
	if a.Workers > 0 {
		g.SetLimit(a.Workers)
	}
	for i, b := range chunk {
		g.Go(func() error {
			results[i] = a.BandTotal(rects, b)
			return nil
		})
	}
	// workers never fail; a panic takes the process down
	_ = g.Wait()

	var sum int64
	for _, v := range results {
		sum += v
	}
	return sum
}
