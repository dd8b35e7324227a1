package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"clockboard/pkg/board"
	"clockboard/pkg/region"
	"clockboard/pkg/sequence"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func bruteBoard(rects []board.Rect, side int64) int64 {
	var sum int64
	for y := int64(0); y < side; y++ {
		for x := int64(0); x < side; x++ {
			var count int64
			for _, r := range rects {
				if r.ContainsX(x) && r.ContainsY(y) {
					count++
				}
			}
			sum += region.ClockHand(count)
		}
	}
	return sum
}

func TestSplitCoversEveryBand(t *testing.T) {
	bands := make([]board.Band, 103)
	for i := range bands {
		bands[i] = board.Band{MinY: int64(i), MaxY: int64(i + 1)}
	}
	for _, n := range []int{1, 2, 7, 50, 103, 500} {
		chunks := Split(bands, n)
		assert.LessOrEqual(t, len(chunks), n)
		var flat []board.Band
		for _, c := range chunks {
			assert.NotEmpty(t, c)
			flat = append(flat, c...)
		}
		assert.Equal(t, bands, flat, "n=%d", n)
	}
	chunks := Split(bands, 50)
	for _, c := range chunks {
		assert.InDelta(t, 2, len(c), 1)
	}
}

func TestSplitDegenerate(t *testing.T) {
	bands := []board.Band{{MinY: 0, MaxY: 5}}
	assert.Len(t, Split(bands, 0), 1)
	assert.Len(t, Split(bands, 10), 1)
}

func TestTinyBoard(t *testing.T) {
	rects := []board.Rect{
		{XMin: 2, XMax: 5, YMin: 1, YMax: 3},
		{XMin: 4, XMax: 8, YMin: 2, YMax: 6},
	}
	const side = 10
	want := bruteBoard(rects, side)
	// 67 empty cells, 29 covered once, 4 covered twice
	require.Equal(t, int64(841), want)

	a := New(side)
	a.Logger = zaptest.NewLogger(t)
	a.Chunks = 3
	assert.Equal(t, want, a.Total(rects, board.Partition(rects, side)))

	a.Strategy = region.SweepRowSum
	assert.Equal(t, want, a.Total(rects, board.Partition(rects, side)))
}

func TestRandomBoardsMatchBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for iter := 0; iter < 30; iter++ {
		side := 1 + rnd.Int63n(25)
		rects := make([]board.Rect, 1+rnd.Intn(12))
		for i := range rects {
			rects[i] = board.Normalize(rnd.Int63n(side), rnd.Int63n(side), rnd.Int63n(side), rnd.Int63n(side))
		}
		a := New(side)
		a.Chunks = 1 + rnd.Intn(5)
		a.Workers = 1 + rnd.Intn(4)
		require.Equal(t, bruteBoard(rects, side), a.Total(rects, board.Partition(rects, side)), "iter %d", iter)
	}
}

func TestRerunIsIdentical(t *testing.T) {
	rects := board.Generate(sequence.Default(), 400)
	bands := board.Partition(rects, board.Side)

	a := New(board.Side)
	a.Workers = 8
	first := a.Total(rects, bands)
	second := a.Total(rects, bands)
	assert.Equal(t, first, second)

	a.Workers = 1
	a.Chunks = 7
	assert.Equal(t, first, a.Total(rects, bands))

	a.Strategy = region.SweepRowSum
	assert.Equal(t, first, a.Total(rects, bands))
}

func TestProgressReported(t *testing.T) {
	rects := board.Generate(sequence.Default(), 100)
	bands := board.Partition(rects, board.Side)

	var seen []Progress
	a := New(board.Side)
	a.Chunks = 6
	a.OnChunk = func(p Progress) { seen = append(seen, p) }
	total := a.Total(rects, bands)

	require.Len(t, seen, 6)
	var sum int64
	var count int
	for i, p := range seen {
		assert.Equal(t, i, p.Chunk)
		assert.Equal(t, 6, p.Chunks)
		sum += p.Subtotal
		count += p.Bands
	}
	assert.Equal(t, total, sum)
	assert.Equal(t, len(bands), count)
}

func TestBandTotalZeroHeight(t *testing.T) {
	a := New(10)
	assert.Equal(t, int64(0), a.BandTotal(nil, board.Band{MinY: 4, MaxY: 4}))
	assert.Equal(t, int64(3*10*12), a.BandTotal(nil, board.Band{MinY: 4, MaxY: 7}))
}
