package sequence

const (
	// Seed is s_0 of the stream.
	Seed = 290797
	// Modulus is applied after every squaring. It equals the board side.
	Modulus = 50515093
)

// Generator produces s_0 = Seed, s_{i+1} = s_i*s_i mod Modulus.
// Values stay below Modulus, so the square always fits in int64.
type Generator struct {
	Seed    int64
	Modulus int64
}

func Default() Generator {
	return Generator{Seed: Seed, Modulus: Modulus}
}

func Next(s, m int64) int64 {
	return (s * s) % m
}

// Table returns s_0 ... s_{n-1}.
func (g Generator) Table(n int) []int64 {
	vals := make([]int64, n)
	s := g.Seed
	for i := range vals {
		vals[i] = s
		s = Next(s, g.Modulus)
	}
	return vals
}

// At returns s_i without keeping the stream around.
func (g Generator) At(i int) int64 {
	s := g.Seed
	for ; i > 0; i-- {
		s = Next(s, g.Modulus)
	}
	return s
}
