// Package rng provides the deterministic pseudo-random stream that every
// generated level is a pure function of.
//
// The generator is a 32-bit linear congruential generator (Numerical Recipes
// constants). It is a plain value: copying an LCG forks the stream, and no
// package-level state exists.
package rng

const (
	multiplier = 1664525
	increment  = 1013904223
	maxState   = 0xFFFFFFFF
)

// LCG is a seeded pseudo-random stream.
type LCG struct {
	state uint32
}

// New creates a stream from a seed. Only the low 32 bits of the seed matter.
func New(seed int64) *LCG {
	return &LCG{state: uint32(seed)}
}

// Next advances the stream and returns the raw 32-bit state.
func (g *LCG) Next() uint32 {
	g.state = g.state*multiplier + increment
	return g.state
}

// Float64 returns the next value in [0, 1]. The upper bound is reachable
// (state 0xFFFFFFFF), which the integer helpers clamp.
func (g *LCG) Float64() float64 {
	return float64(g.Next()) / maxState
}

// IntRange returns an integer in [min, max]. When max < min the range is
// empty and min is returned after consuming one draw.
func (g *LCG) IntRange(min, max int) int {
	n := int(g.Float64()*float64(max-min+1)) + min
	if max >= min && n > max {
		n = max
	}
	return n
}

// Index returns an index in [0, n). n must be positive.
func (g *LCG) Index(n int) int {
	i := int(g.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Shuffle permutes n elements in place using Fisher-Yates from the top,
// calling swap(i, j) for every step.
func (g *LCG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.Index(i + 1)
		swap(i, j)
	}
}

// Pick returns a uniformly chosen element of items, which must be non-empty.
func Pick[T any](g *LCG, items []T) T {
	return items[g.Index(len(items))]
}
