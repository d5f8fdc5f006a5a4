package multiplayer

import (
	"math/rand/v2"

	"github.com/vovakirdan/calc-climb/internal/rng"
)

// Source supplies the coordinator's randomness: room codes, level indices
// and match seeds.
type Source interface {
	// IntN returns a value in [0, n). n is positive.
	IntN(n int) int
}

type randSource struct{}

// NewRandSource returns a Source backed by the runtime's random generator.
func NewRandSource() Source {
	return randSource{}
}

func (randSource) IntN(n int) int {
	return rand.IntN(n) //nolint:gosec // room codes and seeds are not secrets
}

// LCGSource adapts a seeded stream, for reproducible rooms.
type LCGSource struct {
	G *rng.LCG
}

// NewLCGSource returns a reproducible Source.
func NewLCGSource(seed int64) *LCGSource {
	return &LCGSource{G: rng.New(seed)}
}

func (s *LCGSource) IntN(n int) int {
	return s.G.Index(n)
}
