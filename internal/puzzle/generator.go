package puzzle

import (
	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/rng"
)

const decoyNumberChance = 0.65

// Generate builds the level for a tier and seed. Tiers are clamped to
// [0, MaxTier]. It never fails.
func Generate(tier int, seed int64) Level {
	tier = core.Clamp(tier, 0, MaxTier)
	g := rng.New(seed)

	sol, target := buildChain(g, tier)

	spots := DropSpots()
	g.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })

	return Level{
		Tier:        tier,
		Seed:        seed,
		Target:      target,
		Platforms:   Platforms(),
		Ladders:     Ladders(),
		Tiles:       placeTiles(g, sol.tokens(), spots),
		PlayerStart: PlayerStart(),
	}
}

// placeTiles fills spots in order: the solution tokens first (as many as
// fit), then one decoy per remaining spot.
func placeTiles(g *rng.LCG, solution []Token, spots []core.Vec) []Tile {
	tiles := make([]Tile, 0, len(spots))
	for i, pos := range spots {
		var tok Token
		if i < len(solution) {
			tok = solution[i]
		} else {
			tok = decoy(g)
		}
		tiles = append(tiles, Tile{
			ID:       i,
			Kind:     tok.Kind,
			Value:    tok.Value,
			Op:       tok.Op,
			Pos:      pos,
			BobPhase: bobPhase(i),
		})
	}
	return tiles
}

func decoy(g *rng.LCG) Token {
	if g.Float64() < decoyNumberChance {
		return Token{Kind: calc.KindNumber, Value: g.IntRange(1, 9)}
	}
	return Token{Kind: calc.KindOperator, Op: rng.Pick(g, calc.AllOps)}
}
