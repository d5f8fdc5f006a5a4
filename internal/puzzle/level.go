// Package puzzle generates calc-climb stages: a fixed three-tier layout of
// platforms and ladders populated with number and operator tiles, one
// ordered subset of which always evaluates to the stage target.
package puzzle

import (
	"fmt"
	"math"

	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/core"
)

// Token is the arithmetic content of a tile.
type Token struct {
	Kind  calc.Kind
	Value int
	Op    calc.Op
}

func (t Token) String() string {
	if t.Kind == calc.KindOperator {
		return t.Op.String()
	}
	return fmt.Sprintf("%d", t.Value)
}

// Tile is a collectible placed in the level. ID is the tile's index in
// Level.Tiles and never changes.
type Tile struct {
	ID        int
	Kind      calc.Kind
	Value     int
	Op        calc.Op
	Pos       core.Vec
	Collected bool
	BobPhase  float64
}

// Token returns the tile's arithmetic content.
func (t Tile) Token() Token {
	return Token{Kind: t.Kind, Value: t.Value, Op: t.Op}
}

// Rect returns the tile's collision box.
func (t Tile) Rect() core.Rect {
	return core.RectAt(t.Pos, TileSize, TileSize)
}

// Glyph returns the single character used to draw the tile.
func (t Tile) Glyph() rune {
	if t.Kind == calc.KindOperator {
		return t.Op.ASCII()
	}
	return rune('0' + t.Value)
}

// bobPhase spreads tiles over the bob cycle without consuming randomness.
func bobPhase(id int) float64 {
	return math.Mod(float64(id)*2.399963, 2*math.Pi)
}

// Level is a generated stage. Regenerating with the same tier and seed
// yields an identical value.
type Level struct {
	Tier        int
	Seed        int64
	Target      int
	Platforms   []core.Rect
	Ladders     []core.Rect
	Tiles       []Tile
	PlayerStart core.Vec
}

// Remaining returns the number of uncollected tiles.
func (l *Level) Remaining() int {
	n := 0
	for _, t := range l.Tiles {
		if !t.Collected {
			n++
		}
	}
	return n
}

// Collect marks a tile collected. It reports false when the id is unknown
// or the tile was already collected.
func (l *Level) Collect(id int) bool {
	if id < 0 || id >= len(l.Tiles) || l.Tiles[id].Collected {
		return false
	}
	l.Tiles[id].Collected = true
	return true
}

// FindTile locates the uncollected tile at pos carrying tok. It backs claims
// from peers that identify tiles by position and content.
func (l *Level) FindTile(pos core.Vec, tok Token) (int, bool) {
	for _, t := range l.Tiles {
		if t.Collected || t.Pos != pos || t.Kind != tok.Kind {
			continue
		}
		if t.Kind == calc.KindNumber && t.Value != tok.Value {
			continue
		}
		if t.Kind == calc.KindOperator && t.Op != tok.Op {
			continue
		}
		return t.ID, true
	}
	return 0, false
}
