// Package physics moves a single avatar through static platform and ladder
// geometry. Everything is a total function of the avatar, the world and the
// intents for one tick.
package physics

import "github.com/vovakirdan/calc-climb/internal/core"

// Params holds the tuning constants, in world units per tick.
type Params struct {
	Gravity     float64
	MaxFall     float64
	RunSpeed    float64
	JumpImpulse float64 // negative is up
	ClimbSpeed  float64
	LadderCreep float64
	FallMargin  float64 // distance below the world before FellOut
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Gravity:     0.6,
		MaxFall:     12,
		RunSpeed:    4.5,
		JumpImpulse: -14,
		ClimbSpeed:  3.5,
		LadderCreep: 1.5,
		FallMargin:  100,
	}
}

// World is the static geometry an avatar moves through.
type World struct {
	Width, Height float64
	Platforms     []core.Rect
	Ladders       []core.Rect
}

// Pickup is a collectible box tested for overlap after movement.
type Pickup struct {
	ID  int
	Box core.Rect
}

// Intents are the held inputs for one tick.
type Intents struct {
	Left, Right, Up, Down, Jump bool
}

// IntentsFrom maps an input frame onto movement intents.
func IntentsFrom(f core.InputFrame) Intents {
	return Intents{
		Left:  f.Has(core.ActionLeft),
		Right: f.Has(core.ActionRight),
		Up:    f.Has(core.ActionUp),
		Down:  f.Has(core.ActionDown),
		Jump:  f.Has(core.ActionJump),
	}
}

// dir returns -1, 0 or 1. Right wins when both are held.
func (in Intents) dir() float64 {
	switch {
	case in.Right:
		return 1
	case in.Left:
		return -1
	default:
		return 0
	}
}

// Avatar is a moving body. Pos is the top-left corner.
type Avatar struct {
	Pos         core.Vec
	Vel         core.Vec
	W, H        float64
	FacingRight bool
	OnGround    bool
	OnLadder    bool
	WalkPhase   float64
}

// NewAvatar places a resting avatar at pos, facing right.
func NewAvatar(pos core.Vec, w, h float64) Avatar {
	return Avatar{Pos: pos, W: w, H: h, FacingRight: true}
}

// Rect returns the avatar's collision box.
func (a *Avatar) Rect() core.Rect {
	return core.RectAt(a.Pos, a.W, a.H)
}

// Result reports what happened during a tick.
type Result struct {
	FellOut bool
	Touched []int // pickup IDs overlapping after the move, in pickup order
}
