package calcclimb

import "github.com/vovakirdan/calc-climb/internal/multiplayer"

// Event is something the session produced during a tick that the platform
// must forward or record. Drain them with DrainEvents after each Step.
type Event interface {
	calcEvent()
}

// StateSyncEvent carries the local snapshot due for relay to the opponent.
type StateSyncEvent struct {
	State multiplayer.PlayerState
}

func (StateSyncEvent) calcEvent() {}

// TileClaimEvent announces a tile the local player collected online.
type TileClaimEvent struct {
	Claim multiplayer.TileClaim
}

func (TileClaimEvent) calcEvent() {}

// WonEvent means the local player reached the target in an online match.
// The coordinator decides whether it counts.
type WonEvent struct{}

func (WonEvent) calcEvent() {}

// StageClearedEvent reports a solo stage clear.
type StageClearedEvent struct {
	Tier   int
	Seed   int64
	Stages int // stages cleared in this run, including this one
}

func (StageClearedEvent) calcEvent() {}
