// Package multiplayer pairs two sessions into a room, hands both the same
// level seed and relays their self-reported state. The coordinator never
// simulates a match; it only arbitrates who reached the target first.
package multiplayer

import (
	"strings"

	"github.com/vovakirdan/calc-climb/internal/calc"
)

// SessionID uniquely identifies a connected peer (SSH session or websocket).
type SessionID string

// RoomPhase is the lifecycle state of a room.
type RoomPhase int

const (
	PhaseWaiting RoomPhase = iota
	PhasePlaying
	PhaseFinished
)

func (p RoomPhase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// GameResult is the per-peer outcome of a match.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLose GameResult = "lose"
)

// PlayerState is a peer's self-reported avatar and calculator snapshot.
// It is relayed without validation.
type PlayerState struct {
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	FacingRight bool       `json:"facingRight"`
	WalkPhase   float64    `json:"walkPhase"`
	Value       int        `json:"currentValue"`
	Pending     calc.Op    `json:"pendingOperator"`
	CalcPhase   calc.Phase `json:"calcPhase"`
}

// TileClaim announces that a peer collected a tile. ID is the stable tile
// index; position and content let older clients match by value.
type TileClaim struct {
	ID    int       `json:"id"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Kind  calc.Kind `json:"kind"`
	Value int       `json:"value,omitempty"`
	Op    calc.Op   `json:"op,omitempty"`
}

// Room code alphabet: no 0/O or 1/I.
const (
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 5
)

// NormalizeCode upper-cases and trims a user-typed room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
