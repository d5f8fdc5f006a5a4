package calcclimb

import "github.com/vovakirdan/calc-climb/internal/calc"

// Snapshot captures the session for determinism checks and replays.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Tier      int
	Seed      int64
	Target    int
	Phase     calc.Phase
	Value     int
	Pending   calc.Op
	PlayerX   float64
	PlayerY   float64
	Remaining int
	Stages    int
	Won       bool
	Over      bool
	Online    bool
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	cs := s.calc.State()
	return Snapshot{
		Tick:      s.tick,
		Mode:      s.mode,
		Tier:      s.level.Tier,
		Seed:      s.level.Seed,
		Target:    s.level.Target,
		Phase:     cs.Phase,
		Value:     cs.Value,
		Pending:   cs.Pending,
		PlayerX:   s.player.Pos.X,
		PlayerY:   s.player.Pos.Y,
		Remaining: s.level.Remaining(),
		Stages:    s.stages,
		Won:       s.won,
		Over:      s.over,
		Online:    s.online,
	}
}
