// Package calcclimb is the calc-climb game session: one level, one
// calculator, the local avatar and, online, a mirror of the opponent.
package calcclimb

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/config"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/multiplayer"
	"github.com/vovakirdan/calc-climb/internal/physics"
	"github.com/vovakirdan/calc-climb/internal/puzzle"
	"github.com/vovakirdan/calc-climb/internal/registry"
	"github.com/vovakirdan/calc-climb/internal/rng"
)

// Mode selects how stages follow each other in a solo run.
type Mode string

const (
	ModeCampaign Mode = "campaign" // tier rises with each clear
	ModePractice Mode = "practice" // tier stays, seed changes
)

const flashTicks = 90

var (
	configMu      sync.RWMutex
	packageConfig = config.DefaultCalcClimbConfig()
)

// SetConfig replaces the configuration used by registry-created sessions.
func SetConfig(cfg config.CalcClimbConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	packageConfig = cfg
}

func currentConfig() config.CalcClimbConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return packageConfig
}

func init() {
	registry.Register("calc", func() registry.Game {
		return New()
	})
	registry.Register("calc_practice", func() registry.Game {
		return NewPractice()
	})
}

// Session owns everything one player needs to play a stage.
type Session struct {
	mode       Mode
	cfg        config.CalcClimbConfig
	difficulty *config.DifficultyManager
	seeds      *rng.LCG

	level    puzzle.Level
	resolver *physics.Resolver
	calc     *calc.Calculator
	player   physics.Avatar

	online               bool
	opponent             *multiplayer.PlayerState
	opponentClaims       []int
	result               multiplayer.GameResult
	opponentLeft         bool
	opponentWantsRematch bool
	rematchSent          bool

	tick      uint64
	lastSync  uint64
	syncTicks uint64

	stages int
	won    bool
	over   bool
	paused bool

	flash      string
	flashColor core.Color
	flashLeft  int

	screenW, screenH int

	events []Event
}

// New creates a campaign session with the package configuration.
func New() *Session {
	return NewSession(ModeCampaign, currentConfig())
}

// NewPractice creates a practice session with the package configuration.
func NewPractice() *Session {
	return NewSession(ModePractice, currentConfig())
}

// NewSession creates a session. Call Reset or one of the Start methods
// before stepping it.
func NewSession(mode Mode, cfg config.CalcClimbConfig) *Session {
	return &Session{
		mode: mode,
		cfg:  cfg,
		calc: calc.New(),
	}
}

// ID returns the mode identifier.
func (s *Session) ID() string {
	if s.mode == ModePractice {
		return "calc_practice"
	}
	return "calc"
}

// Title returns the display name.
func (s *Session) Title() string {
	if s.mode == ModePractice {
		return "Calc Climb (Practice)"
	}
	return "Calc Climb"
}

// Reset starts a solo run at the configured start tier. The first stage is
// generated from cfg.Seed; later stages draw their seeds from it.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	s.screenW, s.screenH = cfg.ScreenW, cfg.ScreenH
	s.syncTicks = syncInterval(s.cfg.Network.StateSyncMs, cfg.TickRate)
	s.seeds = rng.New(cfg.Seed)
	s.tick = 0
	s.lastSync = 0
	s.beginRun(s.cfg.Difficulty.StartTier)
	s.start(s.difficulty.StartTier(), cfg.Seed)
}

// StartLocal begins a new solo run at tier with a fresh seed.
func (s *Session) StartLocal(tier int) {
	s.ensureSeeds()
	s.beginRun(tier)
	s.start(s.difficulty.StartTier(), s.nextSeed())
}

// StartOnline begins a match stage. levelIndex doubles as the tier.
func (s *Session) StartOnline(levelIndex int, seed int64) {
	s.ensureSeeds()
	s.online = true
	s.opponent = nil
	s.opponentClaims = nil
	s.result = ""
	s.opponentLeft = false
	s.opponentWantsRematch = false
	s.rematchSent = false
	s.start(levelIndex, seed)
}

// Restart regenerates the current tier from seed and starts over. Tiles the
// opponent already claimed stay claimed.
func (s *Session) Restart(seed int64) {
	claims := s.opponentClaims
	s.start(s.level.Tier, seed)
	for _, id := range claims {
		s.level.Collect(id)
	}
	s.opponentClaims = claims
}

func (s *Session) beginRun(tier int) {
	s.online = false
	s.opponent = nil
	s.opponentClaims = nil
	s.result = ""
	s.stages = 0
	s.difficulty = config.NewDifficultyManager(config.DifficultyConfig{
		StartTier:   tier,
		MaxTier:     s.cfg.Difficulty.MaxTier,
		Progression: s.mode == ModeCampaign && s.cfg.Difficulty.Progression,
	})
}

func (s *Session) start(tier int, seed int64) {
	s.level = puzzle.Generate(tier, seed)
	s.resolver = physics.NewResolver(physicsParams(s.cfg.Physics), physics.World{
		Width:     puzzle.Width,
		Height:    puzzle.Height,
		Platforms: s.level.Platforms,
		Ladders:   s.level.Ladders,
	})
	s.calc.Reset()
	s.player = physics.NewAvatar(s.level.PlayerStart, puzzle.PlayerW, puzzle.PlayerH)
	s.opponentClaims = nil
	s.won = false
	s.over = false
	s.paused = false
	s.flash = ""
	s.flashLeft = 0
}

func (s *Session) ensureSeeds() {
	if s.seeds == nil {
		s.seeds = rng.New(0)
	}
	if s.syncTicks == 0 {
		s.syncTicks = syncInterval(s.cfg.Network.StateSyncMs, 0)
	}
}

func (s *Session) nextSeed() int64 {
	return int64(s.seeds.IntRange(0, multiplayer.MaxSeedValue-1))
}

// Step advances one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.tick++
	if s.flashLeft > 0 {
		s.flashLeft--
		if s.flashLeft == 0 {
			s.flash = ""
		}
	}

	if in.Has(core.ActionPause) && !s.online && !s.over {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if s.over {
		if in.Has(core.ActionNext) && s.won && !s.online {
			s.advance()
		}
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionRestart) {
		s.Restart(s.level.Seed)
		s.setFlash("restarted", core.ColorHint)
		return core.StepResult{State: s.State()}
	}

	res := s.resolver.Step(&s.player, physics.IntentsFrom(in), s.pickups(), s.opponentRect())
	if res.FellOut {
		s.Restart(s.level.Seed)
		s.setFlash("fell off! same stage again", core.ColorRed)
		return core.StepResult{State: s.State()}
	}

	for _, id := range res.Touched {
		if s.collect(id) {
			break
		}
	}

	if s.online && s.tick-s.lastSync >= s.syncTicks {
		s.lastSync = s.tick
		s.emit(StateSyncEvent{State: s.PlayerState()})
	}

	return core.StepResult{State: s.State()}
}

// collect feeds a touched tile to the calculator and reports whether the
// stage ended.
func (s *Session) collect(id int) bool {
	t := s.level.Tiles[id]
	out := s.calc.Feed(t.Kind, t.Value, t.Op)
	if !out.Accepted {
		return false
	}
	s.level.Collect(id)
	s.setFlash(out.Expr, tileColor(t))

	if s.online {
		s.emit(TileClaimEvent{Claim: claimFor(t)})
	}
	if !s.calc.Reached(s.level.Target) {
		return false
	}

	s.won = true
	s.over = true
	if s.online {
		s.lastSync = s.tick
		s.emit(StateSyncEvent{State: s.PlayerState()})
		s.emit(WonEvent{})
		return true
	}
	s.stages++
	s.emit(StageClearedEvent{Tier: s.level.Tier, Seed: s.level.Seed, Stages: s.stages})
	return true
}

func (s *Session) advance() {
	s.start(s.difficulty.Tier(s.stages), s.nextSeed())
}

func (s *Session) pickups() []physics.Pickup {
	out := make([]physics.Pickup, 0, len(s.level.Tiles))
	for _, t := range s.level.Tiles {
		if !t.Collected {
			out = append(out, physics.Pickup{ID: t.ID, Box: t.Rect()})
		}
	}
	return out
}

func (s *Session) opponentRect() *core.Rect {
	if !s.online || s.opponent == nil {
		return nil
	}
	r := core.NewRect(s.opponent.X, s.opponent.Y, puzzle.PlayerW, puzzle.PlayerH)
	return &r
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) setFlash(msg string, c core.Color) {
	s.flash = msg
	s.flashColor = c
	s.flashLeft = flashTicks
}

// DrainEvents returns and clears the events produced since the last call.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

// ApplyOpponentState replaces the opponent mirror with the latest snapshot.
func (s *Session) ApplyOpponentState(st multiplayer.PlayerState) {
	if !s.online {
		return
	}
	s.opponent = &st
}

// ApplyTileClaimed marks a tile the opponent collected. The stable ID is
// tried first and must agree with position and content; otherwise the claim
// falls back to position and content alone. A claim without an id decodes
// as ID 0, so the ID by itself proves nothing. It reports whether a tile changed state.
func (s *Session) ApplyTileClaimed(c multiplayer.TileClaim) bool {
	id := c.ID
	if !s.claimMatches(c) {
		found, ok := s.level.FindTile(core.Vec{X: c.X, Y: c.Y}, puzzle.Token{Kind: c.Kind, Value: c.Value, Op: c.Op})
		if !ok {
			return false
		}
		id = found
	}
	if !s.level.Collect(id) {
		return false
	}
	s.opponentClaims = append(s.opponentClaims, id)
	s.setFlash(fmt.Sprintf("opponent took %c", s.level.Tiles[id].Glyph()), core.ColorOpponent)
	return true
}

func (s *Session) claimMatches(c multiplayer.TileClaim) bool {
	if c.ID < 0 || c.ID >= len(s.level.Tiles) {
		return false
	}
	t := s.level.Tiles[c.ID]
	if t.Kind != c.Kind || t.Pos != (core.Vec{X: c.X, Y: c.Y}) {
		return false
	}
	if t.Kind == calc.KindOperator {
		return t.Op == c.Op
	}
	return t.Value == c.Value
}

// SetResult ends an online match with the coordinator's verdict.
func (s *Session) SetResult(r multiplayer.GameResult) {
	s.result = r
	s.over = true
	s.rematchSent = false
}

// OpponentLeft ends the match after the other peer went away.
func (s *Session) OpponentLeft() {
	s.opponentLeft = true
	s.opponent = nil
	s.over = true
}

// OpponentWantsRematch records a pending rematch request from the peer.
func (s *Session) OpponentWantsRematch() {
	s.opponentWantsRematch = true
}

// RematchRequested records that the local player asked for a rematch.
func (s *Session) RematchRequested() {
	s.rematchSent = true
}

// State returns the run status.
func (s *Session) State() core.GameState {
	won := s.won
	if s.online {
		won = s.result == multiplayer.ResultWin
	}
	return core.GameState{
		Score:    s.stages,
		Won:      won,
		GameOver: s.over,
		Paused:   s.paused,
	}
}

// PlayerState returns the local snapshot in relay form.
func (s *Session) PlayerState() multiplayer.PlayerState {
	cs := s.calc.State()
	return multiplayer.PlayerState{
		X:           s.player.Pos.X,
		Y:           s.player.Pos.Y,
		FacingRight: s.player.FacingRight,
		WalkPhase:   s.player.WalkPhase,
		Value:       cs.Display(),
		Pending:     cs.Pending,
		CalcPhase:   cs.Phase,
	}
}

// Level returns the current level.
func (s *Session) Level() *puzzle.Level {
	return &s.level
}

// Calculator returns the calculator snapshot.
func (s *Session) Calculator() calc.State {
	return s.calc.State()
}

// Player returns the local avatar.
func (s *Session) Player() physics.Avatar {
	return s.player
}

// Opponent returns the last received opponent snapshot.
func (s *Session) Opponent() (multiplayer.PlayerState, bool) {
	if s.opponent == nil {
		return multiplayer.PlayerState{}, false
	}
	return *s.opponent, true
}

// Online reports whether the session is playing a match.
func (s *Session) Online() bool {
	return s.online
}

// Result returns the match verdict, empty while undecided.
func (s *Session) Result() multiplayer.GameResult {
	return s.result
}

// Stages returns the number of stages cleared in this run.
func (s *Session) Stages() int {
	return s.stages
}

// Mode returns the solo mode.
func (s *Session) Mode() Mode {
	return s.mode
}

func claimFor(t puzzle.Tile) multiplayer.TileClaim {
	c := multiplayer.TileClaim{ID: t.ID, X: t.Pos.X, Y: t.Pos.Y, Kind: t.Kind}
	if t.Kind == calc.KindOperator {
		c.Op = t.Op
	} else {
		c.Value = t.Value
	}
	return c
}

func physicsParams(c config.PhysicsConfig) physics.Params {
	return physics.Params{
		Gravity:     c.Gravity,
		MaxFall:     c.MaxFall,
		RunSpeed:    c.RunSpeed,
		JumpImpulse: c.JumpImpulse,
		ClimbSpeed:  c.ClimbSpeed,
		LadderCreep: c.LadderCreep,
		FallMargin:  c.FallMargin,
	}
}

// syncInterval converts the relay interval to ticks, rounding up.
func syncInterval(ms, tickRate int) uint64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := (ms*tickRate + 999) / 1000
	return uint64(max(n, 1))
}

func tileColor(t puzzle.Tile) core.Color {
	if t.Kind == calc.KindOperator {
		return core.ColorOperator
	}
	return core.ColorNumber
}
