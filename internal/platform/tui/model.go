package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/games/calcclimb"
	"github.com/vovakirdan/calc-climb/internal/registry"
	"github.com/vovakirdan/calc-climb/internal/storage"
)

// eventSource is implemented by games that report stage clears.
type eventSource interface {
	DrainEvents() []calcclimb.Event
}

// GameModel runs one solo game until the player backs out or quits.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	input      *GameInput
	gameState  core.GameState
	lastClear  *calcclimb.StageClearedEvent
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the
// current time.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, holdTicks int) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		input:  NewGameInput(holdTicks),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.input.Press(msg) {
	case core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.input.Frame())
	m.gameState = result.State

	if src, ok := m.game.(eventSource); ok {
		for _, e := range src.DrainEvents() {
			if c, ok := e.(calcclimb.StageClearedEvent); ok {
				m.lastClear = &c
				m.saved = false
			}
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the run's best result once. Storage is best effort.
func (m *GameModel) saveRun() {
	if m.store == nil || m.lastClear == nil || m.saved {
		return
	}
	//nolint:errcheck // a lost score never interrupts play
	m.store.SaveScore(storage.ScoreEntry{
		Mode:   m.game.ID(),
		Stages: m.lastClear.Stages,
		Tier:   m.lastClear.Tier,
		Seed:   m.lastClear.Seed,
	})
	m.saved = true
}

// saveScreenshot writes the current frame as text under ~/.calcclimb.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".calcclimb", "screenshots")
	//nolint:errcheck // best effort
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the player quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player backed out.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// runModel wraps a GameModel so backing out ends the program.
type runModel struct {
	GameModel
}

func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		r.GameModel = gm
	}
	if r.GameModel.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}

// Run plays game in the current terminal until the player leaves.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, holdTicks int) error {
	p := tea.NewProgram(
		runModel{NewGameModel(game, store, cfg, holdTicks)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
