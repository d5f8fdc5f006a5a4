package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/config"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/registry"
	"github.com/vovakirdan/calc-climb/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewOnline
	viewScores
)

// SessionModel is the top-level model of one terminal: menu, then a solo
// game, an online visit or the scoreboard, then back to the menu.
type SessionModel struct {
	store   *storage.Store
	config  core.RuntimeConfig
	gameCfg config.CalcClimbConfig
	dialer  Dialer

	view   sessionView
	menu   MenuModel
	game   GameModel
	online OnlineModel
	relay  Relay
	scores ScoreboardModel

	quitting bool
}

// NewSessionModel creates the session flow. A nil dialer hides online play
// and a nil store hides the scoreboard.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, gameCfg config.CalcClimbConfig, dialer Dialer) SessionModel {
	m := SessionModel{
		store:   store,
		config:  cfg,
		gameCfg: gameCfg,
		dialer:  dialer,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.config, m.dialer != nil, m.store != nil)
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active view. Sub-models end themselves
// with tea.Quit; those commands are dropped here and the session returns
// to the menu instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewOnline:
		return m.updateOnline(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Kind {
	case MenuItemGame:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			return m.backToMenu(err.Error())
		}
		m.game = NewGameModel(game, m.store, m.config, m.gameCfg.Input.HoldTicks)
		m.view = viewGame
		return m, m.game.Init()

	case MenuItemOnline:
		relay, err := m.dialer()
		if err != nil {
			return m.backToMenu("cannot reach the server: " + err.Error())
		}
		m.relay = relay
		m.online = NewOnlineModel(relay, m.config, m.gameCfg)
		m.view = viewOnline
		return m, m.online.Init()

	case MenuItemScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()
	}
	return m, nil
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if om, ok := next.(OnlineModel); ok {
		m.online = om
	}

	if m.online.IsQuitting() {
		m.closeRelay()
		m.quitting = true
		return m, tea.Quit
	}
	if m.online.BackToMenu() {
		notice := m.online.Err()
		m.closeRelay()
		return m.backToMenu(notice)
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) backToMenu(notice string) (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = m.newMenu().WithNotice(notice)
	return m, m.menu.Init()
}

func (m *SessionModel) closeRelay() {
	if m.relay != nil {
		m.relay.Close()
		m.relay = nil
	}
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewOnline:
		return m.online.View()
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs the full session flow in the current terminal.
// A relay still open when the program exits is closed.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, gameCfg config.CalcClimbConfig, dialer Dialer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if dialer != nil {
		dialer = DialerWithContext(ctx, dialer)
	}

	p := tea.NewProgram(NewSessionModel(store, cfg, gameCfg, dialer), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
