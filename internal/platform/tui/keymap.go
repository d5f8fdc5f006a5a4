package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/core"
)

// GameKeyMap binds keys to game actions.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Jump    key.Binding
	Restart key.Binding
	Next    key.Binding
	Rematch key.Binding
	Pause   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the standard bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "climb/jump")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "climb down")),
		Jump:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Next:    key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next stage")),
		Rematch: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "rematch")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Jump, k.Restart, k.Back}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Jump},
		{k.Restart, k.Next, k.Rematch, k.Pause},
		{k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey returns the action for a key, or ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Next):
		return core.ActionNext
	case key.Matches(msg, k.Rematch):
		return core.ActionRematch
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// IsHeld reports whether an action is a movement intent that terminals can
// only emulate as held.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump:
		return true
	}
	return false
}

// GameInput turns key presses into per-tick frames: movement keys stay held
// for a few ticks, everything else fires once.
type GameInput struct {
	mapper  *KeyMapper
	held    *core.HeldInput
	oneShot core.InputFrame
}

// NewGameInput creates an input tracker holding movement for holdTicks.
func NewGameInput(holdTicks int) *GameInput {
	return &GameInput{
		mapper:  NewKeyMapper(),
		held:    core.NewHeldInput(holdTicks),
		oneShot: core.NewInputFrame(),
	}
}

// Press records a key and returns its action.
func (g *GameInput) Press(msg tea.KeyMsg) core.Action {
	a := g.mapper.MapKey(msg)
	switch {
	case a == core.ActionNone:
	case IsHeld(a):
		g.held.Press(a)
	default:
		g.oneShot.Set(a)
	}
	return a
}

// Frame returns the frame for the next tick and consumes one-shot actions.
func (g *GameInput) Frame() core.InputFrame {
	f := g.held.Frame()
	for a := range g.oneShot.Actions {
		f.Set(a)
	}
	g.oneShot.Clear()
	return f
}

// Reset drops all pending input.
func (g *GameInput) Reset() {
	g.held.Reset()
	g.oneShot.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
