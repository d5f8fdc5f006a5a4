// Package tui runs calc-climb in a terminal: the Bubble Tea models for
// menus, solo play and online matches, and the SSH server hosting them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick at tickRate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
