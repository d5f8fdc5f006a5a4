package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left / creep left on a ladder
	ActionRight          // D, Right arrow - walk right / creep right on a ladder
	ActionUp             // W, Up arrow - climb up (also jumps when grounded)
	ActionDown           // S, Down arrow - climb down
	ActionJump           // Space - jump
	ActionRestart        // R - restart the stage with the same seed
	ActionNext           // N - next stage after a clear
	ActionRematch        // M - request a rematch after an online result
	ActionPause          // P - pause/unpause
	ActionBack           // B, Escape - back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionRematch:
		return "Rematch"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the snapshot of intents held during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// HeldInput emulates key-held state for terminals, which report presses but
// never releases. A press keeps its action held for holdTicks ticks; terminal
// auto-repeat refreshes it while the key stays down.
type HeldInput struct {
	holdTicks int
	remaining map[Action]int
}

// NewHeldInput creates a held-input tracker. holdTicks < 1 is treated as 1.
func NewHeldInput(holdTicks int) *HeldInput {
	return &HeldInput{
		holdTicks: max(holdTicks, 1),
		remaining: make(map[Action]int),
	}
}

// Press marks an action as held from now on.
func (h *HeldInput) Press(a Action) {
	if a == ActionNone {
		return
	}
	h.remaining[a] = h.holdTicks
	// Opposite directions cancel so a quick reversal takes effect immediately.
	switch a {
	case ActionLeft:
		delete(h.remaining, ActionRight)
	case ActionRight:
		delete(h.remaining, ActionLeft)
	case ActionUp:
		delete(h.remaining, ActionDown)
	case ActionDown:
		delete(h.remaining, ActionUp)
	}
}

// Frame returns the frame for the current tick and ages every held action.
func (h *HeldInput) Frame() InputFrame {
	f := NewInputFrame()
	for a, n := range h.remaining {
		f.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return f
}

// Reset releases every held action.
func (h *HeldInput) Reset() {
	clear(h.remaining)
}
