package calc

import "fmt"

// Phase is the calculator's position in the number/operator alternation.
type Phase uint8

const (
	PhaseInitial Phase = iota
	PhaseAwaitingOperator
	PhaseAwaitingNumber
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingOperator:
		return "awaiting-operator"
	case PhaseAwaitingNumber:
		return "awaiting-number"
	default:
		return "initial"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "initial", "":
		*p = PhaseInitial
	case "awaiting-operator":
		*p = PhaseAwaitingOperator
	case "awaiting-number":
		*p = PhaseAwaitingNumber
	default:
		return fmt.Errorf("calc: unknown phase %q", string(b))
	}
	return nil
}

// State is a snapshot of the calculator.
type State struct {
	Phase   Phase
	Value   int
	Pending Op
}

// Display returns the value shown to the player; unset reads as 0.
func (s State) Display() int {
	if s.Phase == PhaseInitial {
		return 0
	}
	return s.Value
}

// Outcome describes the effect of feeding one tile.
type Outcome struct {
	Accepted bool
	Kind     Kind
	Before   State
	After    State
	Expr     string // "5", "+", "5 + 3 = 8"
}

// Calculator consumes tiles one at a time. A rejected tile leaves the
// state untouched and must stay uncollected.
type Calculator struct {
	state State
}

// New returns a calculator in the initial phase.
func New() *Calculator {
	return &Calculator{}
}

// State returns the current snapshot.
func (c *Calculator) State() State {
	return c.state
}

// Reset returns to the initial phase.
func (c *Calculator) Reset() {
	c.state = State{}
}

// Feed offers a tile. value is read for numbers, op for operators.
func (c *Calculator) Feed(kind Kind, value int, op Op) Outcome {
	out := Outcome{Kind: kind, Before: c.state, After: c.state}

	switch {
	case kind == KindNumber && c.state.Phase == PhaseInitial:
		c.state = State{Phase: PhaseAwaitingOperator, Value: value}
		out.Expr = fmt.Sprintf("%d", value)

	case kind == KindOperator && c.state.Phase == PhaseAwaitingOperator:
		if op == OpNone {
			return out
		}
		c.state.Pending = op
		c.state.Phase = PhaseAwaitingNumber
		out.Expr = op.String()

	case kind == KindNumber && c.state.Phase == PhaseAwaitingNumber:
		result, ok := Apply(c.state.Pending, c.state.Value, value)
		if !ok {
			return out
		}
		out.Expr = fmt.Sprintf("%d %s %d = %d", c.state.Value, c.state.Pending, value, result)
		c.state = State{Phase: PhaseAwaitingOperator, Value: result}

	default:
		return out
	}

	out.Accepted = true
	out.After = c.state
	return out
}

// Reached reports whether the running value equals target. An unset value
// never matches.
func (c *Calculator) Reached(target int) bool {
	return c.state.Phase != PhaseInitial && c.state.Value == target
}

// Hint describes what the calculator accepts next.
func (c *Calculator) Hint() string {
	switch c.state.Phase {
	case PhaseAwaitingOperator:
		return "grab an operator"
	case PhaseAwaitingNumber:
		return fmt.Sprintf("grab a number to apply %s", c.state.Pending)
	default:
		return "grab a number to start"
	}
}
