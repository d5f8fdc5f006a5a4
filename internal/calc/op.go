// Package calc implements the calculator that turns collected tiles into a
// running arithmetic value.
package calc

import (
	"fmt"
	"strings"
)

// Op is an arithmetic operator carried by an operator tile.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// AllOps lists every operator in a fixed order. Generation draws from
// prefixes of this slice, so the order is part of level reproducibility.
var AllOps = []Op{OpAdd, OpSub, OpMul, OpDiv}

// String returns the display symbol.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return ""
	}
}

// ASCII returns a single-byte glyph for terminals without the math symbols.
func (o Op) ASCII() rune {
	switch o {
	case OpAdd:
		return '+'
	case OpSub:
		return '-'
	case OpMul:
		return 'x'
	case OpDiv:
		return '/'
	default:
		return ' '
	}
}

// ParseOp accepts the display symbols plus common ASCII spellings.
func ParseOp(s string) (Op, bool) {
	switch strings.TrimSpace(s) {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSub, true
	case "×", "x", "*":
		return OpMul, true
	case "÷", "/":
		return OpDiv, true
	default:
		return OpNone, false
	}
}

// MarshalText encodes the operator as its display symbol; OpNone is empty.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes a symbol. An empty string is OpNone.
func (o *Op) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*o = OpNone
		return nil
	}
	op, ok := ParseOp(string(b))
	if !ok {
		return fmt.Errorf("calc: unknown operator %q", string(b))
	}
	*o = op
	return nil
}

// Apply computes a op b. Division floors toward negative infinity and
// reports false for a zero divisor, as does OpNone.
func Apply(op Op, a, b int) (int, bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSub:
		return a - b, true
	case OpMul:
		return a * b, true
	case OpDiv:
		if b == 0 {
			return 0, false
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return q, true
	default:
		return 0, false
	}
}

// Kind distinguishes number tiles from operator tiles.
type Kind uint8

const (
	KindNumber Kind = iota
	KindOperator
)

func (k Kind) String() string {
	if k == KindOperator {
		return "operator"
	}
	return "number"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "number":
		*k = KindNumber
	case "operator":
		*k = KindOperator
	default:
		return fmt.Errorf("calc: unknown tile kind %q", string(b))
	}
	return nil
}
