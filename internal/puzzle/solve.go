package puzzle

import (
	"strings"

	"github.com/vovakirdan/calc-climb/internal/calc"
)

// Evaluate feeds tokens through a fresh calculator and returns the final
// running value. ok is false if any token is rejected or the sequence does
// not end on a number.
func Evaluate(tokens []Token) (value int, ok bool) {
	c := calc.New()
	for _, t := range tokens {
		if !c.Feed(t.Kind, t.Value, t.Op).Accepted {
			return 0, false
		}
	}
	st := c.State()
	if st.Phase != calc.PhaseAwaitingOperator {
		return 0, false
	}
	return st.Value, true
}

// Expression renders tokens as "5 + 3 x 2".
func Expression(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// maxSolveTokens bounds the search: five numbers and four operators.
const maxSolveTokens = 9

// Solve returns the IDs of a shortest sequence of uncollected tiles that
// reaches the level target, searching by increasing length. It reports
// false when no sequence within the search bound exists.
func Solve(l Level) ([]int, bool) {
	used := make([]bool, len(l.Tiles))
	for i, t := range l.Tiles {
		used[i] = t.Collected
	}

	path := make([]int, 0, maxSolveTokens)
	var search func(c *calc.Calculator, depth int) bool
	search = func(c *calc.Calculator, depth int) bool {
		if c.Reached(l.Target) {
			return true
		}
		if depth == 0 {
			return false
		}
		for i, t := range l.Tiles {
			if used[i] {
				continue
			}
			next := *c
			if !next.Feed(t.Kind, t.Value, t.Op).Accepted {
				continue
			}
			used[i] = true
			path = append(path, t.ID)
			if search(&next, depth-1) {
				return true
			}
			path = path[:len(path)-1]
			used[i] = false
		}
		return false
	}

	for depth := 1; depth <= maxSolveTokens; depth += 2 {
		path = path[:0]
		if search(calc.New(), depth) {
			return append([]int(nil), path...), true
		}
	}
	return nil, false
}

// Tokens maps tile IDs to their tokens.
func (l *Level) Tokens(ids []int) []Token {
	out := make([]Token, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(l.Tiles) {
			out = append(out, l.Tiles[id].Token())
		}
	}
	return out
}
