package puzzle

import (
	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/rng"
)

// chain is the generated solution: nums[0] ops[0] nums[1] ops[1] ...
type chain struct {
	nums []int
	ops  []calc.Op
}

// tokens returns the chain interleaved as number, operator, number, ...
func (c chain) tokens() []Token {
	out := make([]Token, 0, len(c.nums)+len(c.ops))
	for i, n := range c.nums {
		out = append(out, Token{Kind: calc.KindNumber, Value: n})
		if i < len(c.ops) {
			out = append(out, Token{Kind: calc.KindOperator, Op: c.ops[i]})
		}
	}
	return out
}

// allowedOps returns the operators a tier may use in its solution.
func allowedOps(tier int) []calc.Op {
	switch {
	case tier < 3:
		return calc.AllOps[:2]
	case tier < 6:
		return calc.AllOps[:3]
	default:
		return calc.AllOps
	}
}

// operandCount is the number of numbers in the solution chain.
func operandCount(tier int) int {
	if tier < 3 {
		return 2
	}
	return 3
}

// buildChain draws the solution chain. The draw order is fixed: start
// operand, then per step one operator pick followed by its operand draws.
func buildChain(g *rng.LCG, tier int) (chain, int) {
	ops := allowedOps(tier)
	cur := g.IntRange(2, 9)
	c := chain{nums: []int{cur}}

	for s := 0; s < operandCount(tier)-1; s++ {
		op := rng.Pick(g, ops)
		var n int

		switch op {
		case calc.OpMul:
			n = g.IntRange(2, min(5, 99/max(cur, 1)))
			n = max(2, min(n, 9))
			cur *= n

		case calc.OpDiv:
			var divs []int
			for d := 2; d <= 9; d++ {
				if cur%d == 0 {
					divs = append(divs, d)
				}
			}
			if len(divs) == 0 {
				// No exact divisor: the step becomes an addition.
				op = calc.OpAdd
				n = g.IntRange(1, 9)
				cur += n
				break
			}
			n = rng.Pick(g, divs)
			cur /= n

		case calc.OpSub:
			n = max(1, g.IntRange(1, min(cur-1, 9)))
			if cur-n < 1 {
				// A running value of 1 (left by an earlier - or /, tier 3 and
				// up) cannot be reduced; the step adds the operand instead.
				op = calc.OpAdd
				cur += n
				break
			}
			cur -= n

		default:
			n = g.IntRange(1, 9)
			cur += n
		}

		c.ops = append(c.ops, op)
		c.nums = append(c.nums, n)
	}

	return c, max(cur, 1)
}
