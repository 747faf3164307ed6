// Package chain finds, verifies and evaluates addition chains for the
// S-box exponents.
package chain

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrBudgetExceeded is returned when the shortest chain found is longer than
// the configured budget.
var ErrBudgetExceeded = errors.New("zkhash: addition chain exceeds search budget")

// Step builds a new chain entry from two earlier ones. Entry 0 is the base,
// entry k+1 is produced by step k. I == J denotes a doubling.
type Step struct {
	I, J int
}

// IsDouble reports whether the step doubles a single entry.
func (s Step) IsDouble() bool { return s.I == s.J }

// Chain computes x^Exponent with one multiplication per step.
type Chain struct {
	Exponent *big.Int
	Steps    []Step
}

// Len is the number of multiplications the chain costs.
func (c *Chain) Len() int { return len(c.Steps) }

// Count returns the number of doublings and additions.
func (c *Chain) Count() (doubles, adds int) {
	for _, s := range c.Steps {
		if s.IsDouble() {
			doubles++
		} else {
			adds++
		}
	}
	return doubles, adds
}

// Replay rebuilds the exponent the steps produce.
func (c *Chain) Replay() (*big.Int, error) {
	entries := make([]*big.Int, 1, len(c.Steps)+1)
	entries[0] = big.NewInt(1)
	for k, s := range c.Steps {
		if s.I < 0 || s.J < 0 || s.I >= len(entries) || s.J >= len(entries) {
			return nil, fmt.Errorf("zkhash: chain step %d references unknown entry (%d, %d)", k, s.I, s.J)
		}
		entries = append(entries, new(big.Int).Add(entries[s.I], entries[s.J]))
	}
	return entries[len(entries)-1], nil
}

// Verify replays the chain and checks that it reaches the target exponent.
func (c *Chain) Verify() error {
	if c.Exponent == nil || c.Exponent.Sign() <= 0 {
		return fmt.Errorf("zkhash: chain target must be positive")
	}
	got, err := c.Replay()
	if err != nil {
		return err
	}
	if got.Cmp(c.Exponent) != 0 {
		return fmt.Errorf("zkhash: chain produces %s, want %s", got, c.Exponent)
	}
	return nil
}

// Evaluate runs the chain on x using mul as the multiplication of the
// substrate.
func Evaluate[V any](c *Chain, x V, mul func(a, b V) V) V {
	return EvaluateSquaring(c, x, mul, func(a V) V { return mul(a, a) })
}

// EvaluateSquaring is Evaluate with a dedicated squaring for doubling steps.
func EvaluateSquaring[V any](c *Chain, x V, mul func(a, b V) V, square func(a V) V) V {
	entries := make([]V, 1, len(c.Steps)+1)
	entries[0] = x
	for _, s := range c.Steps {
		if s.IsDouble() {
			entries = append(entries, square(entries[s.I]))
			continue
		}
		entries = append(entries, mul(entries[s.I], entries[s.J]))
	}
	return entries[len(entries)-1]
}

// Exp evaluates the chain over integers modulo mod.
func (c *Chain) Exp(x, mod *big.Int) *big.Int {
	base := new(big.Int).Mod(x, mod)
	return Evaluate(c, base, func(a, b *big.Int) *big.Int {
		r := new(big.Int).Mul(a, b)
		return r.Mod(r, mod)
	})
}
