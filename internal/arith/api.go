// Package arith defines the field operations the permutation is written
// against, with native, circuit and emulated realizations.
package arith

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/vocdoni/zkhash/internal/params"
)

// ErrFieldMismatch is returned when parameters generated for one field are
// used with another.
var ErrFieldMismatch = errors.New("zkhash: field mismatch")

// API is the numeric substrate of the permutation. V is a concrete field
// element or a circuit variable.
type API[V any] interface {
	Add(a, b V) V
	Mul(a, b V) V
	// Square is Mul(a, a); chain doubling steps call it.
	Square(a V) V
	// Exp raises a to a small constant power.
	Exp(a V, k uint64) V
	// Root returns a^(1/alpha). Circuit realizations constrain the result.
	Root(a V, alpha *params.Alpha) (V, error)
	Constant(c *big.Int) V
	Zero() V
	One() V
	AssertIsEqual(a, b V) error
	Modulus() *big.Int
}

// expSmall computes a^k by left-to-right square and multiply.
func expSmall[V any](mul func(a, b V) V, square func(a V) V, one, a V, k uint64) V {
	if k == 0 {
		return one
	}
	acc := a
	for i := 62 - bits.LeadingZeros64(k); i >= 0; i-- {
		acc = square(acc)
		if k>>uint(i)&1 == 1 {
			acc = mul(acc, a)
		}
	}
	return acc
}
