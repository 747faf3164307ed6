package sponge

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/permutation"
)

var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

// FixedLengthTag is the capacity value length*2^64 + (out-1).
func FixedLengthTag(length, out int) *big.Int {
	tag := new(big.Int).Mul(big.NewInt(int64(length)), two64)
	return tag.Add(tag, big.NewInt(int64(out-1)))
}

// VariableLengthTag is the capacity value 2^64 + (out-1).
func VariableLengthTag(out int) *big.Int {
	return new(big.Int).Add(two64, big.NewInt(int64(out-1)))
}

// HashFixed hashes exactly length elements into out elements. Rescue Prime
// leaves the capacity untouched.
func HashFixed[V any](api arith.API[V], perm *permutation.Permutation[V], input []V, length, out int) ([]V, error) {
	if length < 1 || len(input) != length {
		return nil, fmt.Errorf("%w: fixed-length hash expects %d elements, got %d", ErrInvalidInputShape, length, len(input))
	}
	if out < 1 {
		return nil, fmt.Errorf("%w: output length must be positive, got %d", ErrInvalidInputShape, out)
	}
	s := New(api, perm)
	if perm.Params().Family != params.RescuePrime {
		if err := s.Specialize(FixedLengthTag(length, out)); err != nil {
			return nil, err
		}
	}
	if err := s.Absorb(input); err != nil {
		return nil, err
	}
	return s.Squeeze(out)
}

// HashVarLength hashes a rate-aligned input followed by the pad block
// [1, 0, ..., 0].
func HashVarLength[V any](api arith.API[V], perm *permutation.Permutation[V], input []V, out int) ([]V, error) {
	rate := perm.Params().Rate
	if len(input)%rate != 0 {
		return nil, fmt.Errorf("%w: variable-length input of %d elements is not a multiple of the rate %d", ErrInvalidInputShape, len(input), rate)
	}
	if out < 1 {
		return nil, fmt.Errorf("%w: output length must be positive, got %d", ErrInvalidInputShape, out)
	}
	s := New(api, perm)
	if err := s.Specialize(VariableLengthTag(out)); err != nil {
		return nil, err
	}
	padded := make([]V, len(input), len(input)+rate)
	copy(padded, input)
	padded = append(padded, api.One())
	for len(padded)%rate != 0 {
		padded = append(padded, api.Zero())
	}
	if err := s.Absorb(padded); err != nil {
		return nil, err
	}
	return s.Squeeze(out)
}
