// Package zkhash implements the Poseidon, Poseidon2, Rescue and Rescue Prime
// sponge hashes over prime fields. The root package hashes gnark-crypto field
// elements; gnark/zkhash and gnark/emulated/zkhash provide the matching
// circuit gadgets.
package zkhash

import (
	"math/big"

	"github.com/rs/zerolog"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/log"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// Family selects the permutation.
type Family = params.Family

const (
	Poseidon    = params.Poseidon
	Rescue      = params.Rescue
	RescuePrime = params.RescuePrime
	Poseidon2   = params.Poseidon2
)

// Element is satisfied by *fr.Element of the gnark-crypto curves.
type Element[E any] = arith.Element[E]

var (
	ErrInvalidInputShape = sponge.ErrInvalidInputShape
	ErrSingularMDS       = params.ErrSingularMDS
	ErrChainBudget       = chain.ErrBudgetExceeded
	ErrFieldMismatch     = arith.ErrFieldMismatch
)

// ParseFamily accepts "poseidon", "poseidon2", "rescue" and "rescue-prime".
func ParseFamily(s string) (Family, error) { return params.ParseFamily(s) }

// SetLogger sets the logger used during parameter generation.
func SetLogger(l zerolog.Logger) { log.Set(l) }

// DomainFromLEBytes reads data as a little-endian integer, for use as a
// transcript domain.
func DomainFromLEBytes(data []byte) *big.Int {
	reversed := make([]byte, len(data))
	for i := range data {
		reversed[len(data)-1-i] = data[i]
	}
	return new(big.Int).SetBytes(reversed)
}
