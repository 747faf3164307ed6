// Package sponge drives a permutation through the absorb and squeeze phases.
package sponge

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/permutation"
)

var (
	// ErrInvalidInputShape reports an input or output length the hash
	// mode does not accept.
	ErrInvalidInputShape = errors.New("zkhash: invalid input shape")
	// ErrWrongMode reports an absorb after squeezing started.
	ErrWrongMode = errors.New("zkhash: sponge is already squeezing")
)

// Mode is the phase of a sponge.
type Mode int

const (
	Absorbing Mode = iota
	Squeezing
)

func (m Mode) String() string {
	if m == Squeezing {
		return "squeezing"
	}
	return "absorbing"
}

// Sponge is a single-use absorb-then-squeeze controller. It is not safe for
// concurrent use; create one per hash.
type Sponge[V any] struct {
	api      arith.API[V]
	perm     *permutation.Permutation[V]
	rate     int
	state    []V
	capacity *big.Int
	mode     Mode
	pos      int
	absorbed bool
	partial  bool
}

func New[V any](api arith.API[V], perm *permutation.Permutation[V]) *Sponge[V] {
	s := &Sponge[V]{
		api:  api,
		perm: perm,
		rate: perm.Params().Rate,
	}
	s.Reset()
	return s
}

// Reset zeroes the state, restores the capacity tag set by Specialize and
// returns to absorbing.
func (s *Sponge[V]) Reset() {
	s.state = make([]V, s.perm.Width())
	for i := range s.state {
		s.state[i] = s.api.Zero()
	}
	if s.capacity != nil {
		s.state[len(s.state)-1] = s.api.Constant(s.capacity)
	}
	s.mode = Absorbing
	s.pos = 0
	s.absorbed = false
	s.partial = false
}

// Specialize writes the domain tag into the last capacity element. It must
// be called before anything is absorbed.
func (s *Sponge[V]) Specialize(tag *big.Int) error {
	if s.mode != Absorbing || s.absorbed {
		return fmt.Errorf("%w: capacity must be set before absorbing", ErrWrongMode)
	}
	s.capacity = new(big.Int).Mod(tag, s.api.Modulus())
	s.state[len(s.state)-1] = s.api.Constant(s.capacity)
	return nil
}

func (s *Sponge[V]) Mode() Mode { return s.mode }

// Absorb adds input into the rate in blocks of r elements, permuting after
// each block. A short final block leaves the remaining rate slots as they
// are and closes the absorb phase.
func (s *Sponge[V]) Absorb(input []V) error {
	if s.mode != Absorbing {
		return ErrWrongMode
	}
	if s.partial && len(input) > 0 {
		return fmt.Errorf("%w: absorb after a partial block", ErrInvalidInputShape)
	}
	for off := 0; off < len(input); off += s.rate {
		s.absorbed = true
		block := input[off:min(off+s.rate, len(input))]
		for i, v := range block {
			s.state[i] = s.api.Add(s.state[i], v)
		}
		if err := s.perm.Permute(s.state); err != nil {
			return err
		}
		if len(block) < s.rate {
			s.partial = true
		}
	}
	return nil
}

// Squeeze reads n elements from the rate, permuting whenever the rate is
// exhausted.
func (s *Sponge[V]) Squeeze(n int) ([]V, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: output length must be positive, got %d", ErrInvalidInputShape, n)
	}
	if s.mode == Absorbing {
		s.mode = Squeezing
		s.pos = 0
	}
	out := make([]V, 0, n)
	for len(out) < n {
		if s.pos == s.rate {
			if err := s.perm.Permute(s.state); err != nil {
				return nil, err
			}
			s.pos = 0
		}
		out = append(out, s.state[s.pos])
		s.pos++
	}
	return out, nil
}
