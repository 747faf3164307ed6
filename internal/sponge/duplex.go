package sponge

import (
	"math/big"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/permutation"
)

// Duplex interleaves absorbs and squeezes over one state, as used by
// Fiat-Shamir transcripts. Absorbed elements are added into the rate; the
// state is permuted when the rate is full or the direction changes.
type Duplex[V any] struct {
	api        arith.API[V]
	perm       *permutation.Permutation[V]
	rate       int
	state      []V
	absorbPos  int
	squeezePos int
}

// NewDuplex starts a duplex whose last capacity element holds domain.
func NewDuplex[V any](api arith.API[V], perm *permutation.Permutation[V], domain *big.Int) *Duplex[V] {
	d := &Duplex[V]{
		api:  api,
		perm: perm,
		rate: perm.Params().Rate,
	}
	d.state = make([]V, perm.Width())
	for i := range d.state {
		d.state[i] = api.Zero()
	}
	if domain != nil {
		d.state[len(d.state)-1] = api.Constant(new(big.Int).Mod(domain, api.Modulus()))
	}
	d.squeezePos = d.rate
	return d
}

func (d *Duplex[V]) Absorb(inputs ...V) error {
	for _, v := range inputs {
		if d.absorbPos == d.rate {
			if err := d.perm.Permute(d.state); err != nil {
				return err
			}
			d.absorbPos = 0
		}
		d.state[d.absorbPos] = d.api.Add(d.state[d.absorbPos], v)
		d.absorbPos++
		d.squeezePos = d.rate
	}
	return nil
}

func (d *Duplex[V]) Squeeze() (V, error) {
	if d.squeezePos == d.rate {
		if err := d.perm.Permute(d.state); err != nil {
			var zero V
			return zero, err
		}
		d.squeezePos = 0
		d.absorbPos = 0
	}
	out := d.state[d.squeezePos]
	d.squeezePos++
	return out, nil
}

// Clone returns an independent copy of the duplex at its current position.
func (d *Duplex[V]) Clone() *Duplex[V] {
	c := *d
	c.state = make([]V, len(d.state))
	copy(c.state, d.state)
	return &c
}
