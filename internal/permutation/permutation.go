// Package permutation implements the Poseidon, Poseidon2, Rescue and Rescue
// Prime permutations over any arith.API.
package permutation

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/params"
)

// Permutation holds the parameters lifted into the substrate V.
type Permutation[V any] struct {
	api    arith.API[V]
	params *params.Parameters
	mds    []V
	arc    []V
	// diag holds d_i - 1 of the Poseidon2 internal matrix.
	diag []V
}

// New validates p and lifts its constants once.
func New[V any](api arith.API[V], p *params.Parameters) (*Permutation[V], error) {
	if err := params.Validate(p); err != nil {
		return nil, err
	}
	if mod := api.Modulus(); mod.Cmp(p.Modulus) != 0 {
		return nil, fmt.Errorf("%w: parameters for %s used over %s", arith.ErrFieldMismatch, p.Modulus, mod)
	}
	perm := &Permutation[V]{
		api:    api,
		params: p,
		mds:    make([]V, len(p.MDS)),
		arc:    make([]V, len(p.RoundConstants)),
	}
	for i, c := range p.MDS {
		perm.mds[i] = api.Constant(c)
	}
	for i, c := range p.RoundConstants {
		perm.arc[i] = api.Constant(c)
	}
	if len(p.InternalDiagonal) > 0 {
		perm.diag = make([]V, len(p.InternalDiagonal))
		one := big.NewInt(1)
		for i, d := range p.InternalDiagonal {
			perm.diag[i] = api.Constant(new(big.Int).Sub(d, one))
		}
	}
	return perm, nil
}

func (p *Permutation[V]) Params() *params.Parameters { return p.params }

func (p *Permutation[V]) Width() int { return p.params.StateSize }

// Permute replaces state with its image under the permutation.
func (p *Permutation[V]) Permute(state []V) error {
	if len(state) != p.params.StateSize {
		return fmt.Errorf("zkhash: expected state of %d elements, got %d", p.params.StateSize, len(state))
	}
	switch p.params.Family {
	case params.Poseidon:
		p.poseidon(state)
		return nil
	case params.Poseidon2:
		p.poseidon2(state)
		return nil
	case params.Rescue:
		return p.rescue(state)
	case params.RescuePrime:
		return p.rescuePrime(state)
	default:
		return fmt.Errorf("zkhash: unknown family %s", p.params.Family)
	}
}

// poseidon: R_F/2 full rounds, R_P partial rounds, R_F/2 full rounds, each
// adding constants, applying the S-box and mixing.
func (p *Permutation[V]) poseidon(state []V) {
	half := p.params.FullRounds / 2
	rounds := p.params.FullRounds + p.params.PartialRounds
	for r := range rounds {
		p.addRow(state, r)
		if r < half || r >= half+p.params.PartialRounds {
			for i := range state {
				state[i] = p.sbox(state[i])
			}
		} else {
			state[0] = p.sbox(state[0])
		}
		p.mix(state)
	}
}

// poseidon2: an external mix, then full rounds with the external matrix
// around partial rounds that touch only the first lane before the internal
// matrix.
func (p *Permutation[V]) poseidon2(state []V) {
	p.mix(state)
	half := p.params.FullRounds / 2
	rounds := p.params.FullRounds + p.params.PartialRounds
	t := len(state)
	for r := range rounds {
		if r < half || r >= half+p.params.PartialRounds {
			p.addRow(state, r)
			p.sboxLayer(state)
			p.mix(state)
			continue
		}
		state[0] = p.sbox(p.api.Add(state[0], p.arc[r*t]))
		p.mixInternal(state)
	}
}

// rescue: constants, then per round the inverse half followed by the
// forward half.
func (p *Permutation[V]) rescue(state []V) error {
	p.addRow(state, 0)
	for i := range p.params.FullRounds {
		if err := p.inverseLayer(state); err != nil {
			return err
		}
		p.mix(state)
		p.addRow(state, 2*i+1)

		p.sboxLayer(state)
		p.mix(state)
		p.addRow(state, 2*i+2)
	}
	return nil
}

// rescuePrime: per round the forward half followed by the inverse half.
func (p *Permutation[V]) rescuePrime(state []V) error {
	for i := range p.params.FullRounds {
		p.sboxLayer(state)
		p.mix(state)
		p.addRow(state, 2*i)

		if err := p.inverseLayer(state); err != nil {
			return err
		}
		p.mix(state)
		p.addRow(state, 2*i+1)
	}
	return nil
}

func (p *Permutation[V]) sbox(x V) V {
	return chain.EvaluateSquaring(p.params.Alpha.Chain, x, p.api.Mul, p.api.Square)
}

func (p *Permutation[V]) sboxLayer(state []V) {
	for i := range state {
		state[i] = p.sbox(state[i])
	}
}

func (p *Permutation[V]) inverseLayer(state []V) error {
	for i := range state {
		y, err := p.api.Root(state[i], &p.params.Alpha)
		if err != nil {
			return err
		}
		state[i] = y
	}
	return nil
}

func (p *Permutation[V]) addRow(state []V, row int) {
	offset := row * len(state)
	for i := range state {
		state[i] = p.api.Add(state[i], p.arc[offset+i])
	}
}

// mixInternal computes state_i = sum(state) + (d_i - 1)·state_i.
func (p *Permutation[V]) mixInternal(state []V) {
	sum := state[0]
	for i := 1; i < len(state); i++ {
		sum = p.api.Add(sum, state[i])
	}
	for i := range state {
		state[i] = p.api.Add(sum, p.api.Mul(p.diag[i], state[i]))
	}
}

// mix multiplies state by the row-major MDS matrix.
func (p *Permutation[V]) mix(state []V) {
	t := len(state)
	out := make([]V, t)
	for i := range t {
		offset := i * t
		sum := p.api.Mul(p.mds[offset], state[0])
		for j := 1; j < t; j++ {
			sum = p.api.Add(sum, p.api.Mul(p.mds[offset+j], state[j]))
		}
		out[i] = sum
	}
	copy(state, out)
}
