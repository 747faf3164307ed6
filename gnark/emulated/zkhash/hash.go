// Package zkhash provides the hashes over an emulated field, for circuits
// whose native field differs from the field the hash is defined over.
package zkhash

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	zk "github.com/vocdoni/zkhash"
	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/permutation"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// Hasher emits the hash constraints over the emulated field T.
type Hasher[T emulated.FieldParams] struct {
	settings zk.Settings
	api      *arith.Emulated[T]
	perm     *permutation.Permutation[*emulated.Element[T]]
}

func New[T emulated.FieldParams](api frontend.API, family zk.Family, opts ...zk.Option) (*Hasher[T], error) {
	s := zk.NewSettings(opts...)
	ea, err := arith.NewEmulated[T](api)
	if err != nil {
		return nil, err
	}
	p, err := params.Get(s.Config(family, ea.Modulus()))
	if err != nil {
		return nil, err
	}
	perm, err := permutation.New[*emulated.Element[T]](ea, p)
	if err != nil {
		return nil, err
	}
	return &Hasher[T]{settings: s, api: ea, perm: perm}, nil
}

// Hash computes the fixed-length hash of inputs with a single output.
func Hash[T emulated.FieldParams](api frontend.API, family zk.Family, inputs ...*emulated.Element[T]) (*emulated.Element[T], error) {
	h, err := New[T](api, family, zk.WithInputLength(len(inputs)))
	if err != nil {
		return nil, err
	}
	out, err := h.HashFixed(inputs...)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (h *Hasher[T]) Rate() int { return h.perm.Params().Rate }

// HashFixed hashes exactly InputLength elements. Outputs are reduced.
func (h *Hasher[T]) HashFixed(inputs ...*emulated.Element[T]) ([]*emulated.Element[T], error) {
	out, err := sponge.HashFixed[*emulated.Element[T]](h.api, h.perm, inputs, h.settings.InputLength, h.settings.OutputLength)
	if err != nil {
		return nil, err
	}
	return h.reduce(out), nil
}

// HashVarLength hashes a rate-aligned list of elements. Outputs are reduced.
func (h *Hasher[T]) HashVarLength(inputs ...*emulated.Element[T]) ([]*emulated.Element[T], error) {
	out, err := sponge.HashVarLength[*emulated.Element[T]](h.api, h.perm, inputs, h.settings.OutputLength)
	if err != nil {
		return nil, err
	}
	return h.reduce(out), nil
}

// Permute applies the permutation to a copy of state.
func (h *Hasher[T]) Permute(state []*emulated.Element[T]) ([]*emulated.Element[T], error) {
	out := make([]*emulated.Element[T], len(state))
	copy(out, state)
	if err := h.perm.Permute(out); err != nil {
		return nil, err
	}
	return h.reduce(out), nil
}

func (h *Hasher[T]) reduce(out []*emulated.Element[T]) []*emulated.Element[T] {
	f := h.api.Field()
	for i := range out {
		out[i] = f.Reduce(out[i])
	}
	return out
}
