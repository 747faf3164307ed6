// Package zkhash provides the Poseidon, Poseidon2, Rescue and Rescue Prime hashes as
// gnark gadgets over the native field of the circuit.
package zkhash

import (
	"github.com/consensys/gnark/frontend"

	zk "github.com/vocdoni/zkhash"
	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/permutation"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// Hasher emits the hash constraints on api. Build one per Define call.
type Hasher struct {
	settings zk.Settings
	api      *arith.Circuit
	perm     *permutation.Permutation[frontend.Variable]
}

// New returns a gadget for family over the compiler field of api, with the
// same parameters the native hasher uses for that field.
func New(api frontend.API, family zk.Family, opts ...zk.Option) (*Hasher, error) {
	s := zk.NewSettings(opts...)
	ca := arith.NewCircuit(api)
	p, err := params.Get(s.Config(family, ca.Modulus()))
	if err != nil {
		return nil, err
	}
	perm, err := permutation.New[frontend.Variable](ca, p)
	if err != nil {
		return nil, err
	}
	return &Hasher{settings: s, api: ca, perm: perm}, nil
}

// Hash computes the fixed-length hash of inputs with a single output.
func Hash(api frontend.API, family zk.Family, inputs ...frontend.Variable) (frontend.Variable, error) {
	h, err := New(api, family, zk.WithInputLength(len(inputs)))
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	out, err := h.HashFixed(inputs...)
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	return out[0], nil
}

func (h *Hasher) Rate() int { return h.perm.Params().Rate }

func (h *Hasher) Width() int { return h.perm.Params().StateSize }

// HashFixed hashes exactly InputLength variables into OutputLength variables.
func (h *Hasher) HashFixed(inputs ...frontend.Variable) ([]frontend.Variable, error) {
	return sponge.HashFixed[frontend.Variable](h.api, h.perm, inputs, h.settings.InputLength, h.settings.OutputLength)
}

// HashVarLength hashes a rate-aligned list of variables.
func (h *Hasher) HashVarLength(inputs ...frontend.Variable) ([]frontend.Variable, error) {
	return sponge.HashVarLength[frontend.Variable](h.api, h.perm, inputs, h.settings.OutputLength)
}

// Permute applies the permutation to a copy of state.
func (h *Hasher) Permute(state []frontend.Variable) ([]frontend.Variable, error) {
	out := make([]frontend.Variable, len(state))
	copy(out, state)
	if err := h.perm.Permute(out); err != nil {
		return nil, err
	}
	return out, nil
}
