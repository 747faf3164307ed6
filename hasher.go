package zkhash

import (
	bls12377fr "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/permutation"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// Hasher hashes elements of the field E. It is immutable and safe for
// concurrent use; every call runs on its own sponge state.
type Hasher[E any, PE Element[E]] struct {
	settings Settings
	api      *arith.Native[E, PE]
	perm     *permutation.Permutation[E]
}

// New returns a hasher for family over the field of E. Parameters are
// generated on first use and cached for the process.
func New[E any, PE Element[E]](family Family, opts ...Option) (*Hasher[E, PE], error) {
	s := NewSettings(opts...)
	api := arith.NewNative[E, PE]()
	p, err := params.Get(s.Config(family, api.Modulus()))
	if err != nil {
		return nil, err
	}
	perm, err := permutation.New[E](api, p)
	if err != nil {
		return nil, err
	}
	return &Hasher[E, PE]{settings: s, api: api, perm: perm}, nil
}

// NewBN254 returns a hasher over the BN254 scalar field.
func NewBN254(family Family, opts ...Option) (*Hasher[bn254fr.Element, *bn254fr.Element], error) {
	return New[bn254fr.Element](family, opts...)
}

// NewBLS12377 returns a hasher over the BLS12-377 scalar field.
func NewBLS12377(family Family, opts ...Option) (*Hasher[bls12377fr.Element, *bls12377fr.Element], error) {
	return New[bls12377fr.Element](family, opts...)
}

func (h *Hasher[E, PE]) Family() Family { return h.perm.Params().Family }

func (h *Hasher[E, PE]) Width() int { return h.perm.Params().StateSize }

func (h *Hasher[E, PE]) Rate() int { return h.perm.Params().Rate }

// Rounds returns the full and partial round counts. For the Rescue families
// full is the number of double rounds and partial is zero.
func (h *Hasher[E, PE]) Rounds() (full, partial int) {
	p := h.perm.Params()
	return p.FullRounds, p.PartialRounds
}

// Alpha returns the S-box exponent.
func (h *Hasher[E, PE]) Alpha() uint64 { return h.perm.Params().Alpha.Exponent }

// Settings returns the options the hasher was built with.
func (h *Hasher[E, PE]) Settings() Settings { return h.settings }

// HashFixed hashes exactly InputLength elements into OutputLength elements.
func (h *Hasher[E, PE]) HashFixed(input []E) ([]E, error) {
	return sponge.HashFixed[E](h.api, h.perm, input, h.settings.InputLength, h.settings.OutputLength)
}

// HashVarLength hashes a rate-aligned input of any length into
// OutputLength elements.
func (h *Hasher[E, PE]) HashVarLength(input []E) ([]E, error) {
	return sponge.HashVarLength[E](h.api, h.perm, input, h.settings.OutputLength)
}

// Permute applies the bare permutation to a copy of state.
func (h *Hasher[E, PE]) Permute(state []E) ([]E, error) {
	out := make([]E, len(state))
	copy(out, state)
	if err := h.perm.Permute(out); err != nil {
		return nil, err
	}
	return out, nil
}
