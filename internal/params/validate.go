package params

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/chain"
)

// Validate checks shape, sizes and the algebraic invariants of the parameter set.
func Validate(p *Parameters) error {
	if !p.Family.valid() {
		return fmt.Errorf("zkhash: unknown family %s", p.Family)
	}
	if p.Modulus == nil || p.Modulus.Sign() <= 0 {
		return fmt.Errorf("zkhash: missing modulus")
	}
	width := p.StateSize
	if width < 2 || p.Rate < 1 || p.Rate >= width {
		return fmt.Errorf("zkhash: invalid width %d / rate %d", width, p.Rate)
	}
	switch p.Family {
	case Poseidon, Poseidon2:
		if p.FullRounds < 2 || p.FullRounds%2 != 0 {
			return fmt.Errorf("zkhash: full rounds must be even and positive, got %d", p.FullRounds)
		}
		if p.PartialRounds < 0 {
			return fmt.Errorf("zkhash: negative partial rounds")
		}
	default:
		if p.FullRounds < 1 {
			return fmt.Errorf("zkhash: %s needs at least one round", p.Family)
		}
		if p.PartialRounds != 0 {
			return fmt.Errorf("zkhash: %s has no partial rounds", p.Family)
		}
	}
	if len(p.RoundConstants) != p.Rows()*width {
		return fmt.Errorf("zkhash: round constants length mismatch")
	}
	if len(p.MDS) != width*width {
		return fmt.Errorf("zkhash: mds length mismatch")
	}
	if p.Family == Poseidon2 {
		if err := checkPoseidon2(p); err != nil {
			return err
		}
	} else if p.InternalDiagonal != nil {
		return fmt.Errorf("zkhash: %s has no internal matrix", p.Family)
	}
	for _, c := range p.RoundConstants {
		if c.Sign() < 0 || c.Cmp(p.Modulus) >= 0 {
			return fmt.Errorf("zkhash: round constant out of range")
		}
	}
	for _, c := range p.MDS {
		if c.Sign() <= 0 || c.Cmp(p.Modulus) >= 0 {
			return fmt.Errorf("zkhash: mds entry out of range")
		}
	}
	return validateAlpha(p)
}

func validateAlpha(p *Parameters) error {
	a := p.Alpha
	pm1 := new(big.Int).Sub(p.Modulus, big.NewInt(1))
	exp := new(big.Int).SetUint64(a.Exponent)
	if a.Exponent < 3 || new(big.Int).GCD(nil, nil, exp, pm1).Cmp(big.NewInt(1)) != 0 {
		return fmt.Errorf("zkhash: alpha %d is not coprime with p-1", a.Exponent)
	}
	if err := checkChain(a.Chain, exp); err != nil {
		return fmt.Errorf("zkhash: forward s-box chain: %w", err)
	}
	if !p.Family.NeedsInverse() {
		return nil
	}
	if a.Inverse == nil {
		return fmt.Errorf("zkhash: %s needs the inverse exponent", p.Family)
	}
	prod := new(big.Int).Mul(exp, a.Inverse)
	if prod.Mod(prod, pm1).Cmp(big.NewInt(1)) != 0 {
		return fmt.Errorf("zkhash: alpha inverse does not invert alpha mod p-1")
	}
	if err := checkChain(a.InverseChain, a.Inverse); err != nil {
		return fmt.Errorf("zkhash: inverse s-box chain: %w", err)
	}
	return nil
}

func checkChain(c *chain.Chain, target *big.Int) error {
	if c == nil {
		return fmt.Errorf("missing")
	}
	if c.Exponent.Cmp(target) != 0 {
		return fmt.Errorf("built for %s, want %s", c.Exponent, target)
	}
	return c.Verify()
}
