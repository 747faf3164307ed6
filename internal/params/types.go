package params

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/chain"
)

const (
	DefaultWidth         = 3
	DefaultSecurityLevel = 128
	DefaultChainBudget   = 512
)

// Alpha captures the S-box exponent and the chains used to evaluate it.
type Alpha struct {
	Exponent uint64
	// Inverse is Exponent^-1 mod (p-1). Nil for Poseidon.
	Inverse      *big.Int
	Chain        *chain.Chain
	InverseChain *chain.Chain
}

// Parameters bundles all constants needed by the permutation.
type Parameters struct {
	Family        Family
	Modulus       *big.Int
	SecurityLevel int
	StateSize     int
	Rate          int
	// FullRounds is R_F for the Poseidon families and the number of double
	// rounds N for the Rescue families.
	FullRounds    int
	PartialRounds int
	Alpha         Alpha
	MDSOffset     uint64

	// MDS is the Cauchy matrix, or the external matrix for Poseidon2.
	MDS []*big.Int
	// InternalDiagonal is the diagonal of the Poseidon2 partial round matrix
	// 1 + diag(d_i - 1). Nil for the other families.
	InternalDiagonal []*big.Int
	RoundConstants   []*big.Int
}

// Capacity returns t - r.
func (p *Parameters) Capacity() int { return p.StateSize - p.Rate }

// Rows returns the number of round constant vectors.
func (p *Parameters) Rows() int {
	return constantRows(p.Family, p.FullRounds, p.PartialRounds)
}

func constantRows(f Family, full, partial int) int {
	switch f {
	case Rescue:
		return 2*full + 1
	case RescuePrime:
		return 2 * full
	default:
		return full + partial
	}
}

// Config selects a parameter set.
type Config struct {
	Family        Family
	Modulus       *big.Int
	Width         int
	Rate          int
	SecurityLevel int
	MDSOffset     uint64
	ChainBudget   int
	ChainSearch   chain.Strategy
}

func (c Config) withDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Rate == 0 {
		c.Rate = c.Width - 1
	}
	if c.SecurityLevel == 0 {
		c.SecurityLevel = DefaultSecurityLevel
	}
	if c.ChainBudget == 0 {
		c.ChainBudget = DefaultChainBudget
	}
	return c
}

func (c Config) check() error {
	if !c.Family.valid() {
		return fmt.Errorf("zkhash: unknown family %s", c.Family)
	}
	if c.Modulus == nil || c.Modulus.Cmp(big.NewInt(3)) < 0 || !c.Modulus.ProbablyPrime(20) {
		return fmt.Errorf("zkhash: modulus must be an odd prime")
	}
	if c.Width < 2 {
		return fmt.Errorf("zkhash: state width must be at least 2, got %d", c.Width)
	}
	if c.Family == Poseidon2 && c.Width > 3 && c.Width%4 != 0 {
		return fmt.Errorf("zkhash: poseidon2 width must be 2, 3 or a multiple of 4, got %d", c.Width)
	}
	if c.Rate < 1 || c.Rate >= c.Width {
		return fmt.Errorf("zkhash: rate must be in [1, %d), got %d", c.Width, c.Rate)
	}
	if c.SecurityLevel < 1 {
		return fmt.Errorf("zkhash: security level must be positive, got %d", c.SecurityLevel)
	}
	return nil
}

// Key identifies the parameter set the config generates.
func (c Config) Key() string {
	c = c.withDefaults()
	mod := "<nil>"
	if c.Modulus != nil {
		mod = c.Modulus.Text(16)
	}
	return fmt.Sprintf("%s/%s/%d/%d/%d/%d/%d/%s",
		c.Family, mod, c.Width, c.Rate, c.SecurityLevel, c.MDSOffset, c.ChainBudget, c.ChainSearch)
}
