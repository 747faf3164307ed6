package zkhash

import (
	"math/big"

	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/params"
)

// Settings is the resolved set of options shared by the native, circuit and
// emulated hashers.
type Settings struct {
	Width         int
	Rate          int
	SecurityLevel int
	MDSOffset     uint64
	// InputLength is the element count HashFixed accepts. Zero means the rate.
	InputLength  int
	OutputLength int
	ChainBudget  int
	Exhaustive   bool
}

// Option configures a hasher.
type Option func(*Settings)

// WithWidth sets the state width t.
func WithWidth(t int) Option {
	return func(s *Settings) { s.Width = t }
}

// WithRate sets the rate r. Defaults to t-1.
func WithRate(r int) Option {
	return func(s *Settings) { s.Rate = r }
}

func WithSecurityLevel(bits int) Option {
	return func(s *Settings) { s.SecurityLevel = bits }
}

// WithMDSOffset shifts the Cauchy points. Use it when generation fails with
// ErrSingularMDS.
func WithMDSOffset(offset uint64) Option {
	return func(s *Settings) { s.MDSOffset = offset }
}

func WithInputLength(n int) Option {
	return func(s *Settings) { s.InputLength = n }
}

func WithOutputLength(o int) Option {
	return func(s *Settings) { s.OutputLength = o }
}

// WithChainBudget bounds the length of the S-box addition chains.
func WithChainBudget(steps int) Option {
	return func(s *Settings) { s.ChainBudget = steps }
}

// WithExhaustiveChainSearch runs every addchain algorithm instead of the
// fast subset. Generation takes seconds per exponent.
func WithExhaustiveChainSearch() Option {
	return func(s *Settings) { s.Exhaustive = true }
}

// NewSettings applies opts over the defaults.
func NewSettings(opts ...Option) Settings {
	s := Settings{
		Width:         params.DefaultWidth,
		SecurityLevel: params.DefaultSecurityLevel,
		OutputLength:  1,
		ChainBudget:   params.DefaultChainBudget,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Rate == 0 {
		s.Rate = s.Width - 1
	}
	if s.InputLength == 0 {
		s.InputLength = s.Rate
	}
	return s
}

// Config maps the settings onto the parameter generator input.
func (s Settings) Config(family Family, modulus *big.Int) params.Config {
	cfg := params.Config{
		Family:        family,
		Modulus:       modulus,
		Width:         s.Width,
		Rate:          s.Rate,
		SecurityLevel: s.SecurityLevel,
		MDSOffset:     s.MDSOffset,
		ChainBudget:   s.ChainBudget,
		ChainSearch:   chain.Fast,
	}
	if s.Exhaustive {
		cfg.ChainSearch = chain.Exhaustive
	}
	return cfg
}
