package params

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/log"
)

const maxAlpha = 1 << 16

// SelectAlpha returns the smallest alpha >= 3 coprime with p-1 together
// with its inverse mod p-1.
func SelectAlpha(p *big.Int) (uint64, *big.Int, error) {
	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	one := big.NewInt(1)
	gcd := new(big.Int)
	for a := uint64(3); a < maxAlpha; a++ {
		exp := new(big.Int).SetUint64(a)
		if gcd.GCD(nil, nil, exp, pm1).Cmp(one) != 0 {
			continue
		}
		inv := new(big.Int).ModInverse(exp, pm1)
		if inv == nil {
			return 0, nil, fmt.Errorf("zkhash: alpha %d has no inverse mod p-1", a)
		}
		return a, inv, nil
	}
	return 0, nil, fmt.Errorf("zkhash: no s-box exponent below %d is coprime with p-1", maxAlpha)
}

// Generate derives a parameter set. The output only depends on cfg.
func Generate(cfg Config) (*Parameters, error) {
	cfg = cfg.withDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	start := time.Now()
	p := new(big.Int).Set(cfg.Modulus)

	exponent, inverse, err := SelectAlpha(p)
	if err != nil {
		return nil, err
	}
	alpha := Alpha{Exponent: exponent}
	if alpha.Chain, err = chain.Search(new(big.Int).SetUint64(exponent), cfg.ChainSearch, cfg.ChainBudget); err != nil {
		return nil, err
	}
	if cfg.Family.NeedsInverse() {
		alpha.Inverse = inverse
		if alpha.InverseChain, err = chain.Search(inverse, cfg.ChainSearch, cfg.ChainBudget); err != nil {
			return nil, err
		}
	}

	params := &Parameters{
		Family:        cfg.Family,
		Modulus:       p,
		SecurityLevel: cfg.SecurityLevel,
		StateSize:     cfg.Width,
		Rate:          cfg.Rate,
		Alpha:         alpha,
		MDSOffset:     cfg.MDSOffset,
	}
	switch cfg.Family {
	case Poseidon, Poseidon2:
		params.FullRounds, params.PartialRounds, err = poseidonRounds(p, cfg.Width, exponent, cfg.SecurityLevel)
	default:
		params.FullRounds, err = rescueRounds(cfg.Family, cfg.Width, cfg.Rate, exponent, cfg.SecurityLevel)
	}
	if err != nil {
		return nil, err
	}

	count := params.Rows() * cfg.Width
	params.RoundConstants, err = roundConstants(cfg.Family, p, cfg.Width, params.Capacity(), cfg.SecurityLevel, count)
	if err != nil {
		return nil, err
	}
	if cfg.Family == Poseidon2 {
		clearPartialLanes(params.RoundConstants, cfg.Width, params.FullRounds, params.PartialRounds)
		if params.MDS, err = poseidon2External(cfg.Width); err != nil {
			return nil, err
		}
		params.InternalDiagonal = poseidon2Diagonal(cfg.Width)
	} else if params.MDS, err = cauchyMDS(p, cfg.Width, cfg.MDSOffset); err != nil {
		return nil, err
	}
	if err := Validate(params); err != nil {
		return nil, err
	}

	if alpha.InverseChain != nil {
		chain.RegisterRoot(p, exponent, alpha.InverseChain)
	}

	log.Logger().Debug().
		Str("family", cfg.Family.String()).
		Int("width", cfg.Width).
		Int("rate", cfg.Rate).
		Int("security", cfg.SecurityLevel).
		Int("fullRounds", params.FullRounds).
		Int("partialRounds", params.PartialRounds).
		Uint64("alpha", exponent).
		Int("alphaChain", alpha.Chain.Len()).
		Int("inverseChain", chainLen(alpha.InverseChain)).
		Dur("took", time.Since(start)).
		Msg("generated permutation parameters")
	return params, nil
}

func chainLen(c *chain.Chain) int {
	if c == nil {
		return 0
	}
	return c.Len()
}

var cache = struct {
	sync.RWMutex
	group  singleflight.Group
	params map[string]*Parameters
}{params: make(map[string]*Parameters)}

// Get returns the cached parameter set for cfg, generating it on first use.
// Concurrent callers asking for the same set share one generation.
func Get(cfg Config) (*Parameters, error) {
	key := cfg.Key()
	cache.RLock()
	p, ok := cache.params[key]
	cache.RUnlock()
	if ok {
		return p, nil
	}
	v, err, _ := cache.group.Do(key, func() (any, error) {
		p, err := Generate(cfg)
		if err != nil {
			return nil, err
		}
		cache.Lock()
		cache.params[key] = p
		cache.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Parameters), nil
}
