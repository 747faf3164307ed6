package chain

import (
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"time"

	"github.com/mmcloughlin/addchain"
	"github.com/mmcloughlin/addchain/alg"
	"github.com/mmcloughlin/addchain/alg/binary"
	"github.com/mmcloughlin/addchain/alg/contfrac"
	"github.com/mmcloughlin/addchain/alg/dict"
	"github.com/mmcloughlin/addchain/alg/ensemble"
	"github.com/mmcloughlin/addchain/alg/heuristic"
	"golang.org/x/sync/errgroup"

	"github.com/vocdoni/zkhash/internal/log"
)

// Strategy selects the set of algorithms tried by Search.
type Strategy int

const (
	// Fast runs a handful of sliding-window dictionary algorithms.
	Fast Strategy = iota
	// Exhaustive runs the full addchain ensemble. Slow for 256-bit targets.
	Exhaustive
)

func (s Strategy) String() string {
	switch s {
	case Fast:
		return "fast"
	case Exhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func (s Strategy) algorithms() []alg.ChainAlgorithm {
	if s == Exhaustive {
		return append(ensemble.Ensemble(), binary.RightToLeft{})
	}
	seqalgs := []alg.SequenceAlgorithm{
		heuristic.NewAlgorithm(heuristic.UseFirst(
			heuristic.Halving{},
			heuristic.DeltaLargest{},
		)),
		contfrac.NewAlgorithm(contfrac.DichotomicStrategy{}),
	}
	as := []alg.ChainAlgorithm{binary.RightToLeft{}}
	for _, k := range []uint{4, 8, 16, 32} {
		for _, seqalg := range seqalgs {
			as = append(as, dict.NewAlgorithm(dict.SlidingWindow{K: k}, seqalg))
		}
	}
	return as
}

// Search returns the shortest verified chain for target found by the
// strategy's algorithms. A budget > 0 bounds the number of steps.
func Search(target *big.Int, strategy Strategy, budget int) (*Chain, error) {
	if target == nil || target.Sign() <= 0 {
		return nil, fmt.Errorf("zkhash: chain target must be positive")
	}
	if target.Cmp(big.NewInt(1)) == 0 {
		return &Chain{Exponent: new(big.Int).Set(target)}, nil
	}

	start := time.Now()
	algs := strategy.algorithms()
	found := make([]*Chain, len(algs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, a := range algs {
		g.Go(func() error {
			c, err := fromAlgorithm(a, target)
			if err != nil {
				log.Logger().Trace().Err(err).Str("algorithm", a.String()).Msg("addition chain search failed")
				return nil
			}
			log.Logger().Trace().Str("algorithm", a.String()).Int("length", c.Len()).Msg("addition chain candidate")
			found[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Chain
	for _, c := range found {
		if c != nil && (best == nil || c.Len() < best.Len()) {
			best = c
		}
	}
	if best == nil {
		return nil, fmt.Errorf("zkhash: no addition chain found for %s", target)
	}
	if budget > 0 && best.Len() > budget {
		return nil, fmt.Errorf("%w: %d steps for %s, budget %d", ErrBudgetExceeded, best.Len(), target, budget)
	}
	doubles, adds := best.Count()
	log.Logger().Debug().
		Str("strategy", strategy.String()).
		Int("doubles", doubles).
		Int("adds", adds).
		Dur("took", time.Since(start)).
		Msg("addition chain selected")
	return best, nil
}

func fromAlgorithm(a alg.ChainAlgorithm, target *big.Int) (*Chain, error) {
	ac, err := a.FindChain(target)
	if err != nil {
		return nil, err
	}
	return FromAddchain(ac, target)
}

// FromAddchain converts and verifies an addchain chain for target.
func FromAddchain(ac addchain.Chain, target *big.Int) (*Chain, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	if err := ac.Produces(target); err != nil {
		return nil, err
	}
	program, err := ac.Program()
	if err != nil {
		return nil, err
	}
	c := &Chain{
		Exponent: new(big.Int).Set(target),
		Steps:    make([]Step, len(program)),
	}
	for i, op := range program {
		c.Steps[i] = Step{I: op.I, J: op.J}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// root is the inverse S-box chain registered for one field.
type root struct {
	modulus *big.Int
	alpha   uint64
	chain   *Chain
}

// roots is scanned linearly; a process only ever holds a few fields.
var roots = struct {
	sync.RWMutex
	entries []root
}{}

// RegisterRoot records c as the chain for alpha^-1 mod (modulus-1), so that
// solver hints can take roots without searching.
func RegisterRoot(modulus *big.Int, alpha uint64, c *Chain) {
	roots.Lock()
	defer roots.Unlock()
	for i, r := range roots.entries {
		if r.alpha == alpha && r.modulus.Cmp(modulus) == 0 {
			roots.entries[i].chain = c
			return
		}
	}
	roots.entries = append(roots.entries, root{modulus: new(big.Int).Set(modulus), alpha: alpha, chain: c})
}

// LookupRoot returns the chain for alpha^-1 mod (modulus-1). Unknown pairs
// are inverted, searched and registered.
func LookupRoot(modulus *big.Int, alpha uint64) (*Chain, error) {
	roots.RLock()
	for _, r := range roots.entries {
		if r.alpha == alpha && r.modulus.Cmp(modulus) == 0 {
			roots.RUnlock()
			return r.chain, nil
		}
	}
	roots.RUnlock()

	pm1 := new(big.Int).Sub(modulus, big.NewInt(1))
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(alpha), pm1)
	if inv == nil {
		return nil, fmt.Errorf("zkhash: alpha %d is not invertible mod p-1", alpha)
	}
	c, err := Search(inv, Fast, 0)
	if err != nil {
		return nil, err
	}
	RegisterRoot(modulus, alpha, c)
	return c, nil
}
