package zkhash

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vocdoni/zkhash/internal/sponge"
)

// MaxGrindBits bounds the proof-of-work difficulty accepted by Grind.
const MaxGrindBits = 32

var lowMask = new(big.Int).SetUint64(math.MaxUint64)

// Transcript is a Fiat-Shamir transcript over the hasher's permutation.
type Transcript[E any, PE Element[E]] struct {
	duplex *sponge.Duplex[E]
}

// NewTranscript starts a transcript separated by domain.
func (h *Hasher[E, PE]) NewTranscript(domain *big.Int) *Transcript[E, PE] {
	return &Transcript[E, PE]{duplex: sponge.NewDuplex[E](h.api, h.perm, domain)}
}

// Commit absorbs values into the transcript.
func (t *Transcript[E, PE]) Commit(values ...E) error {
	return t.duplex.Absorb(values...)
}

// Challenge squeezes the next challenge.
func (t *Transcript[E, PE]) Challenge() (E, error) {
	return t.duplex.Squeeze()
}

// Grind returns the smallest nonce for which committing its low and high
// 32-bit halves and squeezing one challenge yields at least difficulty
// trailing zero bits in the challenge's low 64 bits. The transcript itself
// is not modified.
func (t *Transcript[E, PE]) Grind(ctx context.Context, difficulty int) (uint64, error) {
	if difficulty < 0 || difficulty > MaxGrindBits {
		return 0, fmt.Errorf("zkhash: grind difficulty must be in [0, %d], got %d", MaxGrindBits, difficulty)
	}
	workers := uint64(runtime.GOMAXPROCS(0))
	var best atomic.Uint64
	best.Store(math.MaxUint64)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for i, nonce := 0, w; nonce < best.Load(); i, nonce = i+1, nonce+workers {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				ok, err := t.VerifyGrind(difficulty, nonce)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				for cur := best.Load(); nonce < cur; cur = best.Load() {
					if best.CompareAndSwap(cur, nonce) {
						break
					}
				}
				return nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	nonce := best.Load()
	if nonce == math.MaxUint64 {
		return 0, fmt.Errorf("zkhash: no nonce found for difficulty %d", difficulty)
	}
	return nonce, nil
}

// VerifyGrind reports whether nonce meets difficulty on the current
// transcript state.
func (t *Transcript[E, PE]) VerifyGrind(difficulty int, nonce uint64) (bool, error) {
	var lo, hi E
	PE(&lo).SetUint64(nonce & math.MaxUint32)
	PE(&hi).SetUint64(nonce >> 32)
	d := t.duplex.Clone()
	if err := d.Absorb(lo, hi); err != nil {
		return false, err
	}
	c, err := d.Squeeze()
	if err != nil {
		return false, err
	}
	v := PE(&c).BigInt(new(big.Int))
	low := v.And(v, lowMask).Uint64()
	return bits.TrailingZeros64(low) >= difficulty, nil
}
