package zkhash

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zkhash/internal/sponge"
)

// Transcript mirrors the native transcript so that challenges computed
// out of circuit can be recomputed in circuit.
type Transcript struct {
	duplex *sponge.Duplex[frontend.Variable]
}

func (h *Hasher) NewTranscript(domain *big.Int) *Transcript {
	return &Transcript{duplex: sponge.NewDuplex[frontend.Variable](h.api, h.perm, domain)}
}

func (t *Transcript) Commit(values ...frontend.Variable) error {
	return t.duplex.Absorb(values...)
}

func (t *Transcript) Challenge() (frontend.Variable, error) {
	return t.duplex.Squeeze()
}
