package zkhash

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	zk "github.com/vocdoni/zkhash"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// MultiHash is the in-circuit counterpart of the native MultiHash.
func (h *Hasher) MultiHash(inputs ...frontend.Variable) (frontend.Variable, error) {
	var zero frontend.Variable
	if len(inputs) == 0 {
		return zero, fmt.Errorf("%w: need at least 1 element", zk.ErrInvalidInputShape)
	}
	if len(inputs) > zk.MaxMultiHashInputs {
		return zero, fmt.Errorf("%w: too many inputs (%d > %d)", zk.ErrInvalidInputShape, len(inputs), zk.MaxMultiHashInputs)
	}
	rate := h.Rate()

	current := make([]frontend.Variable, len(inputs))
	copy(current, inputs)

	for len(current) > rate {
		next := make([]frontend.Variable, 0, (len(current)+rate-1)/rate)
		for i := 0; i < len(current); i += rate {
			chunk := current[i:min(i+rate, len(current))]
			out, err := sponge.HashFixed[frontend.Variable](h.api, h.perm, chunk, len(chunk), 1)
			if err != nil {
				return zero, err
			}
			next = append(next, out[0])
		}
		current = next
	}

	out, err := sponge.HashFixed[frontend.Variable](h.api, h.perm, current, len(current), 1)
	if err != nil {
		return zero, err
	}
	return out[0], nil
}
