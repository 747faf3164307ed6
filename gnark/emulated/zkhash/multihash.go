package zkhash

import (
	"fmt"

	"github.com/consensys/gnark/std/math/emulated"

	zk "github.com/vocdoni/zkhash"
	"github.com/vocdoni/zkhash/internal/sponge"
)

// MultiHash hashes up to zk.MaxMultiHashInputs emulated elements with the
// same chunk tree as the native MultiHash.
func (h *Hasher[T]) MultiHash(inputs ...*emulated.Element[T]) (*emulated.Element[T], error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: need at least 1 element", zk.ErrInvalidInputShape)
	}
	if len(inputs) > zk.MaxMultiHashInputs {
		return nil, fmt.Errorf("%w: too many inputs (%d > %d)", zk.ErrInvalidInputShape, len(inputs), zk.MaxMultiHashInputs)
	}
	rate := h.Rate()

	current := make([]*emulated.Element[T], len(inputs))
	copy(current, inputs)

	for len(current) > rate {
		next := make([]*emulated.Element[T], 0, (len(current)+rate-1)/rate)
		for i := 0; i < len(current); i += rate {
			end := min(i+rate, len(current))
			out, err := sponge.HashFixed[*emulated.Element[T]](h.api, h.perm, current[i:end], end-i, 1)
			if err != nil {
				return nil, err
			}
			next = append(next, out[0])
		}
		current = next
	}

	out, err := sponge.HashFixed[*emulated.Element[T]](h.api, h.perm, current, len(current), 1)
	if err != nil {
		return nil, err
	}
	return h.api.Field().Reduce(out[0]), nil
}
