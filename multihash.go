package zkhash

import (
	"fmt"

	"github.com/vocdoni/zkhash/internal/sponge"
)

const MaxMultiHashInputs = 256

// MultiHash reduces up to MaxMultiHashInputs elements to one by hashing
// rate-sized chunks with the fixed-length mode, level by level. A short
// last chunk is hashed with its own length.
func (h *Hasher[E, PE]) MultiHash(inputs ...E) (E, error) {
	var zero E
	if len(inputs) == 0 {
		return zero, fmt.Errorf("%w: need at least 1 element", ErrInvalidInputShape)
	}
	if len(inputs) > MaxMultiHashInputs {
		return zero, fmt.Errorf("%w: too many inputs (%d > %d)", ErrInvalidInputShape, len(inputs), MaxMultiHashInputs)
	}
	rate := h.Rate()

	current := make([]E, len(inputs))
	copy(current, inputs)

	for len(current) > rate {
		next := make([]E, 0, (len(current)+rate-1)/rate)
		for i := 0; i < len(current); i += rate {
			chunk := current[i:min(i+rate, len(current))]
			out, err := sponge.HashFixed[E](h.api, h.perm, chunk, len(chunk), 1)
			if err != nil {
				return zero, err
			}
			next = append(next, out[0])
		}
		current = next
	}

	out, err := sponge.HashFixed[E](h.api, h.perm, current, len(current), 1)
	if err != nil {
		return zero, err
	}
	return out[0], nil
}
