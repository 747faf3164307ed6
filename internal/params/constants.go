package params

import (
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// seed is the domain string the SHAKE256 stream is keyed with.
func seed(f Family, p *big.Int, t, capacity, sec int) string {
	return fmt.Sprintf("%s(%s,%d,%d,%d)", f.seedTag(), p.String(), t, capacity, sec)
}

// roundConstants expands the seed into count field elements. Each element
// consumes ceil(bits(p)/8)+1 bytes, read little-endian and reduced mod p.
func roundConstants(f Family, p *big.Int, t, capacity, sec, count int) ([]*big.Int, error) {
	shake := sha3.NewShake256()
	if _, err := shake.Write([]byte(seed(f, p, t, capacity, sec))); err != nil {
		return nil, err
	}
	size := (p.BitLen()+7)/8 + 1
	buf := make([]byte, size)
	out := make([]*big.Int, count)
	for i := range out {
		if _, err := io.ReadFull(shake, buf); err != nil {
			return nil, fmt.Errorf("zkhash: reading round constant %d: %w", i, err)
		}
		out[i] = new(big.Int).SetBytes(reversed(buf))
		out[i].Mod(out[i], p)
	}
	return out, nil
}

func reversed(data []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[len(data)-1-i] = data[i]
	}
	return out
}
