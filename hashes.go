package zkhash

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Hash1 to Hash4 are fixed-length BN254 hashes with the default width and a
// single output element.

func Hash1(family Family, a fr.Element) (fr.Element, error) {
	return hashBN254(family, a)
}

func Hash2(family Family, a, b fr.Element) (fr.Element, error) {
	return hashBN254(family, a, b)
}

func Hash3(family Family, a, b, c fr.Element) (fr.Element, error) {
	return hashBN254(family, a, b, c)
}

func Hash4(family Family, a, b, c, d fr.Element) (fr.Element, error) {
	return hashBN254(family, a, b, c, d)
}

type helperKey struct {
	family Family
	arity  int
}

// helpers caches the Hash1..Hash4 hashers; a Hasher is immutable.
var helpers sync.Map

func helperHasher(family Family, arity int) (*Hasher[fr.Element, *fr.Element], error) {
	key := helperKey{family: family, arity: arity}
	if h, ok := helpers.Load(key); ok {
		return h.(*Hasher[fr.Element, *fr.Element]), nil
	}
	h, err := NewBN254(family, WithInputLength(arity))
	if err != nil {
		return nil, err
	}
	actual, _ := helpers.LoadOrStore(key, h)
	return actual.(*Hasher[fr.Element, *fr.Element]), nil
}

func hashBN254(family Family, inputs ...fr.Element) (fr.Element, error) {
	h, err := helperHasher(family, len(inputs))
	if err != nil {
		return fr.Element{}, err
	}
	out, err := h.HashFixed(inputs)
	if err != nil {
		return fr.Element{}, err
	}
	return out[0], nil
}
