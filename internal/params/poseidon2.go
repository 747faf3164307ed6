package params

import (
	"fmt"
	"math/big"
)

// m4 is the 4x4 block of the Poseidon2 external matrix.
var m4 = [4][4]int64{
	{5, 7, 1, 3},
	{4, 6, 1, 1},
	{1, 3, 5, 7},
	{1, 1, 4, 6},
}

// poseidon2External returns the row-major external matrix: circ(2, 1) and
// circ(2, 1, 1) for t = 2, 3, and circ(2·M4, M4, ..., M4) for t = 4k.
func poseidon2External(t int) ([]*big.Int, error) {
	m := make([]*big.Int, t*t)
	switch {
	case t == 2 || t == 3:
		for i := range t {
			for j := range t {
				m[i*t+j] = big.NewInt(1)
			}
			m[i*t+i] = big.NewInt(2)
		}
	case t%4 == 0:
		for i := range t {
			for j := range t {
				v := m4[i%4][j%4]
				if i/4 == j/4 {
					v *= 2
				}
				m[i*t+j] = big.NewInt(v)
			}
		}
	default:
		return nil, fmt.Errorf("zkhash: poseidon2 width must be 2, 3 or a multiple of 4, got %d", t)
	}
	return m, nil
}

// poseidon2Diagonal returns the internal diagonal [2, 2, 3] for t = 3 and
// [2, 3, ..., t+1] otherwise.
func poseidon2Diagonal(t int) []*big.Int {
	d := make([]*big.Int, t)
	if t == 3 {
		d[0], d[1], d[2] = big.NewInt(2), big.NewInt(2), big.NewInt(3)
		return d
	}
	for i := range d {
		d[i] = big.NewInt(int64(i + 2))
	}
	return d
}

// internalMatrix expands the diagonal into 1 + diag(d_i - 1).
func internalMatrix(d []*big.Int) []*big.Int {
	t := len(d)
	m := make([]*big.Int, t*t)
	for i := range t {
		for j := range t {
			m[i*t+j] = big.NewInt(1)
		}
		m[i*t+i] = new(big.Int).Set(d[i])
	}
	return m
}

// clearPartialLanes zeroes the constants of lanes 1..t-1 in the partial
// rounds, which only add to the first lane.
func clearPartialLanes(rc []*big.Int, t, full, partial int) {
	half := full / 2
	for r := half; r < half+partial; r++ {
		for j := 1; j < t; j++ {
			rc[r*t+j] = new(big.Int)
		}
	}
}

func checkPoseidon2(p *Parameters) error {
	t := p.StateSize
	if len(p.InternalDiagonal) != t {
		return fmt.Errorf("zkhash: internal diagonal length mismatch")
	}
	for _, d := range p.InternalDiagonal {
		if d.Sign() <= 0 || d.Cmp(p.Modulus) >= 0 {
			return fmt.Errorf("zkhash: internal diagonal entry out of range")
		}
	}
	all := make([]int, t)
	for i := range all {
		all[i] = i
	}
	if determinant(p.MDS, t, all, all, p.Modulus).Sign() == 0 {
		return fmt.Errorf("%w: poseidon2 external matrix", ErrSingularMDS)
	}
	if determinant(internalMatrix(p.InternalDiagonal), t, all, all, p.Modulus).Sign() == 0 {
		return fmt.Errorf("%w: poseidon2 internal matrix", ErrSingularMDS)
	}
	return nil
}
