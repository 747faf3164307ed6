package params

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrSingularMDS is returned when the Cauchy construction for the requested
// offset does not yield an MDS matrix. Retry with another offset.
var ErrSingularMDS = errors.New("zkhash: mds matrix is singular")

// maxExhaustiveMDS bounds the width for which every square submatrix is checked.
const maxExhaustiveMDS = 8

// cauchyMDS builds M[i][j] = 1/(x_i + y_j) with x_i = offset+i and
// y_j = offset+t+j, row-major.
func cauchyMDS(p *big.Int, t int, offset uint64) ([]*big.Int, error) {
	if big.NewInt(int64(2*t)).Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: width %d too large for the field", ErrSingularMDS, t)
	}
	base := new(big.Int).SetUint64(offset)
	base.Lsh(base, 1)
	m := make([]*big.Int, t*t)
	for i := range t {
		for j := range t {
			s := big.NewInt(int64(t + i + j))
			s.Add(s, base).Mod(s, p)
			if s.Sign() == 0 {
				return nil, fmt.Errorf("%w: x_%d + y_%d vanishes for offset %d", ErrSingularMDS, i, j, offset)
			}
			m[i*t+j] = s.ModInverse(s, p)
		}
	}
	if err := checkMDS(m, t, p); err != nil {
		return nil, fmt.Errorf("%w: offset %d: %v", ErrSingularMDS, offset, err)
	}
	return m, nil
}

// checkMDS verifies that every square submatrix is invertible. Above
// maxExhaustiveMDS only the full matrix is checked; the Cauchy shape
// already guarantees the rest once the entries are well defined.
func checkMDS(m []*big.Int, t int, p *big.Int) error {
	if t > maxExhaustiveMDS {
		all := make([]int, t)
		for i := range all {
			all[i] = i
		}
		if determinant(m, t, all, all, p).Sign() == 0 {
			return fmt.Errorf("matrix is not invertible")
		}
		return nil
	}
	if rows, cols, found := singularSubmatrix(m, t, p); found {
		return fmt.Errorf("submatrix rows %v cols %v is singular", rows, cols)
	}
	return nil
}

// IsMDS reports whether the t×t row-major matrix has no singular square submatrix.
func IsMDS(m []*big.Int, t int, p *big.Int) bool {
	_, _, found := singularSubmatrix(m, t, p)
	return !found
}

func singularSubmatrix(m []*big.Int, t int, p *big.Int) ([]int, []int, bool) {
	for k := 1; k <= t; k++ {
		subsets := combinations(t, k)
		for _, rows := range subsets {
			for _, cols := range subsets {
				if determinant(m, t, rows, cols, p).Sign() == 0 {
					return rows, cols, true
				}
			}
		}
	}
	return nil, nil, false
}

// determinant of the submatrix selected by rows and cols, mod p.
func determinant(m []*big.Int, t int, rows, cols []int, p *big.Int) *big.Int {
	k := len(rows)
	a := make([][]*big.Int, k)
	for i, r := range rows {
		a[i] = make([]*big.Int, k)
		for j, c := range cols {
			a[i][j] = new(big.Int).Set(m[r*t+c])
		}
	}
	det := big.NewInt(1)
	for col := range k {
		pivot := -1
		for r := col; r < k; r++ {
			if a[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return new(big.Int)
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			det.Neg(det)
		}
		det.Mul(det, a[col][col]).Mod(det, p)
		inv := new(big.Int).ModInverse(a[col][col], p)
		for r := col + 1; r < k; r++ {
			if a[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Int).Mul(a[r][col], inv)
			f.Mod(f, p)
			for c := col; c < k; c++ {
				d := new(big.Int).Mul(f, a[col][c])
				a[r][c].Sub(a[r][c], d).Mod(a[r][c], p)
			}
		}
	}
	return det.Mod(det, p)
}

// combinations lists the k-element subsets of [0, n) in lexicographic order.
func combinations(n, k int) [][]int {
	var out [][]int
	cur := make([]int, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i <= n-(k-len(cur)); i++ {
			cur = append(cur, i)
			rec(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)
	return out
}
