package params

import (
	"fmt"
	"math"
	"math/big"
)

const (
	poseidonMaxPartial = 500
	poseidonMaxFull    = 100
	rescueMaxRounds    = 25
)

// poseidonRounds picks (R_F, R_P) minimizing the S-box count t*R_F + R_P
// among the pairs that satisfy the statistical, interpolation and Groebner
// bounds, then adds the usual margin of two full rounds and 7.5% partial
// rounds.
func poseidonRounds(p *big.Int, t int, alpha uint64, sec int) (int, int, error) {
	bestCost, bestRF, bestRP := math.MaxInt, 0, 0
	for rp := 1; rp < poseidonMaxPartial; rp++ {
		for rf := 4; rf < poseidonMaxFull; rf += 2 {
			if !poseidonSecure(p, t, rf, rp, alpha, sec) {
				continue
			}
			rfm := rf + 2
			rpm := int(math.Ceil(float64(rp) * 1.075))
			cost := t*rfm + rpm
			if cost < bestCost || (cost == bestCost && rfm < bestRF) {
				bestCost, bestRF, bestRP = cost, rfm, rpm
			}
			break
		}
	}
	if bestRF == 0 {
		return 0, 0, fmt.Errorf("zkhash: no secure poseidon round numbers for t=%d, alpha=%d", t, alpha)
	}
	return bestRF, bestRP, nil
}

func poseidonSecure(p *big.Int, t, rf, rp int, alpha uint64, sec int) bool {
	n := p.BitLen()
	lp := log2Big(p)
	a := float64(alpha)
	m := float64(sec)
	tf := float64(t)
	la2 := math.Log(2) / math.Log(a)

	rf1 := 10.0
	if m <= math.Floor(lp-(a-1)/2)*(tf+1) {
		rf1 = 6
	}
	rf2 := 1 + math.Ceil(la2*math.Min(m, float64(n))) + math.Ceil(math.Log(tf)/math.Log(a)) - float64(rp)
	rf3 := la2*math.Min(m, lp) - float64(rp)
	rf4 := tf - 1 + la2*math.Min(m/(tf+1), lp/2) - float64(rp)
	rf5 := (tf - 2 + m/(2*math.Log2(a)) - float64(rp)) / (tf - 1)

	rfMax := math.Ceil(rf1)
	for _, v := range []float64{rf2, rf3, rf4, rf5} {
		rfMax = math.Max(rfMax, math.Ceil(v))
	}
	if float64(rf) < rfMax {
		return false
	}

	rt := t / 3
	over := int64((rf-1)*t + rp + rt + rt*(rf/2) + rp + int(alpha))
	under := int64(rt*(rf/2) + rp + int(alpha))
	binom := new(big.Int).Binomial(over, under)
	return math.Ceil(2*log2Big(binom)) >= m
}

// rescueBaseRounds returns the smallest l for which the Groebner basis
// attack on l rounds exceeds 2^sec.
func rescueBaseRounds(t, rate int, alpha uint64, sec int) (int, error) {
	target := new(big.Int).Lsh(big.NewInt(1), uint(sec))
	for l := 1; l < rescueMaxRounds; l++ {
		dcon := int64((alpha-1)*uint64(t)*uint64(l-1))/2 + 2
		v := int64(t*(l-1) + rate)
		b := new(big.Int).Binomial(v+dcon, v)
		if b.Mul(b, b).Cmp(target) > 0 {
			return l, nil
		}
	}
	return 0, fmt.Errorf("zkhash: no secure rescue round number below %d for t=%d", rescueMaxRounds, t)
}

// rescueRounds returns the number of double rounds N.
func rescueRounds(f Family, t, rate int, alpha uint64, sec int) (int, error) {
	l, err := rescueBaseRounds(t, rate, alpha, sec)
	if err != nil {
		return 0, err
	}
	if f == Rescue {
		return max(10, 2*l), nil
	}
	return int(math.Ceil(1.5 * float64(max(5, l)))), nil
}

// log2Big approximates log2(x) for x > 0 from its top 53 bits.
func log2Big(x *big.Int) float64 {
	n := x.BitLen()
	if n <= 53 {
		return math.Log2(float64(x.Uint64()))
	}
	top := new(big.Int).Rsh(x, uint(n-53))
	return math.Log2(float64(top.Uint64())) + float64(n-53)
}
