package arith

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/params"
)

// Element is the method set shared by the gnark-crypto field elements
// (fr.Element of every curve), with PE = *E.
type Element[E any] interface {
	*E
	Add(a, b *E) *E
	Mul(a, b *E) *E
	Square(a *E) *E
	Neg(a *E) *E
	SetOne() *E
	SetZero() *E
	SetBigInt(v *big.Int) *E
	SetUint64(v uint64) *E
	BigInt(res *big.Int) *big.Int
	Equal(a *E) bool
	String() string
}

// Native evaluates over concrete field elements.
type Native[E any, PE Element[E]] struct {
	modulus *big.Int
}

// NewNative returns the adapter for E. The modulus is recovered from -1.
func NewNative[E any, PE Element[E]]() *Native[E, PE] {
	var minusOne E
	PE(&minusOne).SetOne()
	PE(&minusOne).Neg(&minusOne)
	m := PE(&minusOne).BigInt(new(big.Int))
	return &Native[E, PE]{modulus: m.Add(m, big.NewInt(1))}
}

func (n *Native[E, PE]) Add(a, b E) E {
	var z E
	PE(&z).Add(&a, &b)
	return z
}

func (n *Native[E, PE]) Mul(a, b E) E {
	var z E
	PE(&z).Mul(&a, &b)
	return z
}

func (n *Native[E, PE]) Square(a E) E {
	var z E
	PE(&z).Square(&a)
	return z
}

func (n *Native[E, PE]) Exp(a E, k uint64) E {
	return expSmall(n.Mul, n.Square, n.One(), a, k)
}

func (n *Native[E, PE]) Root(a E, alpha *params.Alpha) (E, error) {
	if alpha.InverseChain == nil {
		var zero E
		return zero, fmt.Errorf("zkhash: no inverse chain for alpha %d", alpha.Exponent)
	}
	return chain.EvaluateSquaring(alpha.InverseChain, a, n.Mul, n.Square), nil
}

func (n *Native[E, PE]) Constant(c *big.Int) E {
	var z E
	PE(&z).SetBigInt(c)
	return z
}

func (n *Native[E, PE]) Zero() E {
	var z E
	PE(&z).SetZero()
	return z
}

func (n *Native[E, PE]) One() E {
	var z E
	PE(&z).SetOne()
	return z
}

func (n *Native[E, PE]) AssertIsEqual(a, b E) error {
	if !PE(&a).Equal(&b) {
		return fmt.Errorf("zkhash: %s != %s", PE(&a).String(), PE(&b).String())
	}
	return nil
}

func (n *Native[E, PE]) Modulus() *big.Int {
	return new(big.Int).Set(n.modulus)
}

// ToBig returns the canonical integer of a.
func (n *Native[E, PE]) ToBig(a E) *big.Int {
	return PE(&a).BigInt(new(big.Int))
}
