package arith

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/params"
)

// Emulated emits constraints for a non-native field T.
type Emulated[T emulated.FieldParams] struct {
	field *emulated.Field[T]
}

func NewEmulated[T emulated.FieldParams](api frontend.API) (*Emulated[T], error) {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return nil, err
	}
	return &Emulated[T]{field: f}, nil
}

// Field exposes the underlying emulated field.
func (e *Emulated[T]) Field() *emulated.Field[T] { return e.field }

func (e *Emulated[T]) Add(a, b *emulated.Element[T]) *emulated.Element[T] {
	return e.field.Add(a, b)
}

func (e *Emulated[T]) Mul(a, b *emulated.Element[T]) *emulated.Element[T] {
	return e.field.Mul(a, b)
}

func (e *Emulated[T]) Square(a *emulated.Element[T]) *emulated.Element[T] {
	return e.field.Mul(a, a)
}

func (e *Emulated[T]) Exp(a *emulated.Element[T], k uint64) *emulated.Element[T] {
	return expSmall(e.Mul, e.Square, e.One(), a, k)
}

func (e *Emulated[T]) Root(a *emulated.Element[T], alpha *params.Alpha) (*emulated.Element[T], error) {
	if alpha.Chain == nil {
		return nil, fmt.Errorf("zkhash: no chain for alpha %d", alpha.Exponent)
	}
	exp := e.field.NewElement(new(big.Int).SetUint64(alpha.Exponent))
	res, err := e.field.NewHint(EmulatedRootHint, 1, exp, a)
	if err != nil {
		return nil, err
	}
	y := res[0]
	e.field.AssertIsEqual(chain.Evaluate(alpha.Chain, y, e.Mul), a)
	return y, nil
}

func (e *Emulated[T]) Constant(c *big.Int) *emulated.Element[T] {
	return e.field.NewElement(new(big.Int).Mod(c, e.Modulus()))
}

func (e *Emulated[T]) Zero() *emulated.Element[T] { return e.field.Zero() }

func (e *Emulated[T]) One() *emulated.Element[T] { return e.field.One() }

func (e *Emulated[T]) AssertIsEqual(a, b *emulated.Element[T]) error {
	e.field.AssertIsEqual(a, b)
	return nil
}

func (e *Emulated[T]) Modulus() *big.Int {
	var fp T
	return new(big.Int).Set(fp.Modulus())
}
