package zkhash

import (
	"math/big"

	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"
)

// BN254Fr and BLS12377Fr are the emulated scalar fields with native
// hashers in the root package.
type (
	BN254Fr    = emparams.BN254Fr
	BLS12377Fr = emparams.BLS12377Fr
)

// ValueOf wraps a canonical integer as a witness element.
func ValueOf[T emulated.FieldParams](v *big.Int) emulated.Element[T] {
	return emulated.ValueOf[T](v)
}
