package arith

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/vocdoni/zkhash/internal/chain"
	"github.com/vocdoni/zkhash/internal/params"
)

func init() {
	solver.RegisterHint(RootHint, EmulatedRootHint)
}

// Circuit emits constraints on a gnark frontend.API.
type Circuit struct {
	api frontend.API
}

func NewCircuit(api frontend.API) *Circuit {
	return &Circuit{api: api}
}

func (c *Circuit) Add(a, b frontend.Variable) frontend.Variable { return c.api.Add(a, b) }

func (c *Circuit) Mul(a, b frontend.Variable) frontend.Variable { return c.api.Mul(a, b) }

func (c *Circuit) Square(a frontend.Variable) frontend.Variable { return c.api.Mul(a, a) }

func (c *Circuit) Exp(a frontend.Variable, k uint64) frontend.Variable {
	return expSmall(c.Mul, c.Square, c.One(), a, k)
}

// Root takes y = a^(1/alpha) from a hint and constrains y^alpha == a with
// the forward chain.
func (c *Circuit) Root(a frontend.Variable, alpha *params.Alpha) (frontend.Variable, error) {
	if alpha.Chain == nil {
		return nil, fmt.Errorf("zkhash: no chain for alpha %d", alpha.Exponent)
	}
	res, err := c.api.NewHint(RootHint, 1, alpha.Exponent, a)
	if err != nil {
		return nil, err
	}
	y := res[0]
	c.api.AssertIsEqual(chain.Evaluate(alpha.Chain, y, c.Mul), a)
	return y, nil
}

func (c *Circuit) Constant(v *big.Int) frontend.Variable { return new(big.Int).Set(v) }

func (c *Circuit) Zero() frontend.Variable { return 0 }

func (c *Circuit) One() frontend.Variable { return 1 }

func (c *Circuit) AssertIsEqual(a, b frontend.Variable) error {
	c.api.AssertIsEqual(a, b)
	return nil
}

func (c *Circuit) Modulus() *big.Int {
	return new(big.Int).Set(c.api.Compiler().Field())
}

// RootHint computes inputs[1]^(1/inputs[0]) over the solver field using the
// registered inverse chain.
func RootHint(mod *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 1 {
		return fmt.Errorf("zkhash: root hint expects 2 inputs and 1 output, got %d and %d", len(inputs), len(outputs))
	}
	if !inputs[0].IsUint64() {
		return fmt.Errorf("zkhash: alpha %s does not fit in 64 bits", inputs[0])
	}
	c, err := chain.LookupRoot(mod, inputs[0].Uint64())
	if err != nil {
		return err
	}
	outputs[0].Set(c.Exp(inputs[1], mod))
	return nil
}

// EmulatedRootHint is RootHint for emulated field elements.
func EmulatedRootHint(nativeMod *big.Int, nativeInputs, nativeOutputs []*big.Int) error {
	return emulated.UnwrapHint(nativeInputs, nativeOutputs, RootHint)
}
