package arith

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/vocdoni/zkhash/internal/params"
)

func rescueParams(t *testing.T, modulus *big.Int) *params.Parameters {
	t.Helper()
	p, err := params.Get(params.Config{Family: params.Rescue, Modulus: modulus})
	require.NoError(t, err)
	return p
}

func TestNativeModulus(t *testing.T) {
	require.Equal(t, ecc.BN254.ScalarField(), NewNative[fr.Element]().Modulus())
	require.Equal(t, ecc.BLS12_377.ScalarField(), NewNative[blsfr.Element]().Modulus())
}

func TestNativeOps(t *testing.T) {
	n := NewNative[fr.Element]()
	a := n.Constant(big.NewInt(7))
	b := n.Constant(big.NewInt(9))

	require.NoError(t, n.AssertIsEqual(n.Add(a, b), n.Constant(big.NewInt(16))))
	require.NoError(t, n.AssertIsEqual(n.Mul(a, b), n.Constant(big.NewInt(63))))
	require.NoError(t, n.AssertIsEqual(n.Mul(a, a), n.Constant(big.NewInt(49))))
	require.NoError(t, n.AssertIsEqual(n.Square(a), n.Constant(big.NewInt(49))))
	require.NoError(t, n.AssertIsEqual(n.Square(b), n.Mul(b, b)))
	require.NoError(t, n.AssertIsEqual(n.Exp(a, 5), n.Constant(big.NewInt(16807))))
	require.NoError(t, n.AssertIsEqual(n.Exp(a, 0), n.One()))
	require.NoError(t, n.AssertIsEqual(n.Add(a, n.Zero()), a))
	require.Error(t, n.AssertIsEqual(a, b))

	// Constants are reduced.
	wrapped := new(big.Int).Add(ecc.BN254.ScalarField(), big.NewInt(3))
	require.Equal(t, big.NewInt(3), n.ToBig(n.Constant(wrapped)))
}

func TestNativeRoot(t *testing.T) {
	n := NewNative[fr.Element]()
	p := rescueParams(t, n.Modulus())

	x := n.Constant(big.NewInt(1234567))
	y, err := n.Root(x, &p.Alpha)
	require.NoError(t, err)
	require.NoError(t, n.AssertIsEqual(n.Exp(y, p.Alpha.Exponent), x))

	poseidon, err := params.Get(params.Config{Family: params.Poseidon, Modulus: n.Modulus()})
	require.NoError(t, err)
	_, err = n.Root(x, &poseidon.Alpha)
	require.Error(t, err)
}

func TestRootHint(t *testing.T) {
	mod := ecc.BN254.ScalarField()
	x := big.NewInt(424242)
	out := []*big.Int{new(big.Int)}
	require.NoError(t, RootHint(mod, []*big.Int{big.NewInt(5), x}, out))
	require.Equal(t, x, new(big.Int).Exp(out[0], big.NewInt(5), mod))

	// 2 divides p-1.
	require.Error(t, RootHint(mod, []*big.Int{big.NewInt(2), x}, out))
	require.Error(t, RootHint(mod, []*big.Int{x}, out))
}

type rootCircuit struct {
	X        frontend.Variable
	Expected frontend.Variable `gnark:",public"`
}

func (c *rootCircuit) Define(api frontend.API) error {
	ca := NewCircuit(api)
	p, err := params.Get(params.Config{Family: params.Rescue, Modulus: ca.Modulus()})
	if err != nil {
		return err
	}
	y, err := ca.Root(c.X, &p.Alpha)
	if err != nil {
		return err
	}
	api.AssertIsEqual(y, c.Expected)
	api.AssertIsEqual(ca.Exp(y, p.Alpha.Exponent), c.X)
	return nil
}

func TestCircuitRoot(t *testing.T) {
	assert := test.NewAssert(t)
	n := NewNative[fr.Element]()
	p := rescueParams(t, n.Modulus())
	x := n.Constant(big.NewInt(99))
	y, err := n.Root(x, &p.Alpha)
	require.NoError(t, err)

	assert.NoError(test.IsSolved(&rootCircuit{}, &rootCircuit{X: x, Expected: y}, ecc.BN254.ScalarField()))
	assert.Error(test.IsSolved(&rootCircuit{}, &rootCircuit{X: x, Expected: x}, ecc.BN254.ScalarField()))
}

type emulatedRootCircuit struct {
	X        emulated.Element[emparams.BN254Fr]
	Expected emulated.Element[emparams.BN254Fr]
}

func (c *emulatedRootCircuit) Define(api frontend.API) error {
	ea, err := NewEmulated[emparams.BN254Fr](api)
	if err != nil {
		return err
	}
	p, err := params.Get(params.Config{Family: params.Rescue, Modulus: ea.Modulus()})
	if err != nil {
		return err
	}
	y, err := ea.Root(&c.X, &p.Alpha)
	if err != nil {
		return err
	}
	return ea.AssertIsEqual(y, &c.Expected)
}

func TestEmulatedRoot(t *testing.T) {
	assert := test.NewAssert(t)
	n := NewNative[fr.Element]()
	p := rescueParams(t, n.Modulus())
	x := big.NewInt(31337)
	y, err := n.Root(n.Constant(x), &p.Alpha)
	require.NoError(t, err)

	witness := &emulatedRootCircuit{
		X:        emulated.ValueOf[emparams.BN254Fr](x),
		Expected: emulated.ValueOf[emparams.BN254Fr](n.ToBig(y)),
	}
	assert.NoError(test.IsSolved(&emulatedRootCircuit{}, witness, ecc.BLS12_377.ScalarField()))
}
