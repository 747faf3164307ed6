package zkhash

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	zk "github.com/vocdoni/zkhash"
)

func valueOf(e fr.Element) emulated.Element[BN254Fr] {
	var b big.Int
	e.BigInt(&b)
	return ValueOf[BN254Fr](&b)
}

func small(vs ...uint64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i].SetUint64(v)
	}
	return out
}

type emuFixedCircuit struct {
	family   zk.Family
	Inputs   [2]emulated.Element[BN254Fr]
	Expected emulated.Element[BN254Fr] `gnark:",public"`
}

func (c *emuFixedCircuit) Define(api frontend.API) error {
	f, err := emulated.NewField[BN254Fr](api)
	if err != nil {
		return err
	}
	out, err := Hash[BN254Fr](api, c.family, &c.Inputs[0], &c.Inputs[1])
	if err != nil {
		return err
	}
	f.AssertIsEqual(out, &c.Expected)
	return nil
}

func TestEmulatedHashMatchesNative(t *testing.T) {
	for _, family := range []zk.Family{zk.Poseidon, zk.RescuePrime, zk.Poseidon2} {
		h, err := zk.NewBN254(family)
		require.NoError(t, err)
		in := small(1, 2)
		native, err := h.HashFixed(in)
		require.NoError(t, err)

		witness := emuFixedCircuit{
			Inputs:   [2]emulated.Element[BN254Fr]{valueOf(in[0]), valueOf(in[1])},
			Expected: valueOf(native[0]),
		}
		err = test.IsSolved(&emuFixedCircuit{family: family}, &witness, ecc.BLS12_377.ScalarField())
		require.NoError(t, err, family.String())
	}
}

type emuMultiCircuit struct {
	Inputs   [5]emulated.Element[BN254Fr]
	Expected emulated.Element[BN254Fr] `gnark:",public"`
}

func (c *emuMultiCircuit) Define(api frontend.API) error {
	f, err := emulated.NewField[BN254Fr](api)
	if err != nil {
		return err
	}
	h, err := New[BN254Fr](api, zk.Poseidon)
	if err != nil {
		return err
	}
	inputs := make([]*emulated.Element[BN254Fr], len(c.Inputs))
	for i := range c.Inputs {
		inputs[i] = &c.Inputs[i]
	}
	out, err := h.MultiHash(inputs...)
	if err != nil {
		return err
	}
	f.AssertIsEqual(out, &c.Expected)
	return nil
}

func TestEmulatedMultiHash(t *testing.T) {
	in := small(1, 2, 3, 4, 5)
	var witness emuMultiCircuit
	for i := range in {
		witness.Inputs[i] = valueOf(in[i])
	}
	var expected fr.Element
	_, err := expected.SetString("14224904658376787018057662373750131317363113873077772270511502167813693763617")
	require.NoError(t, err)
	witness.Expected = valueOf(expected)
	require.NoError(t, test.IsSolved(&emuMultiCircuit{}, &witness, ecc.BLS12_377.ScalarField()))

	witness.Expected = valueOf(in[0])
	require.Error(t, test.IsSolved(&emuMultiCircuit{}, &witness, ecc.BLS12_377.ScalarField()))
}

func TestEmulatedConstraintCounts(t *testing.T) {
	for _, family := range []zk.Family{zk.Poseidon, zk.RescuePrime} {
		ccs, err := frontend.Compile(ecc.BLS12_377.ScalarField(), r1cs.NewBuilder, &emuFixedCircuit{family: family})
		if err != nil {
			t.Fatalf("compile %s: %v", family, err)
		}
		t.Logf("emulated %s constraints: %d", family, ccs.GetNbConstraints())
	}
}
