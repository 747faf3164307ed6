package sponge

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/vocdoni/zkhash/internal/arith"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/permutation"
)

type nativeAPI = *arith.Native[fr.Element, *fr.Element]

func setup(t *testing.T, f params.Family) (nativeAPI, *permutation.Permutation[fr.Element]) {
	t.Helper()
	api := arith.NewNative[fr.Element]()
	p, err := params.Get(params.Config{Family: f, Modulus: api.Modulus()})
	require.NoError(t, err)
	perm, err := permutation.New[fr.Element](api, p)
	require.NoError(t, err)
	return api, perm
}

func elements(api nativeAPI, vs ...int64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i] = api.Constant(big.NewInt(v))
	}
	return out
}

func toStrings(es []fr.Element) []string {
	out := make([]string, len(es))
	for i := range es {
		out[i] = es[i].String()
	}
	return out
}

func TestTags(t *testing.T) {
	require.Equal(t, "36893488147419103232", FixedLengthTag(2, 1).String())
	require.Equal(t, "55340232221128654850", FixedLengthTag(3, 3).String())
	require.Equal(t, "18446744073709551616", VariableLengthTag(1).String())
	require.Equal(t, "18446744073709551618", VariableLengthTag(3).String())
}

func TestHashFixedVectors(t *testing.T) {
	cases := []struct {
		family params.Family
		input  []int64
		out    int
		want   []string
	}{
		{params.Poseidon, []int64{1, 2}, 1, []string{"10445759673518981357714927304667278241901253231249296397975850986011624698787"}},
		{params.Rescue, []int64{1, 2}, 1, []string{"17601617383721114536951257816569287549720989498313399659195095717817521750184"}},
		{params.RescuePrime, []int64{1, 2}, 1, []string{"6765091956789100333928852946234664702301500436568916531622573008185370033151"}},
		{params.Poseidon, []int64{1, 2, 3}, 3, []string{
			"15201600101316307497709865607208334866634499009849230473619962399411215875316",
			"2942557074128122437061282013413855848748759531450214229154307364630558570093",
			"15142916130826468685312335564939980382407629215820108424316013553547043345457",
		}},
		{params.Rescue, []int64{1, 2, 3}, 3, []string{
			"17075753838731417058479175631543776120793916394711422651797359667279987883521",
			"3179081719728061320959376949044609237779219815952763796391368834325981318571",
			"18733518717427477459020830791800821394287900139512950793573231164782851625943",
		}},
		{params.RescuePrime, []int64{1, 2, 3}, 3, []string{
			"5958789829114452752316314897496764771257251740631517722532637739191471871275",
			"18918578948291420767460789130006234147528064105810583291608861362909961349515",
			"20458196276969139170753850474413877645210275711314520878480654772841147070245",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.family.String(), func(t *testing.T) {
			api, perm := setup(t, tc.family)
			out, err := HashFixed[fr.Element](api, perm, elements(api, tc.input...), len(tc.input), tc.out)
			require.NoError(t, err)
			require.Equal(t, tc.want, toStrings(out))
		})
	}
}

func TestHashVarLengthVectors(t *testing.T) {
	cases := []struct {
		family params.Family
		input  []int64
		want   string
	}{
		{params.Poseidon, []int64{1, 2}, "19059959637246732748831831039289308190588899601582323942290384713966795298448"},
		{params.Poseidon, []int64{1, 2, 0, 0}, "5937572461306276447791431205027215879516597195164691632281572271360379699563"},
		{params.Poseidon, nil, "17155482244931881911267774668630556356288893235179601289177575509109993420899"},
		{params.Rescue, []int64{1, 2}, "3719585065253832000701729964201005922854802127899438776409455779418501924742"},
		{params.Rescue, []int64{1, 2, 0, 0}, "19506583822818741465416850470511838161890820731689022308498339774970911933043"},
		{params.Rescue, nil, "18896998906405073102639314179559889430969230081585297569157018415102847496770"},
		{params.RescuePrime, []int64{1, 2}, "8147399016931015056285552092218893684328634660532350700626214847140342534940"},
		{params.RescuePrime, []int64{1, 2, 0, 0}, "20829766889996440185591306511316981817965429448406025562392510397760543244709"},
		{params.RescuePrime, nil, "17448879940102231162259757936368164840213098627546315657845499010430966403389"},
	}
	for _, tc := range cases {
		api, perm := setup(t, tc.family)
		out, err := HashVarLength[fr.Element](api, perm, elements(api, tc.input...), 1)
		require.NoError(t, err, "%s %v", tc.family, tc.input)
		require.Equal(t, tc.want, out[0].String(), "%s %v", tc.family, tc.input)
	}
}

func TestInputShape(t *testing.T) {
	api, perm := setup(t, params.Poseidon)

	_, err := HashVarLength[fr.Element](api, perm, elements(api, 1, 2, 3), 1)
	require.ErrorIs(t, err, ErrInvalidInputShape)

	_, err = HashFixed[fr.Element](api, perm, elements(api, 1, 2, 3), 2, 1)
	require.ErrorIs(t, err, ErrInvalidInputShape)

	_, err = HashFixed[fr.Element](api, perm, nil, 0, 1)
	require.ErrorIs(t, err, ErrInvalidInputShape)

	_, err = HashFixed[fr.Element](api, perm, elements(api, 1), 1, 0)
	require.ErrorIs(t, err, ErrInvalidInputShape)

	_, err = HashVarLength[fr.Element](api, perm, elements(api, 1, 2), 0)
	require.ErrorIs(t, err, ErrInvalidInputShape)
}

func TestSpongeModes(t *testing.T) {
	api, perm := setup(t, params.RescuePrime)
	s := New[fr.Element](api, perm)
	require.Equal(t, Absorbing, s.Mode())
	require.NoError(t, s.Specialize(big.NewInt(9)))
	require.NoError(t, s.Absorb(elements(api, 1, 2)))
	require.Error(t, s.Specialize(big.NewInt(1)))

	first, err := s.Squeeze(1)
	require.NoError(t, err)
	require.Equal(t, Squeezing, s.Mode())
	require.ErrorIs(t, s.Absorb(elements(api, 3)), ErrWrongMode)

	s.Reset()
	require.Equal(t, Absorbing, s.Mode())
	require.NoError(t, s.Absorb(elements(api, 1, 2)))
	again, err := s.Squeeze(1)
	require.NoError(t, err)
	require.Equal(t, first[0].String(), again[0].String())
}

func TestPartialBlockEndsAbsorb(t *testing.T) {
	api, perm := setup(t, params.Poseidon)
	s := New[fr.Element](api, perm)
	require.NoError(t, s.Absorb(elements(api, 1)))
	require.ErrorIs(t, s.Absorb(elements(api, 2)), ErrInvalidInputShape)
	require.NoError(t, s.Absorb(nil))
}

func TestSqueezeContinues(t *testing.T) {
	api, perm := setup(t, params.Rescue)
	whole, err := HashVarLength[fr.Element](api, perm, elements(api, 1, 2), 3)
	require.NoError(t, err)
	require.Equal(t, []string{
		"14891169003770852730301526341617150073040245212555715184839758075436448501175",
		"19288235413893058141830842156270492292941439930701227831068318470687992702556",
		"18102662274903323813348084293498931312863183164803646653099364489214195843170",
	}, toStrings(whole))

	s := New[fr.Element](api, perm)
	require.NoError(t, s.Specialize(VariableLengthTag(3)))
	require.NoError(t, s.Absorb(elements(api, 1, 2, 1, 0)))
	var parts []fr.Element
	for range 3 {
		out, err := s.Squeeze(1)
		require.NoError(t, err)
		parts = append(parts, out...)
	}
	require.Equal(t, toStrings(whole), toStrings(parts))
}

func TestDuplex(t *testing.T) {
	api, perm := setup(t, params.Poseidon)
	d := NewDuplex[fr.Element](api, perm, func() *big.Int { v, _ := new(big.Int).SetString("140780338713440565246585722", 10); return v }())
	require.NoError(t, d.Absorb(elements(api, 1, 2, 3)...))
	c1, err := d.Squeeze()
	require.NoError(t, err)
	require.NoError(t, d.Absorb(elements(api, 4)...))
	c2, err := d.Squeeze()
	require.NoError(t, err)
	c3, err := d.Squeeze()
	require.NoError(t, err)

	require.Equal(t, []string{
		"8475567441102347515952899145086400248326933980269264766202145505290995096747",
		"16163211423914745259163820214894804423838570481306417398730500155958078677057",
		"1543985634197600563382609593539757721358616981117843158960566515309272206562",
	}, toStrings([]fr.Element{c1, c2, c3}))
}
