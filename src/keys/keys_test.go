package keys

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConservativeParams(t *testing.T) {
	p := ConservativeParams()
	require.EqualValues(t, 4_000, p.M)
	require.EqualValues(t, 4_000, p.L)
	require.EqualValues(t, 2_048, p.T)
	require.EqualValues(t, 2_048, p.KBits)
	require.EqualValues(t, 16, p.U)
}

func TestFastParams(t *testing.T) {
	p := FastParams()
	require.EqualValues(t, 8_000_000, p.M)
	require.EqualValues(t, 20_000, p.L)
	require.EqualValues(t, 1, p.T)
	require.EqualValues(t, 1_024, p.KBits)
	require.EqualValues(t, 16, p.U)
}

func TestGenerateKeysRejectsUndersizedModulus(t *testing.T) {
	_, _, err := GenerateKeys(128)
	require.ErrorIs(t, err, ErrInvalidParameters)
}

func TestGenerateKeysRejectsOddModulus(t *testing.T) {
	_, _, err := GenerateKeys(257)
	require.ErrorIs(t, err, ErrInvalidParameters)
}

func TestGenerateKeysMinimumSize(t *testing.T) {
	sk, pk, err := GenerateKeys(256)
	require.NoError(t, err)
	require.Equal(t, 256, pk.N.BitLen())
	require.Equal(t, sk.N(), pk.N)
}

func TestPrivateKeyDerivedFields(t *testing.T) {
	sk, pk, err := GenerateKeys(256)
	require.NoError(t, err)

	require.Equal(t, 0, sk.N().Cmp(pk.N))
	require.Equal(t, pk, sk.Public())

	phi := sk.Phi()
	require.True(t, phi.Sign() > 0)
	require.True(t, phi.Cmp(pk.N) < 0)
}

func TestGenerateKeysErrorIsUnwrappable(t *testing.T) {
	_, _, err := GenerateKeys(0)
	require.True(t, errors.Is(err, ErrInvalidParameters))
}
