package seal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	digest := []byte{0xde, 0xad, 0xbe, 0xef}
	plaintext := []byte("the table entry at index 7 is never recomputed")

	capsule, err := Seal(plaintext, digest)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, capsule)

	opened, err := Open(capsule, digest)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestOpenRejectsWrongDigest(t *testing.T) {
	plaintext := []byte("phase L mixing state")

	capsule, err := Seal(plaintext, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	_, err = Open(capsule, []byte{1, 2, 3, 5})
	require.Error(t, err)
}

func TestOpenRejectsTruncatedCapsule(t *testing.T) {
	_, err := Open([]byte{1, 2, 3}, []byte{9, 9})
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestSealProducesFreshNonceEachCall(t *testing.T) {
	digest := []byte{7, 7, 7}
	plaintext := []byte("squaring ladder")

	a, err := Seal(plaintext, digest)
	require.NoError(t, err)
	b, err := Seal(plaintext, digest)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestStrengthenPassphraseDeterministic(t *testing.T) {
	salt := []byte("fixed-salt-for-test-purposes!!!!")

	a := StrengthenPassphrase([]byte("correct horse battery staple"), salt)
	b := StrengthenPassphrase([]byte("correct horse battery staple"), salt)
	require.Equal(t, a, b)

	c := StrengthenPassphrase([]byte("wrong passphrase"), salt)
	require.NotEqual(t, a, c)
}

func TestStrengthenPassphraseOutputLength(t *testing.T) {
	salt := []byte("another-fixed-salt-for-testing!")
	msg := StrengthenPassphrase([]byte("a puzzle solver's passphrase"), salt)
	require.Len(t, msg, 32)
}
