package crt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInverse(t *testing.T) {
	got := Inverse(big.NewInt(31), big.NewInt(37))
	require.Equal(t, big.NewInt(6), got)
}

func TestPowModConcreteScenario(t *testing.T) {
	c := big.NewInt(5)
	d := big.NewInt(200)
	p := big.NewInt(37)
	q := big.NewInt(31)

	got, err := PowMod(c, d, p, q)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1048), got)
}

// TestPowModAgainstPlainModPow checks CRT correctness against a direct
// modpow for a larger, more RSA-shaped pair of primes.
func TestPowModAgainstPlainModPow(t *testing.T) {
	p, _ := new(big.Int).SetString("13270159569298364102590828989123999927823242049974571921817075346300096102090311023718167382683031794589299932545623449542461777499628836970633616840367291", 10)
	q, _ := new(big.Int).SetString("12772322319733548247851901381850054224408980869676616358291561606873489416423155106454795516367791954119113161475136097310823566024399906461641393526506223", 10)
	n := new(big.Int).Mul(p, q)

	c := big.NewInt(21)
	d := big.NewInt(123456789)

	want := new(big.Int).Exp(c, d, n)
	got, err := PowMod(c, d, p, q)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPowModRejectsNonCoprimeFactors(t *testing.T) {
	// p and q sharing a factor violates the precondition that q has an
	// inverse mod p.
	p := big.NewInt(9) // not prime, and gcd(q, p) != 1 below
	q := big.NewInt(3)

	_, err := PowMod(big.NewInt(2), big.NewInt(5), p, q)
	require.ErrorIs(t, err, ErrArithmeticPrecondition)
}
