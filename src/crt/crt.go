// Package crt implements Chinese-Remainder-Theorem-accelerated modular
// exponentiation: given the factorization N = p*q, PowMod computes c^d mod N
// roughly four times faster than a single modpow against the full modulus,
// because each half-size exponentiation (mod p, mod q) is much cheaper than
// one full-size exponentiation.
//
// This is the optimization the Diodon privileged path leans on: it knows
// (p, q) rather than just N, so every exponentiation it needs can go through
// this package instead of math/big's modpow against the full modulus.
package crt

import (
	"errors"
	"math/big"
)

// ErrArithmeticPrecondition is returned when q has no multiplicative inverse
// mod p, which happens if p is not prime or if gcd(q, p) != 1. Honestly
// generated RSA primes never trigger this; it indicates caller error.
var ErrArithmeticPrecondition = errors.New("crt: q has no inverse mod p (p not prime or gcd(q,p) != 1)")

var one = big.NewInt(1)

// Inverse returns p^(q-2) mod q, the modular inverse of p mod q via Fermat's
// little theorem. q must be prime for the result to be meaningful.
func Inverse(p, q *big.Int) *big.Int {
	qMinus2 := new(big.Int).Sub(q, big.NewInt(2))
	return new(big.Int).Exp(p, qMinus2, q)
}

// PowMod returns c^d mod (p*q), computed via the Chinese Remainder Theorem
// given the factorization. It assumes gcd(c, p*q) == 1, which holds for a
// random message against RSA-sized primes; it does not assume d is already
// reduced mod phi(p*q) — that Fermat reduction happens internally.
func PowMod(c, d, p, q *big.Int) (*big.Int, error) {
	if !p.ProbablyPrime(0) || new(big.Int).GCD(nil, nil, q, p).Cmp(one) != 0 {
		return nil, ErrArithmeticPrecondition
	}

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)

	dP := new(big.Int).Mod(d, pMinus1)
	dQ := new(big.Int).Mod(d, qMinus1)

	m1 := new(big.Int).Exp(c, dP, p)
	m2 := new(big.Int).Exp(c, dQ, q)

	qInv := Inverse(q, p)

	// The +2p term keeps the intermediate non-negative before the mod p
	// reduction; math/big's Int is signed so a direct subtraction would also
	// work, but we keep the unsigned-safe form the reference construction
	// uses so the two are trivially comparable.
	twoP := new(big.Int).Lsh(p, 1)
	diff := new(big.Int).Add(m1, twoP)
	diff.Sub(diff, m2)
	diff.Mod(diff, p)

	h := new(big.Int).Mul(qInv, diff)
	h.Mod(h, p)

	result := new(big.Int).Mul(h, q)
	result.Add(result, m2)

	pq := new(big.Int).Mul(p, q)
	result.Mod(result, pq)

	return result, nil
}
