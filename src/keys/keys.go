// Package keys implements the Diodon RSA-style key model and the two
// canonical parameter profiles. Key generation delegates prime search to
// crypto/rsa, treating it as the external collaborator the specification
// describes: the core only ever consumes the resulting (p, q) or N.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidParameters is returned when a requested key size or Params value
// violates the specification's basic shape constraints (before any work is
// attempted).
var ErrInvalidParameters = errors.New("diodon: invalid parameters")

// ErrKeyGenFailed wraps an underlying RNG or prime-search failure from
// crypto/rsa. It is fatal for the current call; callers may retry.
var ErrKeyGenFailed = errors.New("diodon: key generation failed")

// minKeyBits is the specification's testing minimum; production use should
// pick 2048 (conservative profile) or at least 1024 (fast profile).
const minKeyBits = 256

// PublicKey holds the RSA modulus N = P*Q. It is safe to share freely.
type PublicKey struct {
	N *big.Int
}

// PrivateKey holds the two prime factors of N. N and Phi(N) are derived on
// demand rather than memoized, so there is nothing beyond (P, Q) for a
// caller to leak by holding this value longer than necessary.
type PrivateKey struct {
	P *big.Int
	Q *big.Int
}

// N returns P*Q.
func (sk PrivateKey) N() *big.Int {
	return new(big.Int).Mul(sk.P, sk.Q)
}

// Phi returns (P-1)(Q-1), Euler's totient of N. This is the trapdoor value
// that makes the privileged digest path possible; it must never be
// persisted or transmitted.
func (sk PrivateKey) Phi() *big.Int {
	one := big.NewInt(1)
	pMinus1 := new(big.Int).Sub(sk.P, one)
	qMinus1 := new(big.Int).Sub(sk.Q, one)
	return new(big.Int).Mul(pMinus1, qMinus1)
}

// Public derives the matching PublicKey.
func (sk PrivateKey) Public() PublicKey {
	return PublicKey{N: sk.N()}
}

// Params configures a Diodon digest: M entries in the memory table, L
// mixing rounds, a squaring depth T per table step, the RSA modulus size
// KBits used by GenerateKeys, and a U-byte output width.
type Params struct {
	M     uint64
	L     uint64
	T     uint64
	KBits uint64
	U     uint64
}

// ConservativeParams returns the CPU-heavy profile: a small table (M = 4000)
// but 2048 sequential squarings per table step.
func ConservativeParams() Params {
	return Params{M: 4_000, L: 4_000, T: 2_048, KBits: 2_048, U: 16}
}

// FastParams returns the memory-heavy profile: one squaring per table step,
// but 8,000,000 table entries backed by 1024-bit moduli.
func FastParams() Params {
	return Params{M: 8_000_000, L: 20_000, T: 1, KBits: 1_024, U: 16}
}

// GenerateKeys produces a fresh RSA-style key pair with an N of exactly
// kBits bits, consuming crypto/rand as its randomness source. kBits must be
// even and at least 256 (the specification's testing minimum; production
// profiles use 2048 or 1024).
func GenerateKeys(kBits int) (PrivateKey, PublicKey, error) {
	if kBits <= 0 || kBits%2 != 0 || kBits < minKeyBits {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("%w: k_bits must be even and >= %d, got %d", ErrInvalidParameters, minKeyBits, kBits)
	}

	key, err := rsa.GenerateKey(rand.Reader, kBits)
	if err != nil {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}
	if len(key.Primes) < 2 {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("%w: rsa key missing primes", ErrKeyGenFailed)
	}

	sk := PrivateKey{
		P: new(big.Int).Set(key.Primes[0]),
		Q: new(big.Int).Set(key.Primes[1]),
	}
	return sk, sk.Public(), nil
}
