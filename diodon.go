// Package diodon is the root facade of the Diodon memory-hard hash function:
// a single entry point exposing the flat, language-neutral API the
// specification describes (GenerateKeys, ConservativeParams, FastParams,
// Privileged, NonPrivileged), mirroring how the original Rust implementation
// exposed everything at its crate root (lib.rs).
//
// The actual component implementations live in the src/ subpackages, which
// remain independently usable (src/bigint and src/crt in particular are
// pure, dependency-free math that callers may want without pulling in the
// RSA key model or the digest engine).
package diodon

import (
	"diodon/src/engine"
	"diodon/src/keys"
)

// PublicKey holds the RSA modulus N. It is safe to share freely.
type PublicKey = keys.PublicKey

// PrivateKey holds the factorization (P, Q) of N. It must be held only by
// the privileged party.
type PrivateKey = keys.PrivateKey

// Params configures a Diodon digest (table size M, mixing rounds L,
// squaring depth T, modulus size KBits, output width U).
type Params = keys.Params

// Option configures optional, output-preserving behavior of Privileged and
// NonPrivileged (cancellation, progress reporting).
type Option = engine.Option

// WithContext enables cooperative cancellation between rounds. See
// engine.WithContext for the exact contract.
var WithContext = engine.WithContext

// WithProgress registers a periodic progress callback. See
// engine.WithProgress for the exact contract.
var WithProgress = engine.WithProgress

// Sentinel errors from the specification's error handling design, all
// checkable with errors.Is.
var (
	ErrInvalidParameters              = engine.ErrInvalidParameters
	ErrOutOfMemory                    = engine.ErrOutOfMemory
	ErrArithmeticPreconditionViolated = engine.ErrArithmeticPreconditionViolated
	ErrKeyGenFailed                   = keys.ErrKeyGenFailed
)

// GenerateKeys produces a fresh RSA-style key pair with an N of exactly
// kBits bits.
func GenerateKeys(kBits int) (PrivateKey, PublicKey, error) {
	return keys.GenerateKeys(kBits)
}

// ConservativeParams returns the CPU-heavy profile (M=4000, L=4000, T=2048,
// KBits=2048, U=16).
func ConservativeParams() Params {
	return keys.ConservativeParams()
}

// FastParams returns the memory-heavy profile (M=8000000, L=20000, T=1,
// KBits=1024, U=16).
func FastParams() Params {
	return keys.FastParams()
}

// Privileged computes the Diodon digest of msg using the trapdoor
// factorization held in sk. It is cheap in both time and memory relative to
// NonPrivileged.
func Privileged(msg []byte, sk PrivateKey, params Params, opts ...Option) ([]byte, error) {
	return engine.Privileged(msg, sk, params, opts...)
}

// NonPrivileged computes the same digest as Privileged, without knowledge of
// the factorization: it must materialize the full M-entry squaring table,
// which is the memory-hardness lever the specification is built around.
func NonPrivileged(msg []byte, pk PublicKey, params Params, opts ...Option) ([]byte, error) {
	return engine.NonPrivileged(msg, pk, params, opts...)
}
