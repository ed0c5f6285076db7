// Package seal is a library-level convenience layer answering the obvious
// next question after solving a Diodon puzzle: "now that I have the digest,
// what do I do with it?" It treats a solved digest as key material for
// sealing an arbitrary payload with ChaCha20-Poly1305, and can optionally
// strengthen a human-chosen passphrase with Argon2id before it is fed into
// the digest engine as the message.
//
// This is adapted from cryptotimed's file-locking workflow
// (EncryptData/DecryptData and password-derived puzzle bases), with the file
// format and CLI stripped out: everything here is a pure function over
// in-memory byte slices, matching the specification's Non-goal that rules
// out a CLI or on-disk key format for the Diodon core itself. Sealing a
// payload behind a digest is not key serialization and is not a CLI, so it
// is fair game.
package seal

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCiphertextTooShort is returned by Open when the capsule does not even
// contain a full nonce.
var ErrCiphertextTooShort = errors.New("seal: ciphertext too short")

// argon2idTime and argon2idMemoryKiB mirror cryptotimed's DefaultArgon2idParams
// (3 iterations, 64 MiB), a conservative non-interactive profile.
const (
	argon2idTime       = 3
	argon2idMemoryKiB  = 64 * 1024
	argon2idThreads    = 1
	argon2idOutputSize = 32
)

// deriveSealKey expands a Diodon digest (which may be as short as one byte,
// per the specification's u in [1, 32]) into a full 256-bit ChaCha20-Poly1305
// key via blake3, reusing the same hash collaborator the digest engine's
// phase L already depends on rather than introducing a second KDF for a
// case math/big-shaped key stretching would otherwise need.
func deriveSealKey(digest []byte) [32]byte {
	return blake3.Sum256(digest)
}

// Seal encrypts plaintext with ChaCha20-Poly1305 under a key derived from
// digest (the output of engine.Privileged or engine.NonPrivileged). The
// returned ciphertext has the random nonce prepended, matching cryptotimed's
// EncryptData convention.
func Seal(plaintext, digest []byte) ([]byte, error) {
	key := deriveSealKey(digest)

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a capsule produced by Seal under a key derived from digest.
// Any mismatch between digest and the one used to Seal (wrong puzzle
// solution, wrong key) surfaces as an authentication failure.
func Open(capsule, digest []byte) ([]byte, error) {
	key := deriveSealKey(digest)

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	if len(capsule) < aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := capsule[:aead.NonceSize()], capsule[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	return plaintext, nil
}

// StrengthenPassphrase derives Diodon message bytes from a human passphrase
// and a random salt using Argon2id, adapted from cryptotimed's
// deriveBaseFromPassword (there applied to the puzzle base G; here applied
// to the Diodon message itself, upstream of DecodeLE). Each wrong passphrase
// guess produces unrelated message bytes, so an attacker gains nothing by
// precomputing a Diodon table for one guess and reusing it against another.
func StrengthenPassphrase(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argon2idTime, argon2idMemoryKiB, argon2idThreads, argon2idOutputSize)
}
