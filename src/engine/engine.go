// Package engine implements the two Diodon digest paths: Privileged, which
// uses the trapdoor factorization to shortcut the sequential squaring chain
// via Euler's theorem, and NonPrivileged, which must actually materialize
// the memory-hard table. Both share the same phase-L mixing loop and the
// same byte-level state transitions, which is what makes their outputs
// byte-identical for the same (message, parameters, modulus).
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/zeebo/blake3"

	"diodon/src/bigint"
	"diodon/src/crt"
	"diodon/src/keys"
	"diodon/src/obs"
)

// Error kinds from the specification's error handling design. All are
// checkable with errors.Is.
var (
	// ErrInvalidParameters is returned when Params describes a shape the
	// engine cannot start a digest with (M == 0, T == 0, K_bits == 0, or
	// U outside [1, 32]). No table construction is attempted. It is the same
	// sentinel keys.GenerateKeys returns for an invalid key size.
	ErrInvalidParameters = keys.ErrInvalidParameters

	// ErrOutOfMemory is returned when M exceeds what this platform can
	// address as a slice length.
	ErrOutOfMemory = errors.New("diodon: out of memory materializing table")

	// ErrArithmeticPreconditionViolated wraps a CRT precondition failure in
	// the privileged path (p not prime, or gcd(q, p) != 1). It indicates
	// caller error in the supplied key material.
	ErrArithmeticPreconditionViolated = errors.New("diodon: arithmetic precondition violated")
)

// progressStep bounds how often a caller-supplied progress callback fires,
// mirroring cryptotimed's "call progress roughly every million steps"
// SolvePuzzle pattern, scaled down for Diodon's much shorter phase-L loops.
const progressStep = 1 << 10

// ProgressFunc is invoked with the number of units completed (out of total)
// for a named phase ("phaseM" or "phaseL"). It is a pure observability hook:
// its presence or absence never changes the returned digest.
type ProgressFunc func(phase string, done, total uint64)

type options struct {
	ctx      context.Context
	progress ProgressFunc
}

// Option configures optional, output-preserving behavior of Privileged and
// NonPrivileged.
type Option func(*options)

// WithContext enables cooperative cancellation between phase-L rounds (and,
// for NonPrivileged, between phase-M table entries). On cancellation the
// call returns ctx.Err() and no digest; it never returns a partial or
// alternate digest. The specification does not require cancellation
// support; this is the sanctioned opt-in hook it allows implementations to
// expose.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithProgress registers a callback invoked periodically during phase M and
// phase L. NonPrivileged reports both phases; Privileged, which builds no
// table, reports phase L only. It reports only rounds that have already
// completed.
func WithProgress(f ProgressFunc) Option {
	return func(o *options) { o.progress = f }
}

func newOptions(opts []Option) *options {
	o := &options{ctx: context.Background()}
	for _, f := range opts {
		f(o)
	}
	return o
}

func validateParams(p keys.Params) error {
	if p.M == 0 {
		return fmt.Errorf("%w: M must be >= 1", ErrInvalidParameters)
	}
	if p.T == 0 {
		return fmt.Errorf("%w: t must be >= 1", ErrInvalidParameters)
	}
	if p.KBits == 0 {
		return fmt.Errorf("%w: k_bits must be positive", ErrInvalidParameters)
	}
	if p.U == 0 || p.U > 32 {
		return fmt.Errorf("%w: u must be in [1, 32], got %d", ErrInvalidParameters, p.U)
	}
	return nil
}

// NonPrivileged computes the memory-hard Diodon digest of msg under pk and
// params. It materializes the full M-entry squaring table before mixing, so
// its peak memory footprint is O(M * k_bits/8) bytes.
func NonPrivileged(msg []byte, pk keys.PublicKey, params keys.Params, opts ...Option) ([]byte, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	if params.M > uint64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: M=%d exceeds addressable slice length", ErrOutOfMemory, params.M)
	}

	x := bigint.DecodeLE(msg)

	logger := obs.Logger.With().Uint64("m", params.M).Uint64("t", params.T).Logger()
	logger.Debug().Msg("diodon: non-privileged phase M start")

	table := make([]*big.Int, 0, params.M)
	table = append(table, x)
	for i := uint64(1); i < params.M; i++ {
		if err := checkDone(o.ctx); err != nil {
			return nil, err
		}
		table = append(table, bigint.Squaring(table[i-1], params.T, pk.N))
		reportProgress(o.progress, "phaseM", i, params.M-1)
	}
	logger.Debug().Msg("diodon: non-privileged phase M done")

	s := bigint.EncodeBE(table[params.M-1])
	mBig := new(big.Int).SetUint64(params.M)

	for round := uint64(0); round < params.L; round++ {
		if err := checkDone(o.ctx); err != nil {
			return nil, err
		}

		j := tableIndex(s, mBig)
		if j >= params.M {
			return nil, fmt.Errorf("%w: table index %d out of range [0, %d)", ErrInvalidParameters, j, params.M)
		}

		s = append(s, bigint.EncodeBE(table[j])...)
		h := blake3.Sum256(s)
		s = h[:]

		reportProgress(o.progress, "phaseL", round+1, params.L)
	}
	logger.Debug().Msg("diodon: non-privileged phase L done")

	return s[len(s)-int(params.U):], nil
}

// Privileged computes the same digest as NonPrivileged, but using the
// trapdoor factorization (sk.P, sk.Q) to replace the sequential squaring
// chain with a short modular exponentiation per round, accelerated via CRT
// against the two half-size primes rather than the full modulus N.
func Privileged(msg []byte, sk keys.PrivateKey, params keys.Params, opts ...Option) ([]byte, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	x := bigint.DecodeLE(msg)
	phi := sk.Phi()

	logger := obs.Logger.With().Uint64("m", params.M).Uint64("t", params.T).Logger()
	logger.Debug().Msg("diodon: privileged phase M (euler shortcut)")

	mMinus1 := new(big.Int).SetUint64(params.M - 1)
	tBig := new(big.Int).SetUint64(params.T)
	exponent := bigint.ModPow(big.NewInt(2), new(big.Int).Mul(mMinus1, tBig), phi)

	vLast, err := crt.PowMod(x, exponent, sk.P, sk.Q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArithmeticPreconditionViolated, err)
	}
	// V[0] is the decoded message itself, unreduced, exactly as NonPrivileged
	// stores it; CRT would return it reduced mod N.
	if params.M == 1 {
		vLast = x
	}
	s := bigint.EncodeBE(vLast)

	mBig := new(big.Int).SetUint64(params.M)
	two := big.NewInt(2)

	for round := uint64(0); round < params.L; round++ {
		if err := checkDone(o.ctx); err != nil {
			return nil, err
		}

		j := new(big.Int).SetBytes(s)
		j.Mod(j, mBig)

		twoJ := bigint.ModPow(two, j, phi)
		ej := bigint.ModPow(twoJ, tBig, phi)

		vj, err := crt.PowMod(x, ej, sk.P, sk.Q)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArithmeticPreconditionViolated, err)
		}
		if j.Sign() == 0 {
			vj = x
		}

		s = append(s, bigint.EncodeBE(vj)...)
		h := blake3.Sum256(s)
		s = h[:]

		reportProgress(o.progress, "phaseL", round+1, params.L)
	}
	logger.Debug().Msg("diodon: privileged phase L done")

	return s[len(s)-int(params.U):], nil
}

func tableIndex(s []byte, mBig *big.Int) uint64 {
	idx := new(big.Int).SetBytes(s)
	idx.Mod(idx, mBig)
	return idx.Uint64()
}

func checkDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func reportProgress(f ProgressFunc, phase string, done, total uint64) {
	if f == nil {
		return
	}
	if done%progressStep == 0 || done == total {
		f(phase, done, total)
	}
}
