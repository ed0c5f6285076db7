// Package bigint implements the unbounded modular-arithmetic primitives the
// Diodon engine builds on: modular exponentiation, the specialized repeated
// squaring ladder used by phase M, and the big-endian/little-endian codecs
// that make the two digest paths byte-identical.
//
// Only pure, deterministic functions live here so the package stays trivial
// to property-test in isolation from the RSA key model and the engine.
package bigint

import "math/big"

// ModPow returns b^e mod n. b, e must be non-negative and n must be >= 1;
// callers are expected to uphold these preconditions, matching the "reports
// no errors for valid inputs" contract of the underlying primitive.
func ModPow(b, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(b, e, n)
}

// Squaring returns b^(2^t) mod n. For t == 1 it short-circuits to a single
// multiply-then-reduce, which is the hot path the fast profile depends on
// (8,000,000 invocations with t == 1): going through a general exponentiation
// ladder for a one-bit exponent is orders of magnitude slower than a single
// mulmod. For t > 1 it iterates t modular squarings rather than ever
// constructing 2^t explicitly, which would be an astronomically large
// exponent for the conservative profile's t = 2048.
func Squaring(b *big.Int, t uint64, n *big.Int) *big.Int {
	if t == 1 {
		return new(big.Int).Mod(new(big.Int).Mul(b, b), n)
	}

	result := new(big.Int).Mod(b, n)
	for i := uint64(0); i < t; i++ {
		result.Mul(result, result)
		result.Mod(result, n)
	}
	return result
}

// EncodeBE returns the minimal-length big-endian encoding of x, with the
// single exception that zero encodes to one zero byte rather than the empty
// slice math/big.Int.Bytes returns. Both digest paths depend on this exact
// normalization to stay byte-identical: without it, a table entry of value
// zero would contribute a different number of bytes to the phase-L hash
// input depending on which path produced it.
func EncodeBE(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	return b
}

// DecodeLE interprets msg as the little-endian encoding of a non-negative
// integer. An empty message decodes to zero. There is no length field and no
// padding; the whole message is consumed in one shot.
func DecodeLE(msg []byte) *big.Int {
	be := make([]byte, len(msg))
	for i, b := range msg {
		be[len(msg)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}
