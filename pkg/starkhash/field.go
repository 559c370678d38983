// Copyright 2025 StarkHash Project
//
// StarkNet base field element, wrapping gnark-crypto's fp.Element.

package starkhash

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// FieldElement is an integer in [0, p) for the StarkNet base field
// p = 2^251 + 17*2^192 + 1. It is the unit of value the hash chains
// accumulate and the truncated Keccak digest produces.
type FieldElement struct {
	inner fp.Element
}

// Zero is the additive identity; it is also the seed value of an empty
// HashChain.
var Zero = FieldElement{}

// FieldElementFromBigEndian builds a FieldElement from exactly 32
// big-endian bytes. It fails if the value is not strictly less than the
// field modulus.
func FieldElementFromBigEndian(b []byte) (FieldElement, error) {
	if len(b) != 32 {
		return FieldElement{}, fmt.Errorf("%w: got %d bytes, want 32", ErrInvalidLength, len(b))
	}

	var v big.Int
	v.SetBytes(b)
	if v.Cmp(fp.Modulus()) >= 0 {
		return FieldElement{}, ErrFieldElementOverflow
	}

	var e fp.Element
	e.SetBigInt(&v)
	return FieldElement{inner: e}, nil
}

// FieldElementFromBEBytes interprets an arbitrary (≤32 byte) slice as a
// big-endian integer and embeds it in the field. This is how builtin
// identifiers (raw ASCII bytes, ≤31 bytes by convention) and hash-chain
// counts are turned into field elements.
func FieldElementFromBEBytes(b []byte) (FieldElement, error) {
	if len(b) > 32 {
		return FieldElement{}, fmt.Errorf("%w: got %d bytes", ErrInvalidLength, len(b))
	}
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return FieldElementFromBigEndian(padded)
}

// FieldElementFromUint64 embeds a machine integer directly; used for the
// HashChain element count on finalize.
func FieldElementFromUint64(n uint64) FieldElement {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
	fe, _ := FieldElementFromBEBytes(buf[:])
	return fe
}

// FieldElementFromHexDigits parses a hex digit string into a
// FieldElement. A "0x" prefix is tolerated but not required.
func FieldElementFromHexDigits(digits string) (FieldElement, error) {
	digits = strings.TrimPrefix(digits, "0x")
	digits = strings.TrimPrefix(digits, "0X")
	if digits == "" {
		return FieldElement{}, ErrEmptyHex
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return FieldElement{}, fmt.Errorf("invalid hex digits: %w", err)
	}
	if len(raw) > 32 {
		return FieldElement{}, fmt.Errorf("%w: got %d bytes", ErrInvalidLength, len(raw))
	}

	padded := make([]byte, 32)
	copy(padded[32-len(raw):], raw)
	return FieldElementFromBigEndian(padded)
}

// FieldElementFromHex is a convenience wrapper requiring the customary
// "0x" prefix to already be present; it checks for it and delegates to
// FieldElementFromHexDigits, which strips it. Callers needing to distinguish a missing
// prefix from a malformed digit string should check the prefix
// themselves and call FieldElementFromHexDigits instead.
func FieldElementFromHex(s string) (FieldElement, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return FieldElement{}, fmt.Errorf("missing required 0x prefix")
	}
	return FieldElementFromHexDigits(s)
}

// BigInt returns the element's canonical representative as a big.Int.
func (f FieldElement) BigInt() *big.Int {
	var v big.Int
	f.inner.BigInt(&v)
	return &v
}

// Bytes returns the element's big-endian, zero-padded 32-byte form.
func (f FieldElement) Bytes() [32]byte {
	return f.inner.Bytes()
}

// Hex renders the element as a "0x"-prefixed hex string with no leading
// zero padding beyond a single digit.
func (f FieldElement) Hex() string {
	return "0x" + f.BigInt().Text(16)
}

// Equal reports whether two field elements represent the same value.
func (f FieldElement) Equal(other FieldElement) bool {
	return f.inner.Equal(&other.inner)
}
