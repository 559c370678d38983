// Copyright 2025 StarkHash Project
//
// Streaming truncated Keccak-256 digest over the StarkNet base field.

package starkhash

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// KeccakWriter streams bytes into a Keccak-256 accumulator and implements
// io.Writer so the canonical JSON formatter can push its output directly,
// without buffering the serialized document (typically ~500 KB).
type KeccakWriter struct {
	h hash.Hash
}

// NewKeccakWriter returns a fresh Keccak-256 writer. Note this is the
// original Keccak padding (NewLegacyKeccak256), not NIST SHA3-256; the
// two differ and StarkNet's truncated keccak depends on the former.
func NewKeccakWriter() *KeccakWriter {
	return &KeccakWriter{h: sha3.NewLegacyKeccak256()}
}

// Write feeds bytes into the digest. It never fails.
func (k *KeccakWriter) Write(p []byte) (int, error) {
	return k.h.Write(p)
}

// Finalize masks the top six bits of the 32-byte Keccak-256 digest (ANDs
// the most significant byte with 0x03) and embeds the result as a
// FieldElement. Masking guarantees the value is strictly less than 2^250,
// so it is always smaller than the field modulus and embedding cannot fail.
func (k *KeccakWriter) Finalize() FieldElement {
	digest := k.h.Sum(nil)
	digest[0] &= 0x03
	fe, err := FieldElementFromBigEndian(digest)
	if err != nil {
		// Unreachable: masking to 250 bits always fits the ~251-bit field.
		panic("starkhash: masked keccak digest overflowed the field: " + err.Error())
	}
	return fe
}

// TruncatedKeccak is a convenience one-shot form of KeccakWriter for
// callers that already have the full byte slice in hand.
func TruncatedKeccak(data []byte) FieldElement {
	w := NewKeccakWriter()
	_, _ = w.Write(data)
	return w.Finalize()
}
