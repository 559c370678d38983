// Copyright 2025 StarkHash Project
//
// Package starkhash wraps the StarkNet base-field element type and the
// two cryptographic primitives the contract-hash engine treats as
// external collaborators: a Pedersen hash over the STARK curve and a
// streaming Keccak-256 digest.
package starkhash

import "errors"

// Sentinel errors for field element construction.
var (
	// ErrFieldElementOverflow is returned when a candidate value is not
	// strictly less than the StarkNet field modulus.
	ErrFieldElementOverflow = errors.New("value does not fit in the stark field")

	// ErrInvalidLength is returned when a byte or hex value decodes to
	// more than the 32 bytes a field element can hold.
	ErrInvalidLength = errors.New("value is wider than 32 bytes")

	// ErrEmptyHex is returned by FieldElementFromHex on an empty digit string.
	ErrEmptyHex = errors.New("empty hex digit string")
)
