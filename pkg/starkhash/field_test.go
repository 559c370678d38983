// Copyright 2025 StarkHash Project

package starkhash

import (
	"errors"
	"testing"
)

func TestFieldElementFromHexRoundTrip(t *testing.T) {
	cases := []string{"0x0", "0x1", "0xabc123", "0x0000000000000000000000000000000000000000000000000000000000000f"}
	for _, c := range cases {
		fe, err := FieldElementFromHex(c)
		if err != nil {
			t.Fatalf("FieldElementFromHex(%s): %v", c, err)
		}
		back, err := FieldElementFromHex(fe.Hex())
		if err != nil || !back.Equal(fe) {
			t.Errorf("Hex() for %s = %q does not parse back to the same element (err %v)", c, fe.Hex(), err)
		}
	}
}

func TestFieldElementFromHexRejectsMissingPrefix(t *testing.T) {
	_, err := FieldElementFromHex("abc123")
	if err == nil {
		t.Fatal("expected error for missing 0x prefix, got nil")
	}
}

func TestFieldElementFromHexZero(t *testing.T) {
	fe, err := FieldElementFromHex("0x0")
	if err != nil {
		t.Fatalf("FieldElementFromHex(0x0): %v", err)
	}
	if !fe.Equal(Zero) {
		t.Errorf("0x0 did not parse to Zero")
	}
}

func TestFieldElementFromBigEndianRejectsOverflow(t *testing.T) {
	allFF := make([]byte, 32)
	for i := range allFF {
		allFF[i] = 0xff
	}
	_, err := FieldElementFromBigEndian(allFF)
	if !errors.Is(err, ErrFieldElementOverflow) {
		t.Errorf("expected ErrFieldElementOverflow, got %v", err)
	}
}

func TestFieldElementFromBigEndianRejectsWrongLength(t *testing.T) {
	_, err := FieldElementFromBigEndian(make([]byte, 31))
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for 31-byte input, got %v", err)
	}
}

func TestFieldElementFromBEBytesAcceptsShortInput(t *testing.T) {
	fe, err := FieldElementFromBEBytes([]byte("a-31-byte-builtin-identifier!!!"))
	if err != nil {
		t.Fatalf("31-byte builtin should embed: %v", err)
	}
	if fe.Equal(Zero) {
		t.Errorf("non-empty input should not embed to zero")
	}
}

func TestFieldElementFromBEBytesRejectsOversizedInput(t *testing.T) {
	_, err := FieldElementFromBEBytes(make([]byte, 33))
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for 33-byte input, got %v", err)
	}
}

func TestFieldElementFromHexDigitsRejectsEmpty(t *testing.T) {
	_, err := FieldElementFromHexDigits("0x")
	if !errors.Is(err, ErrEmptyHex) {
		t.Errorf("expected ErrEmptyHex, got %v", err)
	}
}

func TestFieldElementFromUint64(t *testing.T) {
	fe := FieldElementFromUint64(0)
	if !fe.Equal(Zero) {
		t.Errorf("FieldElementFromUint64(0) should equal Zero")
	}
	fe = FieldElementFromUint64(1)
	if fe.Equal(Zero) {
		t.Errorf("FieldElementFromUint64(1) should not equal Zero")
	}
}
