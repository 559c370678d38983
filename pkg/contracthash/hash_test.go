// Copyright 2025 StarkHash Project

package contracthash

import (
	"bytes"
	"errors"
	"testing"

	"github.com/starkhash-io/contracthash/pkg/contractdef"
)

func contractJSON(program string) []byte {
	return []byte(`{"abi": [{"name": "foo"}], "program": ` + program + `, "entry_points_by_type": {}}`)
}

const baseProgram = `{
	"builtins": ["pedersen", "range_check"],
	"data": ["0x1", "0x2", "0x3"],
	"debug_info": null,
	"hints": {"1": [1], "10": [2], "2": [3]},
	"identifiers": {"x": 1},
	"main_scope": "__main__",
	"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
	"reference_manager": {"y": 2}
}`

func TestComputeContractHashDeterministic(t *testing.T) {
	raw := contractJSON(baseProgram)
	h1, err := ComputeContractHash(raw)
	if err != nil {
		t.Fatalf("ComputeContractHash: %v", err)
	}
	h2, err := ComputeContractHash(raw)
	if err != nil {
		t.Fatalf("ComputeContractHash (2nd call): %v", err)
	}
	if !h1.Equal(h2) {
		t.Errorf("same input produced different hashes: %s vs %s", h1.Hex(), h2.Hex())
	}
}

// Replacing debug_info with an arbitrary subtree must not change the
// hash; its content is discarded before serialization.
func TestDebugInfoIgnored(t *testing.T) {
	withNull := contractJSON(baseProgram)

	withSubtree := []byte(`{"abi": [{"name": "foo"}], "program": {
		"builtins": ["pedersen", "range_check"],
		"data": ["0x1", "0x2", "0x3"],
		"debug_info": {"file_contents": {"a.cairo": "whatever"}, "instruction_locations": {}},
		"hints": {"1": [1], "10": [2], "2": [3]},
		"identifiers": {"x": 1},
		"main_scope": "__main__",
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"reference_manager": {"y": 2}
	}, "entry_points_by_type": {}}`)

	h1, err := ComputeContractHash(withNull)
	if err != nil {
		t.Fatalf("ComputeContractHash(null debug_info): %v", err)
	}
	h2, err := ComputeContractHash(withSubtree)
	if err != nil {
		t.Fatalf("ComputeContractHash(subtree debug_info): %v", err)
	}
	if !h1.Equal(h2) {
		t.Errorf("debug_info content changed the hash: %s vs %s", h1.Hex(), h2.Hex())
	}
}

// An absent attributes key and an explicit empty list serialize
// identically (the key is omitted), so the hashes agree.
func TestAttributesAbsentVsEmpty(t *testing.T) {
	absent := contractJSON(baseProgram)

	withEmpty := []byte(`{"abi": [{"name": "foo"}], "program": {
		"attributes": [],
		"builtins": ["pedersen", "range_check"],
		"data": ["0x1", "0x2", "0x3"],
		"debug_info": null,
		"hints": {"1": [1], "10": [2], "2": [3]},
		"identifiers": {"x": 1},
		"main_scope": "__main__",
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"reference_manager": {"y": 2}
	}, "entry_points_by_type": {}}`)

	h1, err := ComputeContractHash(absent)
	if err != nil {
		t.Fatalf("ComputeContractHash(absent attributes): %v", err)
	}
	h2, err := ComputeContractHash(withEmpty)
	if err != nil {
		t.Fatalf("ComputeContractHash(empty attributes): %v", err)
	}
	if !h1.Equal(h2) {
		t.Errorf("empty vs absent attributes changed the hash: %s vs %s", h1.Hex(), h2.Hex())
	}
}

// The hash is derived from re-canonicalized bytes, so any object's
// member order in the source JSON is immaterial.
func TestReorderingObjectKeysIsInvariant(t *testing.T) {
	original := contractJSON(baseProgram)

	reordered := []byte(`{"entry_points_by_type": {}, "program": {
		"reference_manager": {"y": 2},
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"main_scope": "__main__",
		"identifiers": {"x": 1},
		"hints": {"2": [3], "1": [1], "10": [2]},
		"debug_info": null,
		"data": ["0x1", "0x2", "0x3"],
		"builtins": ["pedersen", "range_check"]
	}, "abi": [{"name": "foo"}]}`)

	h1, err := ComputeContractHash(original)
	if err != nil {
		t.Fatalf("ComputeContractHash(original): %v", err)
	}
	h2, err := ComputeContractHash(reordered)
	if err != nil {
		t.Fatalf("ComputeContractHash(reordered): %v", err)
	}
	if !h1.Equal(h2) {
		t.Errorf("reordering top-level/program keys changed the hash: %s vs %s", h1.Hex(), h2.Hex())
	}
}

// Hint keys are sorted before serialization, so their source order is
// immaterial; program.data is an ordered list, so reordering it changes
// the hash.
func TestHintsOrderIsInvariantButDataOrderIsNot(t *testing.T) {
	hintsReordered := []byte(`{"abi": [{"name": "foo"}], "program": {
		"builtins": ["pedersen", "range_check"],
		"data": ["0x1", "0x2", "0x3"],
		"debug_info": null,
		"hints": {"10": [2], "2": [3], "1": [1]},
		"identifiers": {"x": 1},
		"main_scope": "__main__",
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"reference_manager": {"y": 2}
	}, "entry_points_by_type": {}}`)

	base, err := ComputeContractHash(contractJSON(`{
		"builtins": ["pedersen", "range_check"],
		"data": ["0x1", "0x2", "0x3"],
		"debug_info": null,
		"hints": {"1": [1], "2": [3], "10": [2]},
		"identifiers": {"x": 1},
		"main_scope": "__main__",
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"reference_manager": {"y": 2}
	}`))
	if err != nil {
		t.Fatalf("ComputeContractHash(base): %v", err)
	}
	h2, err := ComputeContractHash(hintsReordered)
	if err != nil {
		t.Fatalf("ComputeContractHash(hints reordered): %v", err)
	}
	if !base.Equal(h2) {
		t.Errorf("hint key ordering in source JSON should not affect the hash: %s vs %s", base.Hex(), h2.Hex())
	}

	dataReordered := []byte(`{"abi": [{"name": "foo"}], "program": {
		"builtins": ["pedersen", "range_check"],
		"data": ["0x2", "0x1", "0x3"],
		"debug_info": null,
		"hints": {"1": [1], "2": [3], "10": [2]},
		"identifiers": {"x": 1},
		"main_scope": "__main__",
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"reference_manager": {"y": 2}
	}, "entry_points_by_type": {}}`)
	h3, err := ComputeContractHash(dataReordered)
	if err != nil {
		t.Fatalf("ComputeContractHash(data reordered): %v", err)
	}
	if base.Equal(h3) {
		t.Errorf("swapping program.data element order should change the hash, but it didn't")
	}
}

func TestMissingAndEmptyEntryPointKindsHashEqual(t *testing.T) {
	// A contract with an empty entry_points_by_type map still folds one
	// inner chain per kind, not zero chains; a missing kind and an
	// explicitly empty kind must therefore hash identically.
	emptyMap := contractJSON(baseProgram)
	emptyKinds := []byte(`{"abi": [{"name": "foo"}], "program": ` + baseProgram + `, "entry_points_by_type": {
		"EXTERNAL": [], "L1_HANDLER": [], "CONSTRUCTOR": []
	}}`)

	h1, err := ComputeContractHash(emptyMap)
	if err != nil {
		t.Fatalf("ComputeContractHash(empty map): %v", err)
	}
	h2, err := ComputeContractHash(emptyKinds)
	if err != nil {
		t.Fatalf("ComputeContractHash(explicitly empty kinds): %v", err)
	}
	if !h1.Equal(h2) {
		t.Errorf("empty map vs explicitly-empty kinds should hash the same: %s vs %s", h1.Hex(), h2.Hex())
	}
}

func TestEntryPointSelectorMissingPrefixErrors(t *testing.T) {
	raw := []byte(`{"abi": [], "program": ` + baseProgram + `, "entry_points_by_type": {
		"EXTERNAL": [{"selector": "deadbeef", "offset": "0x0"}]
	}}`)

	_, err := ComputeContractHash(raw)
	var epErr *EntryPointError
	if !errors.As(err, &epErr) {
		t.Fatalf("expected *EntryPointError, got %v", err)
	}
	if epErr.Kind != contractdef.External || epErr.Field != "selector" {
		t.Errorf("unexpected EntryPointError: %+v", epErr)
	}
}

func TestBuiltinTooLongErrors(t *testing.T) {
	raw := []byte(`{"abi": [], "program": {
		"builtins": ["this_builtin_identifier_is_way_too_long_to_fit_in_one_field_element"],
		"data": [],
		"debug_info": null,
		"hints": {},
		"identifiers": {},
		"main_scope": "x",
		"prime": "0x1",
		"reference_manager": {}
	}, "entry_points_by_type": {}}`)

	_, err := ComputeContractHash(raw)
	var bErr *BuiltinError
	if !errors.As(err, &bErr) {
		t.Fatalf("expected *BuiltinError, got %v", err)
	}
	if bErr.Index != 0 {
		t.Errorf("Index = %d, want 0", bErr.Index)
	}
}

func TestBytecodeMalformedHexErrors(t *testing.T) {
	raw := []byte(`{"abi": [], "program": {
		"builtins": [],
		"data": ["not-hex"],
		"debug_info": null,
		"hints": {},
		"identifiers": {},
		"main_scope": "x",
		"prime": "0x1",
		"reference_manager": {}
	}, "entry_points_by_type": {}}`)

	_, err := ComputeContractHash(raw)
	var bcErr *BytecodeError
	if !errors.As(err, &bcErr) {
		t.Fatalf("expected *BytecodeError, got %v", err)
	}
}

func TestSelectorZeroHexParsesToFieldZero(t *testing.T) {
	raw := []byte(`{"abi": [], "program": ` + baseProgram + `, "entry_points_by_type": {
		"EXTERNAL": [{"selector": "0x0", "offset": "0x0"}]
	}}`)
	if _, err := ComputeContractHash(raw); err != nil {
		t.Fatalf("selector 0x0 should parse cleanly: %v", err)
	}
}

func TestExtractABICodeHashMatchesComputeContractHash(t *testing.T) {
	raw := contractJSON(baseProgram)

	want, err := ComputeContractHash(raw)
	if err != nil {
		t.Fatalf("ComputeContractHash: %v", err)
	}

	abi, code, got, err := ExtractABICodeHash(raw)
	if err != nil {
		t.Fatalf("ExtractABICodeHash: %v", err)
	}
	if !want.Equal(got) {
		t.Errorf("ExtractABICodeHash hash %s != ComputeContractHash hash %s", got.Hex(), want.Hex())
	}
	if len(abi) == 0 {
		t.Error("expected non-empty reserialized abi bytes")
	}
	wantCode := `["0x1", "0x2", "0x3"]`
	if string(code) != wantCode {
		t.Errorf("reserialized code = %q, want %q", code, wantCode)
	}
}

// TestCanonicalSerializationMatchesPython pins the exact byte stream the
// Keccak digest is taken over: it must equal Python's
// json.dumps(doc, sort_keys=True, ensure_ascii=False) on the same
// logical document, with debug_info nulled and entry points dropped.
func TestCanonicalSerializationMatchesPython(t *testing.T) {
	cd, err := contractdef.Parse(contractJSON(baseProgram))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := canonicalize(&buf, cd); err != nil {
		t.Fatalf("canonicalize: %v", err)
	}

	want := `{"abi": [{"name": "foo"}], "program": {"builtins": ["pedersen", "range_check"], ` +
		`"data": ["0x1", "0x2", "0x3"], "debug_info": null, "hints": {"1": [1], "2": [3], "10": [2]}, ` +
		`"identifiers": {"x": 1}, "main_scope": "__main__", ` +
		`"prime": "0x800000000000011000000000000000000000000000000000000000000000001", ` +
		`"reference_manager": {"y": 2}}}`
	if buf.String() != want {
		t.Errorf("canonical serialization mismatch:\n got %s\nwant %s", buf.String(), want)
	}
}

// End-to-end vectors computed with an independent reference
// implementation of the same construction (Python json.dumps plus the
// published StarkWare Pedersen parameters and Keccak-256).
func TestComputeContractHashKnownVectors(t *testing.T) {
	noEntryPoints := contractJSON(baseProgram)

	h, err := ComputeContractHash(noEntryPoints)
	if err != nil {
		t.Fatalf("ComputeContractHash: %v", err)
	}
	want := "0x78a30d13879d241e5b5f259fc203200ee1ac87559b828be170c5f8a27dd15de"
	if h.Hex() != want {
		t.Errorf("hash(no entry points) = %s, want %s", h.Hex(), want)
	}

	oneExternal := []byte(`{"abi": [{"name": "foo"}], "program": ` + baseProgram + `, "entry_points_by_type": {
		"EXTERNAL": [{"selector": "0x362398bec32bc0ebb411203221a35a0301193a96f317ebe5e40be9f60d15320", "offset": "0x3a"}]
	}}`)
	h2, err := ComputeContractHash(oneExternal)
	if err != nil {
		t.Fatalf("ComputeContractHash: %v", err)
	}
	want2 := "0x5983a1a018d4ce4f967124257c4ba9dedb1e40002837425e9054a04ae77f46a"
	if h2.Hex() != want2 {
		t.Errorf("hash(one external entry point) = %s, want %s", h2.Hex(), want2)
	}
}
