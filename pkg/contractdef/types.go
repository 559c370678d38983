// Copyright 2025 StarkHash Project
//
// Package contractdef parses a Cairo contract-definition document into a
// structured tree that preserves the raw ordering and textual forms the
// canonical serializer depends on.
package contractdef

import "encoding/json"

// EntryPointKind identifies one of the three entry point lists a contract
// can declare.
type EntryPointKind string

// The three entry point kinds, named exactly as they appear on the wire.
const (
	External    EntryPointKind = "EXTERNAL"
	L1Handler   EntryPointKind = "L1_HANDLER"
	Constructor EntryPointKind = "CONSTRUCTOR"
)

// EntryPointKinds is the fixed traversal order the hash-chain engine
// folds entry point lists in. It is a protocol constant, not derived from
// the input document.
var EntryPointKinds = []EntryPointKind{External, L1Handler, Constructor}

// SelectorAndOffset is a single entry point's selector/offset pair, both
// "0x"-prefixed hex strings. The prefix and hex digits are not validated
// here; that is a hashing-time concern, since a structurally valid
// contract definition can still carry a malformed selector.
type SelectorAndOffset struct {
	Selector string
	Offset   string
}

// Program is the `program` field of a contract definition. Its fields are
// listed here in alphabetical order, the same order the serializer emits
// them in, since Python's sort_keys=True formatter would produce that
// order for any object whose keys are exactly these.
type Program struct {
	// Attributes defaults to empty and is omitted entirely when empty;
	// see contracthash's encodeProgram.
	Attributes []json.RawMessage
	Builtins   []string
	Data       []string
	// DebugInfo is accepted during parsing then always forced to nil
	// before serialization; see contracthash.computeContractHash0.
	DebugInfo        json.RawMessage
	Hints            map[uint64][]json.RawMessage
	Identifiers      json.RawMessage
	MainScope        string
	Prime            string
	ReferenceManager json.RawMessage
}

// ContractDefinition is the deserialized contract-definition document.
type ContractDefinition struct {
	// ABI is opaque and preserved verbatim except for re-canonicalization
	// under the canonical serializer.
	ABI     json.RawMessage
	Program Program
	// EntryPointsByType is never re-serialized into the keccak'd form; a
	// missing kind is treated as an empty list.
	EntryPointsByType map[EntryPointKind][]SelectorAndOffset
}
