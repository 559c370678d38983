// Copyright 2025 StarkHash Project
//
// Canonical serialization of a contract definition.

package contracthash

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/starkhash-io/contracthash/pkg/canonjson"
	"github.com/starkhash-io/contracthash/pkg/contractdef"
)

// canonicalize streams cd's canonical serialization to w: the bytes this
// produces are exactly what gets Keccak-hashed, and exactly what
// ExtractABICodeHash returns for the ABI/bytecode halves.
//
// entry_points_by_type is never emitted; it has no place in the hashed
// form.
func canonicalize(w io.Writer, cd *contractdef.ContractDefinition) error {
	enc := canonjson.NewEncoder(w)
	encodeContractDefinition(enc, cd)
	return enc.Err()
}

func encodeContractDefinition(enc *canonjson.Encoder, cd *contractdef.ContractDefinition) {
	enc.BeginObject()

	enc.Comma(true)
	enc.EncodeKey("abi")
	enc.Colon()
	enc.EncodeRaw(cd.ABI)

	enc.Comma(false)
	enc.EncodeKey("program")
	enc.Colon()
	encodeProgram(enc, &cd.Program)

	enc.EndObject()
}

// encodeProgram emits Program's fields in alphabetical order, matching
// what Python's sort_keys=True formatter would produce for the same
// field set. attributes is skipped entirely when empty, never emitted as
// []. debug_info is always emitted as the literal null regardless of
// what was parsed, so this function stays correct even if a caller
// forgets to clear it first.
func encodeProgram(enc *canonjson.Encoder, p *contractdef.Program) {
	enc.BeginObject()
	first := true

	if len(p.Attributes) > 0 {
		enc.Comma(first)
		first = false
		enc.EncodeKey("attributes")
		enc.Colon()
		enc.BeginArray()
		for i, a := range p.Attributes {
			enc.Comma(i == 0)
			enc.EncodeRaw(a)
		}
		enc.EndArray()
	}

	enc.Comma(first)
	first = false
	enc.EncodeKey("builtins")
	enc.Colon()
	enc.BeginArray()
	for i, b := range p.Builtins {
		enc.Comma(i == 0)
		enc.EncodeValue(b)
	}
	enc.EndArray()

	enc.Comma(first)
	first = false
	enc.EncodeKey("data")
	enc.Colon()
	enc.BeginArray()
	for i, d := range p.Data {
		enc.Comma(i == 0)
		enc.EncodeValue(d)
	}
	enc.EndArray()

	enc.Comma(first)
	first = false
	enc.EncodeKey("debug_info")
	enc.Colon()
	enc.Null()

	enc.Comma(first)
	first = false
	enc.EncodeKey("hints")
	enc.Colon()
	encodeHints(enc, p.Hints)

	enc.Comma(first)
	first = false
	enc.EncodeKey("identifiers")
	enc.Colon()
	enc.EncodeRaw(p.Identifiers)

	enc.Comma(first)
	first = false
	enc.EncodeKey("main_scope")
	enc.Colon()
	enc.EncodeValue(p.MainScope)

	enc.Comma(first)
	first = false
	enc.EncodeKey("prime")
	enc.Colon()
	enc.EncodeValue(p.Prime)

	enc.Comma(first)
	enc.EncodeKey("reference_manager")
	enc.Colon()
	enc.EncodeRaw(p.ReferenceManager)

	enc.EndObject()
}

// encodeHints emits hint keys in ascending numeric order, the one map in
// the whole document whose keys are NOT sorted lexicographically as
// strings. A lexicographic sort would silently put "10" before "2" and
// shift every downstream hash.
func encodeHints(enc *canonjson.Encoder, hints map[uint64][]json.RawMessage) {
	keys := make([]uint64, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	enc.BeginObject()
	for i, k := range keys {
		enc.Comma(i == 0)
		enc.EncodeKey(strconv.FormatUint(k, 10))
		enc.Colon()
		enc.BeginArray()
		for j, v := range hints[k] {
			enc.Comma(j == 0)
			enc.EncodeRaw(v)
		}
		enc.EndArray()
	}
	enc.EndObject()
}
