// Copyright 2025 StarkHash Project
//
// Package contracthash computes StarkNet contract-definition hashes. It
// ties the document model (contractdef), the Python-compatible formatter
// (canonjson), and the cryptographic primitives (starkhash) together
// into the two entry points a caller actually needs.
package contracthash

import (
	"bytes"
	"encoding/json"

	"github.com/starkhash-io/contracthash/pkg/canonjson"
	"github.com/starkhash-io/contracthash/pkg/contractdef"
	"github.com/starkhash-io/contracthash/pkg/starkhash"
)

// apiVersion is the fixed constant folded into the outer chain first,
// ahead of anything derived from the contract itself.
const apiVersion = 0

// ComputeContractHash parses raw as a contract-definition document and
// returns its contract hash. It is the library's primary entry point.
func ComputeContractHash(raw []byte) (starkhash.FieldElement, error) {
	cd, err := contractdef.Parse(raw)
	if err != nil {
		return starkhash.FieldElement{}, err
	}
	return computeContractHash0(cd)
}

// ExtractABICodeHash parses raw and returns the reserialized (canonical)
// ABI bytes and program.data bytes alongside the contract hash, for
// callers that need to persist the ABI and bytecode separately from the
// hash computation itself.
func ExtractABICodeHash(raw []byte) (abi, code []byte, hash starkhash.FieldElement, err error) {
	cd, err := contractdef.Parse(raw)
	if err != nil {
		return nil, nil, starkhash.FieldElement{}, err
	}

	hash, err = computeContractHash0(cd)
	if err != nil {
		return nil, nil, starkhash.FieldElement{}, err
	}

	var abiBuf bytes.Buffer
	enc := canonjson.NewEncoder(&abiBuf)
	enc.EncodeRaw(cd.ABI)
	if err := enc.Err(); err != nil {
		return nil, nil, starkhash.FieldElement{}, err
	}

	codeBuf, err := encodeDataArray(cd.Program.Data)
	if err != nil {
		return nil, nil, starkhash.FieldElement{}, err
	}

	return abiBuf.Bytes(), codeBuf, hash, nil
}

// computeContractHash0 is the shared core behind both entry points: it
// forces debug_info to nil, serializes the contract definition
// canonically straight into a Keccak accumulator, then folds the fixed
// traversal (API version, the three entry-point kinds, builtins, the
// truncated keccak, bytecode) into the outer hash chain.
func computeContractHash0(cd *contractdef.ContractDefinition) (starkhash.FieldElement, error) {
	forced := *cd
	forced.Program.DebugInfo = nil

	kw := starkhash.NewKeccakWriter()
	if err := canonicalize(kw, &forced); err != nil {
		return starkhash.FieldElement{}, err
	}
	digest := kw.Finalize()

	outer := starkhash.NewHashChain()
	outer.Update(starkhash.FieldElementFromUint64(apiVersion))

	for _, kind := range contractdef.EntryPointKinds {
		chain := starkhash.NewHashChain()
		for i, ep := range forced.EntryPointsByType[kind] {
			sel, err := starkhash.FieldElementFromHex(ep.Selector)
			if err != nil {
				return starkhash.FieldElement{}, &EntryPointError{Kind: kind, Index: i, Field: "selector", Err: err}
			}
			chain.Update(sel)

			off, err := starkhash.FieldElementFromHex(ep.Offset)
			if err != nil {
				return starkhash.FieldElement{}, &EntryPointError{Kind: kind, Index: i, Field: "offset", Err: err}
			}
			chain.Update(off)
		}
		outer.Update(chain.Finalize())
	}

	builtins := starkhash.NewHashChain()
	for i, b := range forced.Program.Builtins {
		fe, err := starkhash.FieldElementFromBEBytes([]byte(b))
		if err != nil {
			return starkhash.FieldElement{}, &BuiltinError{Index: i, Err: err}
		}
		builtins.Update(fe)
	}
	outer.Update(builtins.Finalize())

	outer.Update(digest)

	bytecode := starkhash.NewHashChain()
	for i, d := range forced.Program.Data {
		fe, err := starkhash.FieldElementFromHex(d)
		if err != nil {
			return starkhash.FieldElement{}, &BytecodeError{Index: i, Err: err}
		}
		bytecode.Update(fe)
	}
	outer.Update(bytecode.Finalize())

	return outer.Finalize(), nil
}

// encodeDataArray reserializes program.data as a canonical JSON array of
// its original hex strings, for ExtractABICodeHash's code return.
func encodeDataArray(data []string) ([]byte, error) {
	raw := make([]json.RawMessage, len(data))
	for i, d := range data {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}

	var buf bytes.Buffer
	enc := canonjson.NewEncoder(&buf)
	enc.BeginArray()
	for i, r := range raw {
		enc.Comma(i == 0)
		enc.EncodeRaw(r)
	}
	enc.EndArray()
	if err := enc.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
