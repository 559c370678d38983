// Copyright 2025 StarkHash Project
//
// Fail-closed parsing of contract-definition documents.

package contractdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

var allowedContractFields = map[string]bool{
	"abi":                  true,
	"program":              true,
	"entry_points_by_type": true,
}

var allowedProgramFields = map[string]bool{
	"attributes":        true,
	"builtins":          true,
	"data":              true,
	"debug_info":        true,
	"hints":             true,
	"identifiers":       true,
	"main_scope":        true,
	"prime":             true,
	"reference_manager": true,
}

var validEntryPointKinds = map[string]EntryPointKind{
	"EXTERNAL":    External,
	"L1_HANDLER":  L1Handler,
	"CONSTRUCTOR": Constructor,
}

// Parse decodes raw JSON bytes into a ContractDefinition. Every field is
// either a recognized one or the parse fails fail-closed: an unrecognized
// top-level or program field, a missing required field, or a type
// mismatch are all reported as a *ParseError.
func Parse(raw []byte) (*ContractDefinition, error) {
	top, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Field: "$", Err: err}
	}
	if err := rejectUnknown(top, allowedContractFields, ""); err != nil {
		return nil, err
	}

	cd := &ContractDefinition{}

	abiRaw, ok := top["abi"]
	if !ok {
		return nil, &ParseError{Field: "abi", Err: fmt.Errorf("missing required field")}
	}
	cd.ABI = json.RawMessage(abiRaw)

	programRaw, ok := top["program"]
	if !ok {
		return nil, &ParseError{Field: "program", Err: fmt.Errorf("missing required field")}
	}
	program, err := parseProgram(programRaw)
	if err != nil {
		return nil, err
	}
	cd.Program = *program

	epRaw, ok := top["entry_points_by_type"]
	if !ok {
		return nil, &ParseError{Field: "entry_points_by_type", Err: fmt.Errorf("missing required field")}
	}
	eps, err := parseEntryPoints(epRaw)
	if err != nil {
		return nil, err
	}
	cd.EntryPointsByType = eps

	return cd, nil
}

func parseProgram(raw json.RawMessage) (*Program, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Field: "program", Err: err}
	}
	if err := rejectUnknown(fields, allowedProgramFields, "program."); err != nil {
		return nil, err
	}

	p := &Program{}

	if raw, ok := fields["attributes"]; ok {
		var attrs []json.RawMessage
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return nil, &ParseError{Field: "program.attributes", Err: err}
		}
		p.Attributes = attrs
	}

	if raw, ok := fields["builtins"]; ok {
		if err := json.Unmarshal(raw, &p.Builtins); err != nil {
			return nil, &ParseError{Field: "program.builtins", Err: err}
		}
	} else {
		return nil, &ParseError{Field: "program.builtins", Err: fmt.Errorf("missing required field")}
	}

	if raw, ok := fields["data"]; ok {
		if err := json.Unmarshal(raw, &p.Data); err != nil {
			return nil, &ParseError{Field: "program.data", Err: err}
		}
	} else {
		return nil, &ParseError{Field: "program.data", Err: fmt.Errorf("missing required field")}
	}

	// debug_info is accepted, then discarded unconditionally; its
	// content never survives into the serialized/hashed form.
	p.DebugInfo = json.RawMessage(fields["debug_info"])

	if raw, ok := fields["hints"]; ok {
		hints, err := parseHints(raw)
		if err != nil {
			return nil, err
		}
		p.Hints = hints
	} else {
		return nil, &ParseError{Field: "program.hints", Err: fmt.Errorf("missing required field")}
	}

	if raw, ok := fields["identifiers"]; ok {
		p.Identifiers = json.RawMessage(raw)
	} else {
		return nil, &ParseError{Field: "program.identifiers", Err: fmt.Errorf("missing required field")}
	}

	if raw, ok := fields["main_scope"]; ok {
		if err := json.Unmarshal(raw, &p.MainScope); err != nil {
			return nil, &ParseError{Field: "program.main_scope", Err: err}
		}
	} else {
		return nil, &ParseError{Field: "program.main_scope", Err: fmt.Errorf("missing required field")}
	}

	if raw, ok := fields["prime"]; ok {
		if err := json.Unmarshal(raw, &p.Prime); err != nil {
			return nil, &ParseError{Field: "program.prime", Err: err}
		}
	} else {
		return nil, &ParseError{Field: "program.prime", Err: fmt.Errorf("missing required field")}
	}

	if raw, ok := fields["reference_manager"]; ok {
		p.ReferenceManager = json.RawMessage(raw)
	} else {
		return nil, &ParseError{Field: "program.reference_manager", Err: fmt.Errorf("missing required field")}
	}

	return p, nil
}

func parseHints(raw json.RawMessage) (map[uint64][]json.RawMessage, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Field: "program.hints", Err: err}
	}

	out := make(map[uint64][]json.RawMessage, len(m))
	for k, v := range m {
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, &ParseError{Field: "program.hints." + k, Err: fmt.Errorf("non-numeric hint key")}
		}
		var list []json.RawMessage
		if err := json.Unmarshal(v, &list); err != nil {
			return nil, &ParseError{Field: fmt.Sprintf("program.hints.%d", n), Err: err}
		}
		out[n] = list
	}
	return out, nil
}

func parseEntryPoints(raw json.RawMessage) (map[EntryPointKind][]SelectorAndOffset, error) {
	var m map[string][]struct {
		Selector string `json:"selector"`
		Offset   string `json:"offset"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, &ParseError{Field: "entry_points_by_type", Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Field: "entry_points_by_type", Err: fmt.Errorf("trailing data after JSON value")}
	}

	out := make(map[EntryPointKind][]SelectorAndOffset, len(m))
	for k, list := range m {
		kind, ok := validEntryPointKinds[k]
		if !ok {
			return nil, &ParseError{Field: "entry_points_by_type." + k, Err: fmt.Errorf("unknown entry point kind")}
		}
		items := make([]SelectorAndOffset, len(list))
		for i, e := range list {
			items[i] = SelectorAndOffset{Selector: e.Selector, Offset: e.Offset}
		}
		out[kind] = items
	}
	return out, nil
}

// decodeObject decodes a JSON object and returns each member's raw,
// unreparsed bytes, so arbitrary-precision numbers inside the members
// keep their exact textual form. Trailing
// non-whitespace content after the object is rejected; the entire input
// must be one document.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return m, nil
}

func rejectUnknown(fields map[string]json.RawMessage, allowed map[string]bool, prefix string) error {
	for k := range fields {
		if !allowed[k] {
			return &ParseError{Field: prefix + k, Err: fmt.Errorf("unknown field")}
		}
	}
	return nil
}
