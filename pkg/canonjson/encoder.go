// Copyright 2025 StarkHash Project
//
// Package canonjson implements a Python-compatible JSON formatter: a
// byte-for-byte match for what Python's json.dumps(sort_keys=True)
// would emit for the same logical document. The contract hash is taken
// over this exact byte form, so every separator, escape, and
// key-ordering rule here is load-bearing, not cosmetic.
package canonjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Encoder streams canonical bytes to an underlying io.Writer. The same
// Encoder serves both the Keccak-digesting path (the sink is a
// starkhash.KeccakWriter) and the byte-buffer path ABI/bytecode
// extraction needs: only the sink changes, never the formatting logic.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first write or encoding error the Encoder has seen, if
// any. Once set, further calls on the Encoder are no-ops.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *Encoder) writeString(s string) {
	e.write([]byte(s))
}

// BeginObject/EndObject/BeginArray/EndArray/Colon/Comma are the formatter
// hooks: no extra whitespace at a boundary, ", " between entries, ": "
// between a key and its value. They are exported so contracthash can
// drive them directly to hard-code Program's alphabetical field order
// rather than going through a generic map (Go maps have no stable
// iteration order to exploit, and Program's shape is fixed by the
// schema, not runtime data).
func (e *Encoder) BeginObject() { e.write([]byte{'{'}) }
func (e *Encoder) EndObject()   { e.write([]byte{'}'}) }
func (e *Encoder) BeginArray()  { e.write([]byte{'['}) }
func (e *Encoder) EndArray()    { e.write([]byte{']'}) }
func (e *Encoder) Colon()       { e.writeString(": ") }
func (e *Encoder) Null()        { e.writeString("null") }

// Comma writes the inter-element separator, ", ", unless first is true.
func (e *Encoder) Comma(first bool) {
	if !first {
		e.writeString(", ")
	}
}

// EncodeKey writes a JSON object key (a quoted string, using the same
// escaping rules as any other string value).
func (e *Encoder) EncodeKey(k string) {
	e.encodeString(k)
}

// EncodeValue encodes a value already decoded with arbitrary-precision
// numbers preserved (json.Number instead of float64), the shape
// json.NewDecoder(...).UseNumber() produces.
// Object keys are sorted lexicographically over their UTF-8 bytes at
// every nesting level, matching Python's sort_keys=True.
func (e *Encoder) EncodeValue(v any) {
	switch vv := v.(type) {
	case nil:
		e.Null()
	case bool:
		if vv {
			e.writeString("true")
		} else {
			e.writeString("false")
		}
	case json.Number:
		e.writeString(string(vv))
	case string:
		e.encodeString(vv)
	case []any:
		e.BeginArray()
		for i, item := range vv {
			e.Comma(i == 0)
			e.EncodeValue(item)
		}
		e.EndArray()
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.BeginObject()
		for i, k := range keys {
			e.Comma(i == 0)
			e.EncodeKey(k)
			e.Colon()
			e.EncodeValue(vv[k])
		}
		e.EndObject()
	case json.RawMessage:
		e.EncodeRaw(vv)
	default:
		if e.err == nil {
			e.err = fmt.Errorf("canonjson: unsupported value type %T", v)
		}
	}
}

// EncodeRaw decodes a raw JSON fragment (preserving arbitrary-precision
// numbers) and encodes it canonically. An empty fragment, the shape a
// genuinely absent optional field decodes to, is treated as null.
func (e *Encoder) EncodeRaw(raw json.RawMessage) {
	if e.err != nil {
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		e.Null()
		return
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		e.err = fmt.Errorf("canonjson: decode raw fragment: %w", err)
		return
	}
	e.EncodeValue(v)
}

// encodeString applies standard JSON escaping. Non-ASCII code points are
// emitted as literal UTF-8, matching Python's ensure_ascii=False.
func (e *Encoder) encodeString(s string) {
	e.write([]byte{'"'})
	for _, r := range s {
		switch r {
		case '"':
			e.writeString(`\"`)
		case '\\':
			e.writeString(`\\`)
		case '\n':
			e.writeString(`\n`)
		case '\r':
			e.writeString(`\r`)
		case '\t':
			e.writeString(`\t`)
		case '\b':
			e.writeString(`\b`)
		case '\f':
			e.writeString(`\f`)
		default:
			if r < 0x20 {
				e.writeString(fmt.Sprintf(`\u%04x`, r))
			} else {
				e.write([]byte(string(r)))
			}
		}
	}
	e.write([]byte{'"'})
}
