// Copyright 2025 StarkHash Project
//
// Context-carrying error types for contract hashing.

package contracthash

import (
	"fmt"

	"github.com/starkhash-io/contracthash/pkg/contractdef"
)

// EntryPointError reports a selector or offset that was missing its
// required "0x" prefix or failed hex decoding, identified by the entry
// point kind, its index within that kind's list, and which field
// ("selector" or "offset") was at fault.
type EntryPointError struct {
	Kind  contractdef.EntryPointKind
	Index int
	Field string
	Err   error
}

func (e *EntryPointError) Error() string {
	return fmt.Sprintf("entry point %s[%d].%s: %v", e.Kind, e.Index, e.Field, e.Err)
}

func (e *EntryPointError) Unwrap() error { return e.Err }

// BuiltinError reports a builtin identifier whose raw bytes do not
// represent a value that fits the base field; in practice, a string
// longer than 31 bytes (32 bytes fits only if the resulting integer is
// still below the field modulus).
type BuiltinError struct {
	Index int
	Err   error
}

func (e *BuiltinError) Error() string {
	return fmt.Sprintf("builtin[%d]: %v", e.Index, e.Err)
}

func (e *BuiltinError) Unwrap() error { return e.Err }

// BytecodeError reports a program.data entry that failed hex parsing or
// did not fit the field.
type BytecodeError struct {
	Index int
	Err   error
}

func (e *BytecodeError) Error() string {
	return fmt.Sprintf("program.data[%d]: %v", e.Index, e.Err)
}

func (e *BytecodeError) Unwrap() error { return e.Err }
