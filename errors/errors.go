// Package errors provides error handling for bindgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging generator failures
//   - Error wrapping with field/type context
//   - Hints surfaced to CLI users
//
// Usage:
//
//	// Create new error
//	err := errors.New("no such definition")
//
//	// Wrap with context
//	if err := emit(def); err != nil {
//	    return errors.Wrapf(err, "table %s", def.Name)
//	}
//
//	// Check errors
//	var unsupported *swift.UnsupportedTypeError
//	if errors.As(err, &unsupported) {
//	    // report the offending construct
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)
