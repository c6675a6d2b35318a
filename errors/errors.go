// Package errors provides error handling for mammos-entity.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for the domain failure taxonomy
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownConcept) {
//	    // handle unknown ontology label
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

// Sentinel errors for the mammos-entity failure taxonomy.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnknownConcept indicates a label that does not exist in the ontology
	ErrUnknownConcept = New("unknown ontology concept")

	// ErrUnitMismatch indicates a unit that is not convertible to the unit
	// expected by an ontology concept, or two inconvertible units being combined
	ErrUnitMismatch = New("unit not convertible")

	// ErrLabelMismatch indicates two entities that were expected to share an
	// ontology label but do not
	ErrLabelMismatch = New("incompatible ontology labels")

	// ErrShapeMismatch indicates values of incompatible shapes, e.g. mixed
	// scalar and vector columns in a CSV write
	ErrShapeMismatch = New("incompatible value shapes")

	// ErrFormat indicates a malformed file: bad header, unsupported version,
	// missing or extra required keys
	ErrFormat = New("malformed file")

	// ErrIntegrity indicates that an IRI recorded in a file does not match the
	// concept currently resolved for its recorded label
	ErrIntegrity = New("ontology integrity violation")

	// ErrNoData indicates a write was requested with nothing to write
	ErrNoData = New("no data to write")
)

// IsUnknownConcept checks if an error is or wraps ErrUnknownConcept
func IsUnknownConcept(err error) bool {
	return err != nil && Is(err, ErrUnknownConcept)
}

// IsUnitMismatch checks if an error is or wraps ErrUnitMismatch
func IsUnitMismatch(err error) bool {
	return err != nil && Is(err, ErrUnitMismatch)
}

// IsFormat checks if an error is or wraps ErrFormat
func IsFormat(err error) bool {
	return err != nil && Is(err, ErrFormat)
}
