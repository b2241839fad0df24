// Package errs provides the unified error type used across all of spacelens.
//
// Every subsystem (client, sats, schema, …) wraps its native errors into
// *errs.Error before returning them to callers. Callers use the Is*
// predicates to handle errors without importing subsystem packages.
//
// Usage:
//
//	// In the client — wrap native errors:
//	return errs.Wrap(errs.ErrKindFetchFailed, "schema fetch failed", err)
//
//	// In the CLI — check error kind:
//	if errs.IsFetchFailed(err) {
//	    os.Exit(1)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
// The fetch client, wire decoder, and model builder map their failures to
// one of these kinds, giving the CLI a single consistent API.
type ErrKind int

const (
	ErrKindUnknown             ErrKind = iota
	ErrKindFetchFailed                 // schema could not be retrieved from the server
	ErrKindMalformedSchema             // fetched document has an unrecognized top-level shape
	ErrKindDuplicateDefinition         // two entities of the same kind share a name
	ErrKindUnrecognizedType            // a type descriptor did not match any known shape
	ErrKindInvalidInput                // bad arguments from the caller
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFetchFailed:
		return "fetch_failed"
	case ErrKindMalformedSchema:
		return "malformed_schema"
	case ErrKindDuplicateDefinition:
		return "duplicate_definition"
	case ErrKindUnrecognizedType:
		return "unrecognized_type"
	case ErrKindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all spacelens subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original lower-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind ErrKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsFetchFailed reports whether err means the schema could not be retrieved.
func IsFetchFailed(err error) bool {
	return kindOf(err) == ErrKindFetchFailed
}

// IsMalformedSchema reports whether err was caused by an unparseable document.
func IsMalformedSchema(err error) bool {
	return kindOf(err) == ErrKindMalformedSchema
}

// IsDuplicateDefinition reports whether err indicates a name collision
// within one entity kind of the source schema.
func IsDuplicateDefinition(err error) bool {
	return kindOf(err) == ErrKindDuplicateDefinition
}

// IsUnrecognizedType reports whether err came from a type descriptor that
// matched no known shape.
func IsUnrecognizedType(err error) bool {
	return kindOf(err) == ErrKindUnrecognizedType
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
