// Package qerr defines the sentinel error values Quill's components
// return. Every operation surfaces one of these through errors.Is/errors.As
// rather than an ad-hoc error type; callers wrap them with fmt.Errorf("...: %w", err)
// for context.
package qerr

import "errors"

// Engine-shim errors (C1).
var (
	// ErrUnableToOpen means the database file could not be opened or created.
	ErrUnableToOpen = errors.New("quill: unable to open database")
	// ErrInterfaceMisuse means the caller violated the engine's API ordering.
	ErrInterfaceMisuse = errors.New("quill: engine interface misuse")
	// ErrUnableToExecuteQuery means the engine rejected the SQL text.
	ErrUnableToExecuteQuery = errors.New("quill: unable to execute query")
	// ErrUnmetConstraint means a unique or NOT NULL constraint was violated.
	ErrUnmetConstraint = errors.New("quill: unmet constraint")
	// ErrBindParameterNotFound means a named placeholder is absent from the
	// compiled statement.
	ErrBindParameterNotFound = errors.New("quill: bind parameter not found")
)

// Extract-engine errors (C6).
var (
	// ErrMismatchedType means a column's storage tag is incompatible with
	// the field descriptor reading it.
	ErrMismatchedType = errors.New("quill: mismatched type")
	// ErrMismatchedSize means a column's payload size is incompatible with
	// the field descriptor reading it.
	ErrMismatchedSize = errors.New("quill: mismatched size")
	// ErrMismatchedValue means a column's value is outside the range the
	// field descriptor accepts (e.g. a Bool column holding neither 0 nor 1).
	ErrMismatchedValue = errors.New("quill: mismatched value")
	// ErrUnexpectedNullValue means a NULL was read for a non-optional field.
	ErrUnexpectedNullValue = errors.New("quill: unexpected null value")
	// ErrMismatchedFields means the engine's column/parameter count or label
	// set disagrees with the shape driving bind or extract.
	ErrMismatchedFields = errors.New("quill: mismatched fields")
)

// Administrative errors.
var (
	// ErrFailedIntegrityChecks means PRAGMA integrity_check returned
	// something other than "ok".
	ErrFailedIntegrityChecks = errors.New("quill: failed integrity checks")
)

// Builder-misuse errors (C4), detected at shape-analysis/build time.
var (
	// ErrInvalidFunctionChain means a builder step was invoked out of the
	// required order (e.g. sort() before when(), or a second dist()).
	ErrInvalidFunctionChain = errors.New("quill: invalid builder function chain")
	// ErrMismatchedConstraint means an Update/Delete gate (Exact/All)
	// disagrees with whether when() was invoked.
	ErrMismatchedConstraint = errors.New("quill: mismatched constraint gate")
	// ErrInvalidNamingConvention means a shape, field, or builder input is
	// structurally unusable where it was passed: a descriptor the shape's
	// kind does not permit, a non-filter shape given to Cond, a non-model
	// shape given to CreateTable/CreateStatement, an empty field or label
	// list, or a descriptor with no bind/extract rendering.
	ErrInvalidNamingConvention = errors.New("quill: invalid naming convention")
)

// Shape invariant errors (§3).
var (
	// ErrMissingUUID means a model shape has no field labelled "uuid".
	ErrMissingUUID = errors.New("quill: shape missing uuid field")
	// ErrUUIDNotBlob means the uuid field is not CastInto<Blob,bytes>.
	ErrUUIDNotBlob = errors.New("quill: uuid field must cast into blob")
	// ErrUUIDOptional means the uuid field is declared optional.
	ErrUUIDOptional = errors.New("quill: uuid field must not be optional")
	// ErrDuplicateLabel means two fields in the same shape share a label.
	ErrDuplicateLabel = errors.New("quill: duplicate field label")
	// ErrUnknownLabel means a builder or filter referenced a label absent
	// from the shape driving it.
	ErrUnknownLabel = errors.New("quill: unknown field label")
)

// UUIDv7 parsing errors (§6).
var (
	// ErrMalformedURNString means the string is not a well-formed
	// hyphenated 8-4-4-4-12 hex UUID URN.
	ErrMalformedURNString = errors.New("quill: malformed urn string")
	// ErrInvalidHexCharacter means the URN contains a non-hex character
	// where a hex digit was expected.
	ErrInvalidHexCharacter = errors.New("quill: invalid hex character")
)
