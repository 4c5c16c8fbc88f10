// Package uuid7 generates and round-trips UUIDv7 identifiers.
//
// A UUIDv7 is a 16-byte value whose leading 48 bits encode a big-endian
// Unix-milliseconds timestamp, whose version nibble is 7, and whose variant
// bits are "10". Quill uses UUIDv7 for the mandatory "uuid" field on every
// model shape so that primary keys sort chronologically without a separate
// created-at column.
package uuid7

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// UUID is a 16-byte UUIDv7 identifier.
type UUID [16]byte

// New generates a fresh UUIDv7, panicking only if the platform's random
// source is exhausted (mirrors the teacher's uuid.Must(uuid.NewV7()) call).
func New() UUID {
	id := uuid.Must(uuid.NewV7())
	var out UUID
	copy(out[:], id[:])
	return out
}

// Bytes returns the raw 16-byte representation, suitable for
// CastInto<Blob,bytes> binding.
func (u UUID) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, u[:])
	return out
}

// FromBytes copies a 16-byte slice into a UUID. Any other length fails
// with qerr.ErrMismatchedSize.
func FromBytes(b []byte) (UUID, error) {
	var out UUID
	if len(b) != 16 {
		return out, qerr.ErrMismatchedSize
	}
	copy(out[:], b)
	return out, nil
}

// ToURN renders the canonical hyphenated 8-4-4-4-12 hex form.
func (u UUID) ToURN() string {
	id := uuid.UUID(u)
	return id.String()
}

// FromURN parses the canonical hyphenated hex form produced by ToURN.
// It fails with qerr.ErrMalformedURNString or qerr.ErrInvalidHexCharacter
// on malformed input.
func FromURN(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, classifyParseError(s, err)
	}
	var out UUID
	copy(out[:], id[:])
	return out, nil
}

// classifyParseError distinguishes a malformed overall shape from a
// specific invalid hex digit, matching spec.md's two distinct URN error
// kinds.
func classifyParseError(s string, err error) error {
	for _, r := range s {
		switch {
		case r == '-':
			continue
		case (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F'):
			continue
		default:
			return qerr.ErrInvalidHexCharacter
		}
	}
	return qerr.ErrMalformedURNString
}
