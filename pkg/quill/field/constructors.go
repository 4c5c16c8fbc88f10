package field

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Int declares a non-optional 64-bit signed integer field.
func Int[R any](label string, get func(*R) int64, set func(*R, int64)) Field {
	return Field{
		Label:      label,
		Descriptor: DInt,
		Tag:        TagInt,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			iv, ok := v.(int64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), iv)
			return nil
		},
	}
}

// OptInt declares an optional 64-bit signed integer field. A nil pointer
// represents the absent variant.
func OptInt[R any](label string, get func(*R) *int64, set func(*R, *int64)) Field {
	return Field{
		Label:      label,
		Descriptor: DInt,
		Tag:        TagInt,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			iv, ok := v.(int64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), &iv)
			return nil
		},
	}
}

// Bool declares a non-optional boolean field, stored as SQL INTEGER
// restricted to {0,1}.
func Bool[R any](label string, get func(*R) bool, set func(*R, bool)) Field {
	return Field{
		Label:      label,
		Descriptor: DBool,
		Tag:        TagInt,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			bv, ok := v.(bool)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// OptBool declares an optional boolean field.
func OptBool[R any](label string, get func(*R) *bool, set func(*R, *bool)) Field {
	return Field{
		Label:      label,
		Descriptor: DBool,
		Tag:        TagInt,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			bv, ok := v.(bool)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), &bv)
			return nil
		},
	}
}

// Float declares a non-optional 64-bit float field.
func Float[R any](label string, get func(*R) float64, set func(*R, float64)) Field {
	return Field{
		Label:      label,
		Descriptor: DFloat,
		Tag:        TagFloat,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			fv, ok := v.(float64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), fv)
			return nil
		},
	}
}

// OptFloat declares an optional 64-bit float field.
func OptFloat[R any](label string, get func(*R) *float64, set func(*R, *float64)) Field {
	return Field{
		Label:      label,
		Descriptor: DFloat,
		Tag:        TagFloat,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			fv, ok := v.(float64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), &fv)
			return nil
		},
	}
}

// Slice declares a raw, uninterpreted byte-sequence field. Per spec.md
// §4.2 it is view-only: it accepts either a Text or Blob column tag on
// extraction (see pkg/quill's extract engine) and has no bind rendering of
// its own.
func Slice[R any](label string, get func(*R) []byte, set func(*R, []byte)) Field {
	return Field{
		Label:      label,
		Descriptor: DSlice,
		Tag:        TagBlob,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			bv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// CastIntoIntEnum declares CastInto<Int,E>: an enumeration value written
// as its ordinal.
func CastIntoIntEnum[R any, E any](
	label string,
	get func(*R) E, set func(*R, E),
	ordinal func(E) int64, fromOrdinal func(int64) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoIntEnum,
		Tag:        TagInt,
		Get: func(rec any) (any, bool) {
			return ordinal(get(rec.(*R))), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			ov, ok := v.(int64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			ev, err := fromOrdinal(ov)
			if err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), ev)
			return nil
		},
	}
}

// OptCastIntoIntEnum declares an optional CastInto<Int,E>.
func OptCastIntoIntEnum[R any, E any](
	label string,
	get func(*R) *E, set func(*R, *E),
	ordinal func(E) int64, fromOrdinal func(int64) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoIntEnum,
		Tag:        TagInt,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			return ordinal(*p), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			ov, ok := v.(int64)
			if !ok {
				return qerr.ErrMismatchedType
			}
			ev, err := fromOrdinal(ov)
			if err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), &ev)
			return nil
		},
	}
}

// CastIntoTextEnum declares CastInto<Text,E>: an enumeration value written
// as its variant name.
func CastIntoTextEnum[R any, E any](
	label string,
	get func(*R) E, set func(*R, E),
	name func(E) string, fromName func(string) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextEnum,
		Tag:        TagText,
		Get: func(rec any) (any, bool) {
			return []byte(name(get(rec.(*R)))), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			nv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			ev, err := fromName(string(nv))
			if err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), ev)
			return nil
		},
	}
}

// OptCastIntoTextEnum declares an optional CastInto<Text,E>.
func OptCastIntoTextEnum[R any, E any](
	label string,
	get func(*R) *E, set func(*R, *E),
	name func(E) string, fromName func(string) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextEnum,
		Tag:        TagText,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			return []byte(name(*p)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			nv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			ev, err := fromName(string(nv))
			if err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), &ev)
			return nil
		},
	}
}

// CastIntoTextJSON declares CastInto<Text,R2>: a nested record or sequence
// written as JSON text, using encoding/json as the canonical textual
// encoding (spec.md §1).
func CastIntoTextJSON[R any, J any](label string, get func(*R) J, set func(*R, J)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextJSON,
		Tag:        TagText,
		Get: func(rec any) (any, bool) {
			b, err := json.Marshal(get(rec.(*R)))
			if err != nil {
				return nil, false
			}
			return b, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			b, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			var jv J
			if err := json.Unmarshal(b, &jv); err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), jv)
			return nil
		},
	}
}

// OptCastIntoTextJSON declares an optional CastInto<Text,R2>.
func OptCastIntoTextJSON[R any, J any](label string, get func(*R) *J, set func(*R, *J)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextJSON,
		Tag:        TagText,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			p := get(rec.(*R))
			if p == nil {
				return nil, false
			}
			b, err := json.Marshal(*p)
			if err != nil {
				return nil, false
			}
			return b, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			b, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			var jv J
			if err := json.Unmarshal(b, &jv); err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), &jv)
			return nil
		},
	}
}

// CastIntoTextBytes declares CastInto<Text,bytes>: a byte sequence stored
// verbatim as SQL TEXT.
func CastIntoTextBytes[R any](label string, get func(*R) []byte, set func(*R, []byte)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextBytes,
		Tag:        TagText,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			bv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// OptCastIntoTextBytes declares an optional CastInto<Text,bytes>.
func OptCastIntoTextBytes[R any](label string, get func(*R) []byte, set func(*R, []byte)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoTextBytes,
		Tag:        TagText,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			b := get(rec.(*R))
			if b == nil {
				return nil, false
			}
			return b, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			bv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// CastIntoBlobBytes declares CastInto<Blob,bytes>: a byte sequence stored
// verbatim as SQL BLOB. This is the only descriptor a shape's mandatory
// uuid field may use (spec.md §3).
func CastIntoBlobBytes[R any](label string, get func(*R) []byte, set func(*R, []byte)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoBlobBytes,
		Tag:        TagBlob,
		Get: func(rec any) (any, bool) {
			return get(rec.(*R)), true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			bv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// OptCastIntoBlobBytes declares an optional CastInto<Blob,bytes>. Never
// valid for a shape's uuid field.
func OptCastIntoBlobBytes[R any](label string, get func(*R) []byte, set func(*R, []byte)) Field {
	return Field{
		Label:      label,
		Descriptor: DCastIntoBlobBytes,
		Tag:        TagBlob,
		Optional:   true,
		Get: func(rec any) (any, bool) {
			b := get(rec.(*R))
			if b == nil {
				return nil, false
			}
			return b, true
		},
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			bv, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			set(rec.(*R), bv)
			return nil
		},
	}
}

// AnyEnum declares Any<E>: a view-only field that accepts either an
// Integer column (read as an ordinal) or a Text column (read as a variant
// name) and resolves to the same enumeration either way.
func AnyEnum[R any, E any](
	label string, set func(*R, E),
	fromOrdinal func(int64) (E, error), fromName func(string) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DAnyEnum,
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			switch tv := v.(type) {
			case int64:
				ev, err := fromOrdinal(tv)
				if err != nil {
					return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
				}
				set(rec.(*R), ev)
				return nil
			case []byte:
				ev, err := fromName(string(tv))
				if err != nil {
					return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
				}
				set(rec.(*R), ev)
				return nil
			default:
				return qerr.ErrMismatchedType
			}
		},
	}
}

// OptAnyEnum declares an optional Any<E>.
func OptAnyEnum[R any, E any](
	label string, set func(*R, *E),
	fromOrdinal func(int64) (E, error), fromName func(string) (E, error),
) Field {
	return Field{
		Label:      label,
		Descriptor: DAnyEnum,
		Optional:   true,
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			switch tv := v.(type) {
			case int64:
				ev, err := fromOrdinal(tv)
				if err != nil {
					return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
				}
				set(rec.(*R), &ev)
				return nil
			case []byte:
				ev, err := fromName(string(tv))
				if err != nil {
					return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
				}
				set(rec.(*R), &ev)
				return nil
			default:
				return qerr.ErrMismatchedType
			}
		},
	}
}

// AnyJSON declares Any<R2> (or Any<[R2]>): a view-only field read from a
// Text column and JSON-decoded into the caller's type.
func AnyJSON[R any, J any](label string, set func(*R, J)) Field {
	return Field{
		Label:      label,
		Descriptor: DAnyJSON,
		Set: func(rec any, v any, present bool) error {
			if !present {
				return qerr.ErrUnexpectedNullValue
			}
			b, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			var jv J
			if err := json.Unmarshal(b, &jv); err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), jv)
			return nil
		},
	}
}

// OptAnyJSON declares an optional Any<R2>.
func OptAnyJSON[R any, J any](label string, set func(*R, *J)) Field {
	return Field{
		Label:      label,
		Descriptor: DAnyJSON,
		Optional:   true,
		Set: func(rec any, v any, present bool) error {
			if !present {
				set(rec.(*R), nil)
				return nil
			}
			b, ok := v.([]byte)
			if !ok {
				return qerr.ErrMismatchedType
			}
			var jv J
			if err := json.Unmarshal(b, &jv); err != nil {
				return fmt.Errorf("%w: %v", qerr.ErrMismatchedValue, err)
			}
			set(rec.(*R), &jv)
			return nil
		},
	}
}
