package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Bind applies C5's bind engine: it walks model's fields in declaration
// order against record, binding each to the matching `:<label>` placeholder
// on stmt. record's underlying type must match whatever model's field
// closures were built against (spec.md §4.5).
func Bind(stmt *engine.Statement, model *Shape, record any) error {
	if stmt.BindParameterCount() != len(model.Fields) {
		return fmt.Errorf("%w: statement has %d bind placeholders, model has %d fields",
			qerr.ErrMismatchedFields, stmt.BindParameterCount(), len(model.Fields))
	}

	for _, f := range model.Fields {
		idx, err := stmt.ParameterIndex(f.Label)
		if err != nil {
			return fmt.Errorf("%w: %q", err, f.Label)
		}

		value, present := f.Get(record)
		if !present {
			if err := stmt.BindNull(idx); err != nil {
				return err
			}
			continue
		}

		if err := bindOne(stmt, idx, f, value); err != nil {
			return fmt.Errorf("%s: %w", f.Label, err)
		}
	}
	return nil
}

func bindOne(stmt *engine.Statement, idx int, f field.Field, value any) error {
	switch f.Descriptor {
	case field.DInt, field.DCastIntoIntEnum:
		v, ok := value.(int64)
		if !ok {
			return qerr.ErrMismatchedType
		}
		return stmt.BindInt64(idx, v)

	case field.DBool:
		v, ok := value.(bool)
		if !ok {
			return qerr.ErrMismatchedType
		}
		if v {
			return stmt.BindInt32(idx, 1)
		}
		return stmt.BindInt32(idx, 0)

	case field.DFloat:
		v, ok := value.(float64)
		if !ok {
			return qerr.ErrMismatchedType
		}
		return stmt.BindDouble(idx, v)

	case field.DCastIntoTextEnum, field.DCastIntoTextBytes:
		v, ok := value.([]byte)
		if !ok {
			return qerr.ErrMismatchedType
		}
		return stmt.BindText(idx, v, engine.LifetimeStatic)

	case field.DCastIntoTextJSON:
		v, ok := value.([]byte)
		if !ok {
			return qerr.ErrMismatchedType
		}
		return stmt.BindText(idx, v, engine.LifetimeTransfer)

	case field.DCastIntoBlobBytes:
		v, ok := value.([]byte)
		if !ok {
			return qerr.ErrMismatchedType
		}
		return stmt.BindBlob(idx, v, engine.LifetimeStatic)

	default:
		return fmt.Errorf("%w: descriptor is not bindable", qerr.ErrInvalidNamingConvention)
	}
}

// BindFilterScalar binds a single filter value to the `:_<label>` placeholder
// a Cond call rendered, for the plain equality/comparison operators. between
// and in/!in operators use BindFilterScalarN for their numbered siblings
// (`:_<label>1`, `:_<label>2`, …).
func BindFilterScalar(stmt *engine.Statement, filter *Shape, label string, value any) error {
	f, ok := filter.Field(label)
	if !ok {
		return fmt.Errorf("%w: %q", qerr.ErrUnknownLabel, label)
	}
	idx, err := stmt.ParameterIndex("_" + label)
	if err != nil {
		return fmt.Errorf("%w: %q", err, label)
	}
	return bindOne(stmt, idx, f, value)
}

// BindFilterScalarN binds the n-th (1-based) numbered sibling placeholder of
// a between/in/!in condition, e.g. `:_<label>1`.
func BindFilterScalarN(stmt *engine.Statement, filter *Shape, label string, n int, value any) error {
	f, ok := filter.Field(label)
	if !ok {
		return fmt.Errorf("%w: %q", qerr.ErrUnknownLabel, label)
	}
	idx, err := stmt.ParameterIndex(fmt.Sprintf("_%s%d", label, n))
	if err != nil {
		return fmt.Errorf("%w: %q", err, label)
	}
	return bindOne(stmt, idx, f, value)
}
