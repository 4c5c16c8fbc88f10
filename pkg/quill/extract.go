package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Extract applies C6's extract engine: it walks the row stmt is currently
// positioned on against view's fields, matching columns to fields by label
// and writing the decoded values onto record (spec.md §4.6).
func Extract(stmt *engine.Statement, view *Shape, record any) error {
	if err := checkColumnsMatchFields(stmt, view); err != nil {
		return err
	}

	for i := 0; i < stmt.ColumnCount(); i++ {
		f, ok := view.Field(stmt.ColumnName(i))
		if !ok {
			return fmt.Errorf("%w: column %q has no matching field", qerr.ErrMismatchedFields, stmt.ColumnName(i))
		}

		if stmt.ColumnType(i) == engine.ColNull {
			if err := f.Set(record, nil, false); err != nil {
				return fmt.Errorf("%s: %w", f.Label, err)
			}
			continue
		}

		value, err := extractOne(stmt, i, f)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Label, err)
		}
		if err := f.Set(record, value, true); err != nil {
			return fmt.Errorf("%s: %w", f.Label, err)
		}
	}
	return nil
}

// checkColumnsMatchFields verifies the row's column count matches the view's
// field count and that the multiset of column labels equals the multiset of
// field labels, independent of order.
func checkColumnsMatchFields(stmt *engine.Statement, view *Shape) error {
	if stmt.ColumnCount() != len(view.Fields) {
		return fmt.Errorf("%w: row has %d columns, view has %d fields",
			qerr.ErrMismatchedFields, stmt.ColumnCount(), len(view.Fields))
	}
	remaining := make(map[string]int, len(view.Fields))
	for _, l := range view.Labels() {
		remaining[l]++
	}
	for i := 0; i < stmt.ColumnCount(); i++ {
		name := stmt.ColumnName(i)
		if remaining[name] == 0 {
			return fmt.Errorf("%w: column %q not on view shape", qerr.ErrMismatchedFields, name)
		}
		remaining[name]--
	}
	return nil
}

func extractOne(stmt *engine.Statement, i int, f field.Field) (any, error) {
	ct := stmt.ColumnType(i)
	switch f.Descriptor {
	case field.DBool:
		if ct != engine.ColInteger {
			return nil, qerr.ErrMismatchedType
		}
		v := stmt.ColumnInt64(i)
		if v != 0 && v != 1 {
			return nil, qerr.ErrMismatchedValue
		}
		return v == 1, nil

	case field.DInt:
		if ct != engine.ColInteger {
			return nil, qerr.ErrMismatchedType
		}
		return stmt.ColumnInt64(i), nil

	case field.DFloat:
		if ct != engine.ColFloat {
			return nil, qerr.ErrMismatchedType
		}
		return stmt.ColumnDouble(i), nil

	case field.DSlice:
		switch ct {
		case engine.ColText:
			b, _ := stmt.ColumnText(i)
			return b, nil
		case engine.ColBlob:
			b, _ := stmt.ColumnBlob(i)
			return b, nil
		default:
			return nil, qerr.ErrMismatchedType
		}

	case field.DAnyEnum:
		switch ct {
		case engine.ColInteger:
			return stmt.ColumnInt64(i), nil
		case engine.ColText:
			b, _ := stmt.ColumnText(i)
			return b, nil
		default:
			return nil, qerr.ErrMismatchedType
		}

	case field.DAnyJSON:
		if ct != engine.ColText {
			return nil, qerr.ErrMismatchedType
		}
		b, _ := stmt.ColumnText(i)
		return b, nil

	default:
		return nil, fmt.Errorf("%w: descriptor is not extractable", qerr.ErrInvalidNamingConvention)
	}
}
