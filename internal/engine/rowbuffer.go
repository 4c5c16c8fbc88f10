package engine

import (
	"database/sql"
	"fmt"
	"strconv"
)

// ColumnPair is one (label, text-form) pair copied out of a one-shot Exec
// result, per spec.md §4.1.
type ColumnPair struct {
	Label string
	Text  string
}

// RowBuffer is the owned result of Handle.Exec: an ordered sequence of
// rows, each an ordered sequence of column pairs. It is released by the
// caller through Destroy, mirroring the single bulk-free entry point
// spec.md §3 describes for engine-owned buffers.
type RowBuffer struct {
	Rows [][]ColumnPair
}

// Destroy releases the RowBuffer. Go's garbage collector already reclaims
// its backing memory; this exists to satisfy the shim's ownership contract
// (spec.md §6 "owned, destroy() to release").
func (r *RowBuffer) Destroy() {}

// Len returns the number of rows collected.
func (r *RowBuffer) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

func collectRowBuffer(rows *sql.Rows) (*RowBuffer, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	buf := &RowBuffer{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]ColumnPair, len(cols))
		for i, c := range cols {
			row[i] = ColumnPair{Label: c, Text: textForm(vals[i])}
		}
		buf.Rows = append(buf.Rows, row)
	}
	return buf, rows.Err()
}

func textForm(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
