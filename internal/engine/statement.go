package engine

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

type stmtState int

const (
	statePrepared stmtState = iota
	stateBound
	stateHasRow
	stateExhausted
)

// Lifetime describes who owns the bytes passed to BindText/BindBlob, per
// spec.md §4.1. database/sql always copies bound parameter bytes before a
// call returns, so Quill's Go rendition has no caller-owned-lifetime
// hazard to model; the distinction is kept in the API for documentation
// fidelity with the source contract (SPEC_FULL.md Open Question 2).
type Lifetime int

const (
	// LifetimeStatic means the caller would otherwise be required to keep
	// the bytes valid until Step returns.
	LifetimeStatic Lifetime = iota
	// LifetimeTransfer means the shim would otherwise release the bytes
	// through the caller's allocator once done.
	LifetimeTransfer
)

// ColumnType is the engine's 5-tag column model.
type ColumnType int

const (
	ColInteger ColumnType = iota
	ColFloat
	ColText
	ColBlob
	ColNull
)

// Statement is a compiled, reusable prepared statement: the runtime
// counterpart of a C4 builder result. It may be bound and stepped
// repeatedly, is reset between bindings, and is finalized on destruction
// (spec.md §3 "Entity lifecycles").
type Statement struct {
	handle *Handle
	stmt   *sql.Stmt
	sql    string
	names  []string // placeholder names, 1-based index into names[i-1]
	bound  []any    // sql.Named args aligned with names

	rows    *sql.Rows
	cols    []string
	current []any

	state stmtState
}

// ParameterCount returns the number of distinct named placeholders in the
// compiled statement, bind (`:field`) and filter (`:_field`) alike.
func (s *Statement) ParameterCount() int {
	return len(s.names)
}

// BindParameterCount returns the number of distinct bind-position
// placeholders (`:field`) in the compiled statement, excluding the
// `_`-prefixed filter placeholders (`:_field`) a WHERE clause renders.
// spec.md §4.4 lets both kinds coexist in one statement text (an Update or
// Delete with a WHERE clause), so C5's precondition check must count only
// the former.
func (s *Statement) BindParameterCount() int {
	n := 0
	for _, name := range s.names {
		if !strings.HasPrefix(name, "_") {
			n++
		}
	}
	return n
}

// ParameterIndex returns the 1-based bind index for name (with or without
// its leading colon). Fails with qerr.ErrBindParameterNotFound if name is
// not among the compiled statement's placeholders.
func (s *Statement) ParameterIndex(name string) (int, error) {
	name = strings.TrimPrefix(name, ":")
	for i, n := range s.names {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, qerr.ErrBindParameterNotFound
}

func (s *Statement) setBind(i int, v any) error {
	if i < 1 || i > len(s.names) {
		return qerr.ErrBindParameterNotFound
	}
	s.bound[i-1] = sql.Named(s.names[i-1], v)
	if s.state == statePrepared {
		s.state = stateBound
	}
	return nil
}

// BindNull binds SQL NULL at the given 1-based index.
func (s *Statement) BindNull(i int) error { return s.setBind(i, nil) }

// BindInt64 binds a 64-bit integer at the given 1-based index.
func (s *Statement) BindInt64(i int, v int64) error { return s.setBind(i, v) }

// BindInt32 binds a 32-bit integer (e.g. a Bool's 0/1) at the given
// 1-based index.
func (s *Statement) BindInt32(i int, v int32) error { return s.setBind(i, int64(v)) }

// BindDouble binds a 64-bit float at the given 1-based index.
func (s *Statement) BindDouble(i int, v float64) error { return s.setBind(i, v) }

// BindText binds text bytes at the given 1-based index. lifetime is
// accepted for API fidelity with spec.md §4.1 but has no observable effect
// in Go (see Lifetime doc comment).
func (s *Statement) BindText(i int, b []byte, _ Lifetime) error {
	return s.setBind(i, string(b))
}

// BindBlob binds blob bytes at the given 1-based index.
func (s *Statement) BindBlob(i int, b []byte, _ Lifetime) error {
	cp := append([]byte(nil), b...)
	return s.setBind(i, cp)
}

// Step advances the statement, executing it against the engine on first
// call. Returns true if a row is available (Row), false if the statement
// is exhausted (Done).
func (s *Statement) Step(ctx context.Context) (bool, error) {
	if s.rows == nil {
		rows, err := s.stmt.QueryContext(ctx, s.bound...)
		if err != nil {
			return false, s.handle.setErr(classifyExecErr(err))
		}
		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return false, s.handle.setErr(classifyExecErr(err))
		}
		s.rows = rows
		s.cols = cols
	}
	if !s.rows.Next() {
		s.state = stateExhausted
		return false, s.rows.Err()
	}
	vals := make([]any, len(s.cols))
	ptrs := make([]any, len(s.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return false, s.handle.setErr(classifyExecErr(err))
	}
	s.current = vals
	s.state = stateHasRow
	return true, nil
}

// Reset returns the statement to Prepared, discarding any open row cursor
// but retaining its bound parameter values (matching sqlite3_reset, which
// does not clear bindings).
func (s *Statement) Reset() {
	if s.rows != nil {
		s.rows.Close()
		s.rows = nil
	}
	s.cols = nil
	s.current = nil
	s.state = statePrepared
}

// ClearBindings sets every bound parameter back to NULL.
func (s *Statement) ClearBindings() {
	for i, n := range s.names {
		s.bound[i] = sql.Named(n, nil)
	}
}

// Finalize releases the compiled statement and any open row cursor.
func (s *Statement) Finalize() error {
	if s.rows != nil {
		s.rows.Close()
	}
	return s.stmt.Close()
}

// ColumnCount returns the number of columns in the current row.
func (s *Statement) ColumnCount() int { return len(s.cols) }

// ColumnName returns the label of the column at the given 0-based index.
func (s *Statement) ColumnName(i int) string { return s.cols[i] }

// ColumnType reports the storage tag of the value at the given 0-based
// column index in the current row.
func (s *Statement) ColumnType(i int) ColumnType {
	switch s.current[i].(type) {
	case nil:
		return ColNull
	case int64:
		return ColInteger
	case float64:
		return ColFloat
	case string:
		return ColText
	case []byte:
		return ColBlob
	default:
		return ColNull
	}
}

// ColumnBytes returns the payload size, in bytes, of the value at the
// given 0-based column index — for integers, the minimal width (4 or 8)
// needed to hold the value without truncation.
func (s *Statement) ColumnBytes(i int) int {
	switch v := s.current[i].(type) {
	case []byte:
		return len(v)
	case string:
		return len(v)
	case int64:
		if v >= -(1<<31) && v < 1<<31 {
			return 4
		}
		return 8
	default:
		return 0
	}
}

// ColumnInt32 reads the value at the given 0-based column index as a
// 32-bit integer.
func (s *Statement) ColumnInt32(i int) int32 {
	v, _ := s.current[i].(int64)
	return int32(v)
}

// ColumnInt64 reads the value at the given 0-based column index as a
// 64-bit integer.
func (s *Statement) ColumnInt64(i int) int64 {
	v, _ := s.current[i].(int64)
	return v
}

// ColumnDouble reads the value at the given 0-based column index as a
// 64-bit float.
func (s *Statement) ColumnDouble(i int) float64 {
	v, _ := s.current[i].(float64)
	return v
}

// ColumnText reads the value at the given 0-based column index as owned
// text bytes; ok is false if the column is NULL.
func (s *Statement) ColumnText(i int) (b []byte, ok bool) {
	switch v := s.current[i].(type) {
	case nil:
		return nil, false
	case string:
		return []byte(v), true
	case []byte:
		return append([]byte(nil), v...), true
	default:
		return nil, false
	}
}

// ColumnBlob reads the value at the given 0-based column index as owned
// blob bytes; ok is false if the column is NULL.
func (s *Statement) ColumnBlob(i int) (b []byte, ok bool) {
	switch v := s.current[i].(type) {
	case nil:
		return nil, false
	case []byte:
		return append([]byte(nil), v...), true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
