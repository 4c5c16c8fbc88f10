package quill

import (
	"context"
	"fmt"
	"log"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
)

// Result is what a single Step produced.
type Result int

const (
	// ResultDone means the statement is exhausted.
	ResultDone Result = iota
	// ResultRow means a row is available for ReadOne/ReadMany.
	ResultRow
)

type crudState int

const (
	crudPrepared crudState = iota
	crudBound
	crudHasRow
	crudExhausted
)

// CRUD wraps a single owned prepared statement in the Prepared→Bound→
// HasRow/Exhausted state machine of C7 (spec.md §4.7). It takes ownership
// of an *engine.Statement prepared from a C4 assembler's text, drives C5/C6
// against it, and finalizes it in Destroy; a CRUD instance is never shared
// across concurrent callers.
type CRUD struct {
	stmt  *engine.Statement
	state crudState
}

// NewCRUD wraps stmt, starting in the Prepared state.
func NewCRUD(stmt *engine.Statement) *CRUD {
	return &CRUD{stmt: stmt}
}

// Bind applies C5 to the held statement without stepping it.
func (c *CRUD) Bind(model *Shape, record any) error {
	if err := Bind(c.stmt, model, record); err != nil {
		return err
	}
	c.state = crudBound
	return nil
}

// BindFilterValue binds a single value onto the `:_<label>` placeholder a
// Cond call rendered for a plain comparison operator.
func (c *CRUD) BindFilterValue(filter *Shape, label string, value any) error {
	if err := BindFilterScalar(c.stmt, filter, label, value); err != nil {
		return err
	}
	c.state = crudBound
	return nil
}

// BindFilterValueN binds the n-th numbered sibling placeholder of a
// between/in/!in condition.
func (c *CRUD) BindFilterValueN(filter *Shape, label string, n int, value any) error {
	if err := BindFilterScalarN(c.stmt, filter, label, n, value); err != nil {
		return err
	}
	c.state = crudBound
	return nil
}

// Exec binds, steps once, and reports which of Done/Row resulted — the
// single-shot path used for INSERT/UPDATE/DELETE and other statements that
// never produce rows. With a nil model it steps without binding.
func (c *CRUD) Exec(ctx context.Context, model *Shape, record any) (Result, error) {
	if model != nil {
		if err := c.Bind(model, record); err != nil {
			return ResultDone, err
		}
	}
	hasRow, err := c.stmt.Step(ctx)
	if err != nil {
		return ResultDone, err
	}
	if hasRow {
		c.state = crudHasRow
		return ResultRow, nil
	}
	c.state = crudExhausted
	return ResultDone, nil
}

// ReadScalarInt64 steps once and reads column 0 of the resulting row as a
// 64-bit integer, bypassing the shape-based extract engine — the escape
// hatch a bare `SELECT COUNT(*)` needs, since its result column carries no
// label a view shape could match against.
func (c *CRUD) ReadScalarInt64(ctx context.Context) (value int64, found bool, err error) {
	hasRow, err := c.stmt.Step(ctx)
	if err != nil {
		return 0, false, err
	}
	if !hasRow {
		c.state = crudExhausted
		return 0, false, nil
	}
	c.state = crudBound
	return c.stmt.ColumnInt64(0), true, nil
}

// ReadOne steps once and, if a row is available, extracts it into record via
// C6. found is false if the statement was already exhausted.
func (c *CRUD) ReadOne(ctx context.Context, view *Shape, record any) (found bool, err error) {
	hasRow, err := c.stmt.Step(ctx)
	if err != nil {
		return false, err
	}
	if !hasRow {
		c.state = crudExhausted
		return false, nil
	}
	if err := Extract(c.stmt, view, record); err != nil {
		return false, err
	}
	c.state = crudBound
	return true, nil
}

// ReadMany steps repeatedly while rows are available, using newRecord to
// allocate each destination value, and returns the collected sequence.
func (c *CRUD) ReadMany(ctx context.Context, view *Shape, newRecord func() any) ([]any, error) {
	var out []any
	for {
		hasRow, err := c.stmt.Step(ctx)
		if err != nil {
			return out, err
		}
		if !hasRow {
			c.state = crudExhausted
			return out, nil
		}
		rec := newRecord()
		if err := Extract(c.stmt, view, rec); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Reset returns the held statement to Prepared, retaining its bindings.
func (c *CRUD) Reset() {
	c.stmt.Reset()
	c.state = crudPrepared
}

// Destroy finalizes the held statement. A close-time error is logged, never
// returned — matching spec.md §4.7's "logs but does not raise".
func (c *CRUD) Destroy() {
	if err := c.stmt.Finalize(); err != nil {
		log.Printf("quill: statement finalize: %v", err)
	}
}

// Free releases the heap-allocated payloads a view decoded onto record,
// per spec.md §4.7's "free(value)" operation: it walks view's fields and
// clears the byte slices and JSON-decoded values Extract set, so a caller
// holding onto record past a statement's Reset does not also hold onto
// engine-owned memory it can no longer distinguish from its own. Scalar
// fields (Int, Bool, Float) are no-ops; Go's garbage collector already
// reclaims the byte slices this walk clears, but the walk itself documents
// and enforces the ownership boundary the way the facade's disposal
// contract requires.
func Free(view *Shape, record any) error {
	for _, f := range view.Fields {
		switch f.Descriptor {
		case field.DSlice:
			if err := f.Set(record, []byte(nil), true); err != nil {
				return fmt.Errorf("%s: %w", f.Label, err)
			}
		case field.DAnyJSON:
			if err := f.Set(record, []byte("null"), true); err != nil {
				return fmt.Errorf("%s: %w", f.Label, err)
			}
		}
	}
	return nil
}

// FreeMany calls Free over every element of records.
func FreeMany(view *Shape, records []any) error {
	for _, r := range records {
		if err := Free(view, r); err != nil {
			return err
		}
	}
	return nil
}

// Begin, Commit, and Rollback drive the corresponding SQL keyword through
// the handle's single-shot exec path (spec.md §4.7); they do not go through
// a CRUD's held statement.
func Begin(ctx context.Context, h *engine.Handle) error {
	_, err := h.Exec(ctx, "BEGIN;")
	return err
}

// Commit commits the current transaction on h.
func Commit(ctx context.Context, h *engine.Handle) error {
	_, err := h.Exec(ctx, "COMMIT;")
	return err
}

// Rollback aborts the current transaction on h.
func Rollback(ctx context.Context, h *engine.Handle) error {
	_, err := h.Exec(ctx, "ROLLBACK;")
	return err
}
