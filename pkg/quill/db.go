package quill

import (
	"context"

	"github.com/mesh-intelligence/quill/internal/engine"
)

// ThreadingOption re-exports engine.ThreadingOption so callers outside this
// module never need to reach into internal/engine directly.
type ThreadingOption = engine.ThreadingOption

const (
	SingleThreaded = engine.SingleThreaded
	MultiThreaded  = engine.MultiThreaded
	Serialized     = engine.Serialized
)

// Init fixes the process-wide threading discipline. Call once before the
// first Open.
func Init(opt ThreadingOption) { engine.Init(opt) }

// Shutdown resets Quill's threading state. Call once after every DB has
// been closed.
func Shutdown() { engine.Shutdown() }

// DB is a single SQLite connection, the public counterpart of spec.md §6's
// Handle surface.
type DB struct {
	h *engine.Handle
}

// Open opens (creating if necessary) the database at path, or an in-memory
// database if path is empty.
func Open(path string) (*DB, error) {
	h, err := engine.Open(path)
	if err != nil {
		return nil, err
	}
	return &DB{h: h}, nil
}

// Close releases the connection.
func (db *DB) Close() { db.h.Close() }

// ErrMsg returns the text of the most recent engine-level error observed on
// this DB, or the empty string if none has occurred.
func (db *DB) ErrMsg() string { return db.h.ErrMsg() }

// Handle exposes the underlying engine handle for the pragma helpers in
// this package, which operate outside the prepared-statement path.
func (db *DB) Handle() *engine.Handle { return db.h }

// Exec runs a possibly multi-statement script and returns its last
// statement's rows as an owned RowBuffer of text-form columns.
func (db *DB) Exec(ctx context.Context, sqlText string) (*engine.RowBuffer, error) {
	return db.h.Exec(ctx, sqlText)
}

// Prepare compiles sqlText into a CRUD ready for Bind/Exec/ReadOne/ReadMany.
func (db *DB) Prepare(sqlText string) (*CRUD, error) {
	stmt, err := db.h.Prepare(sqlText)
	if err != nil {
		return nil, err
	}
	return NewCRUD(stmt), nil
}
