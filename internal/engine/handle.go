// Package engine is Quill's C1 Engine Shim: a compact, synchronous facade
// over the underlying SQLite engine. It never appears in application code
// directly — pkg/quill drives it through the builder (C4), bind (C5), and
// extract (C6) components.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// ThreadingOption selects the underlying engine's threading discipline for
// the process lifetime (spec.md §5). It is fixed once, before the first
// Open, and applies for the life of the process.
type ThreadingOption int

const (
	// SingleThreaded means no internal locking; the caller must ensure
	// exclusive use of any one Handle.
	SingleThreaded ThreadingOption = iota
	// MultiThreaded means distinct Handles may be used from distinct
	// goroutines concurrently, but a single Handle must not be shared.
	MultiThreaded
	// Serialized means a Handle (and its statements) may be used from
	// multiple goroutines; the engine serializes access internally.
	Serialized
)

var threading = Serialized

// Init fixes the threading discipline for the process lifetime. Call once
// before any Open.
func Init(opt ThreadingOption) {
	threading = opt
}

// Shutdown marks the engine uninitialized. modernc.org/sqlite has no global
// teardown hook, so this only resets Quill's own threading state; it exists
// so integrators have a single symmetrical process-boundary call, matching
// spec.md §9's "one init before any open, one shutdown after all closes".
func Shutdown() {
	threading = Serialized
}

// Handle owns one SQLite connection, corresponding to spec.md's "one
// SQLite database file per handle (or an in-memory instance if the path is
// empty)".
type Handle struct {
	db   *sql.DB
	path string

	lastErr error
}

// Open opens (creating if necessary) the database at path, or an
// in-memory database if path is empty.
func Open(path string) (*Handle, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", qerr.ErrUnableToOpen, path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", qerr.ErrUnableToOpen, path, err)
	}
	switch threading {
	case SingleThreaded:
		db.SetMaxOpenConns(1)
	case MultiThreaded:
		// Each Handle already owns its own *sql.DB; nothing further to
		// configure, per spec.md's "distinct handles ... concurrently".
	case Serialized:
		// database/sql's own connection-level synchronization already
		// serializes access to a shared Handle.
	}
	return &Handle{db: db, path: path}, nil
}

// Close releases the underlying connection. Per spec.md §7, close errors
// are logged, not raised, because close runs on teardown paths.
func (h *Handle) Close() {
	if err := h.db.Close(); err != nil {
		log.Printf("quill: close handle %q: %v", h.path, err)
	}
}

// ErrMsg returns the text of the most recent engine-level error observed on
// this handle, or the empty string if none has occurred.
func (h *Handle) ErrMsg() string {
	if h.lastErr == nil {
		return ""
	}
	return h.lastErr.Error()
}

func (h *Handle) setErr(err error) error {
	h.lastErr = err
	return err
}

// DB exposes the underlying *sql.DB for administrative pragma helpers
// (pkg/quill/pragma.go) that operate outside the prepared-statement path.
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Exec runs a possibly multi-statement script and returns the last
// statement's rows as an owned RowBuffer, with every column copied out as
// its text form (spec.md §4.1: "all column values are returned as text
// regardless of their storage tag"). Intended for pragmas, DDL, and counts;
// use Prepare for anything that needs typed binds.
func (h *Handle) Exec(ctx context.Context, sqlText string) (*RowBuffer, error) {
	stmts := splitStatements(sqlText)
	if len(stmts) == 0 {
		return &RowBuffer{}, nil
	}
	var buf *RowBuffer
	for i, s := range stmts {
		rows, err := h.db.QueryContext(ctx, s)
		if err != nil {
			return nil, h.setErr(classifyExecErr(err))
		}
		rb, cerr := collectRowBuffer(rows)
		rows.Close()
		if cerr != nil {
			return nil, h.setErr(fmt.Errorf("%w: %v", qerr.ErrUnableToExecuteQuery, cerr))
		}
		if i == len(stmts)-1 {
			buf = rb
		}
	}
	return buf, nil
}

// Prepare compiles one SQL statement, ignoring any tail beyond the first
// semicolon-terminated statement.
func (h *Handle) Prepare(sqlText string) (*Statement, error) {
	first := firstStatement(sqlText)
	names := parsePlaceholders(first)
	stmt, err := h.db.Prepare(first)
	if err != nil {
		return nil, h.setErr(fmt.Errorf("%w: %v", qerr.ErrUnableToExecuteQuery, err))
	}
	bound := make([]any, len(names))
	for i, n := range names {
		bound[i] = sql.Named(n, nil)
	}
	return &Statement{
		handle: h,
		stmt:   stmt,
		sql:    first,
		names:  names,
		bound:  bound,
		state:  statePrepared,
	}, nil
}
