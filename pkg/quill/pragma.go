package quill

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// VacuumMode is SQLite's auto_vacuum discipline.
type VacuumMode int

const (
	VacuumNone VacuumMode = iota
	VacuumFull
	VacuumIncremental
)

func (m VacuumMode) String() string {
	switch m {
	case VacuumFull:
		return "FULL"
	case VacuumIncremental:
		return "INCREMENTAL"
	default:
		return "NONE"
	}
}

func vacuumModeFromOrdinal(n int64) VacuumMode {
	switch n {
	case 1:
		return VacuumFull
	case 2:
		return VacuumIncremental
	default:
		return VacuumNone
	}
}

func scalar(ctx context.Context, h *engine.Handle, sqlText string) (string, error) {
	buf, err := h.Exec(ctx, sqlText)
	if err != nil {
		return "", err
	}
	if buf.Len() == 0 || len(buf.Rows[0]) == 0 {
		return "", nil
	}
	return buf.Rows[0][0].Text, nil
}

// CacheSize returns the page count SQLite's page cache is currently
// configured to hold, per `PRAGMA cache_size`.
func CacheSize(ctx context.Context, h *engine.Handle) (int64, error) {
	text, err := scalar(ctx, h, "PRAGMA cache_size;")
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(text, 10, 64)
}

// SetCacheSize sets the page cache size (spec.md §4's pragma/administrative
// utilities). A human-readable summary of the change is not returned, but
// callers may format pages themselves with humanize for logging.
func SetCacheSize(ctx context.Context, h *engine.Handle, pages int64) error {
	_, err := h.Exec(ctx, fmt.Sprintf("PRAGMA cache_size = %d;", pages))
	return err
}

// IntegrityCheck runs `PRAGMA integrity_check` and fails with
// qerr.ErrFailedIntegrityChecks unless SQLite reports exactly "ok".
func IntegrityCheck(ctx context.Context, h *engine.Handle) error {
	text, err := scalar(ctx, h, "PRAGMA integrity_check;")
	if err != nil {
		return err
	}
	if text != "ok" {
		return fmt.Errorf("%w: %s", qerr.ErrFailedIntegrityChecks, text)
	}
	return nil
}

// VacuumModeOf returns the database's current auto_vacuum setting.
func VacuumModeOf(ctx context.Context, h *engine.Handle) (VacuumMode, error) {
	text, err := scalar(ctx, h, "PRAGMA auto_vacuum;")
	if err != nil {
		return VacuumNone, err
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return VacuumNone, err
	}
	return vacuumModeFromOrdinal(n), nil
}

// SetVacuumMode sets auto_vacuum and then runs VACUUM, since SQLite applies
// a changed auto_vacuum to a database that already has content only on the
// next VACUUM.
func SetVacuumMode(ctx context.Context, h *engine.Handle, mode VacuumMode) error {
	var n int
	switch mode {
	case VacuumFull:
		n = 1
	case VacuumIncremental:
		n = 2
	default:
		n = 0
	}
	if _, err := h.Exec(ctx, fmt.Sprintf("PRAGMA auto_vacuum = %d;", n)); err != nil {
		return err
	}
	_, err := h.Exec(ctx, "VACUUM;")
	return err
}

// CreateIndex emits `CREATE INDEX IF NOT EXISTS <name> ON <container>
// (<labels>);`.
func CreateIndex(ctx context.Context, h *engine.Handle, name, container string, labels ...string) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: CreateIndex requires at least one label", qerr.ErrInvalidNamingConvention)
	}
	cols := labels[0]
	for _, l := range labels[1:] {
		cols += ", " + l
	}
	_, err := h.Exec(ctx, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s);", name, container, cols))
	return err
}

// DropIndex emits `DROP INDEX IF EXISTS <name>;`.
func DropIndex(ctx context.Context, h *engine.Handle, name string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s;", name))
	return err
}

// RecordCount returns the row count of container and a human-readable
// rendering of that count (e.g. "1,204") using go-humanize's comma
// formatting, useful for CLI and log output.
func RecordCount(ctx context.Context, h *engine.Handle, container string) (count int64, pretty string, err error) {
	text, err := scalar(ctx, h, fmt.Sprintf("SELECT COUNT(*) FROM %s;", container))
	if err != nil {
		return 0, "", err
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, "", err
	}
	return n, humanize.Comma(n), nil
}

// RenameTable emits `ALTER TABLE <old> RENAME TO <new>;`.
func RenameTable(ctx context.Context, h *engine.Handle, oldName, newName string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", oldName, newName))
	return err
}

// DropTable emits `DROP TABLE IF EXISTS <container>;`.
func DropTable(ctx context.Context, h *engine.Handle, container string) error {
	_, err := h.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", container))
	return err
}

// SchemaVersion returns the database's `user_version`, the opaque integer
// spec.md §6 designates for application-owned schema versioning.
func SchemaVersion(ctx context.Context, h *engine.Handle) (int64, error) {
	text, err := scalar(ctx, h, "PRAGMA user_version;")
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(text, 10, 64)
}

// SetSchemaVersion sets `user_version`.
func SetSchemaVersion(ctx context.Context, h *engine.Handle, version int64) error {
	_, err := h.Exec(ctx, fmt.Sprintf("PRAGMA user_version = %d;", version))
	return err
}
