package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

var placeholderRE = regexp.MustCompile(`:(_?[A-Za-z][A-Za-z0-9_]*)`)

// parsePlaceholders returns the named placeholders appearing in sqlText, in
// first-appearance order, deduplicated (SQLite treats repeated occurrences
// of the same named placeholder as one parameter).
func parsePlaceholders(sqlText string) []string {
	matches := placeholderRE.FindAllStringSubmatch(sqlText, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// firstStatement returns the text up to and including the first top-level
// semicolon, or the whole trimmed text if none is present. It does not
// account for semicolons inside string literals; Quill's own builders
// never emit those, and this shim is not a general-purpose SQL parser.
func firstStatement(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	if idx := strings.Index(trimmed, ";"); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx+1])
	}
	return trimmed
}

// splitStatements splits a script into individual statements on top-level
// semicolons, dropping empty fragments.
func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p+";")
	}
	return out
}

// classifyExecErr collapses a driver-level error into the taxonomy of
// spec.md §7. modernc.org/sqlite surfaces SQLite's native error text
// verbatim, so constraint violations are recognized by the same substrings
// the sqlite3 CLI itself reports — no ecosystem library in the example
// corpus exposes typed SQLite error codes for this driver, so this
// classification is intentionally string-based rather than code-based.
func classifyExecErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unique constraint") ||
		strings.Contains(lower, "not null constraint") ||
		strings.Contains(lower, "check constraint") ||
		strings.Contains(lower, "foreign key constraint"):
		return fmt.Errorf("%w: %s", qerr.ErrUnmetConstraint, msg)
	case strings.Contains(lower, "misuse"):
		return fmt.Errorf("%w: %s", qerr.ErrInterfaceMisuse, msg)
	default:
		return fmt.Errorf("%w: %s", qerr.ErrUnableToExecuteQuery, msg)
	}
}

// IsConstraintError reports whether err is (or wraps) qerr.ErrUnmetConstraint.
func IsConstraintError(err error) bool {
	return errors.Is(err, qerr.ErrUnmetConstraint)
}
