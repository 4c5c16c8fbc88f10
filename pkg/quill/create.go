package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// InsertAction selects the literal conflict-resolution clause an INSERT
// statement uses.
type InsertAction int

const (
	// InsertPlain emits a bare INSERT with no conflict-resolution clause.
	InsertPlain InsertAction = iota
	// InsertOrReplace emits INSERT OR REPLACE.
	InsertOrReplace
	// InsertOrIgnore emits INSERT OR IGNORE.
	InsertOrIgnore
)

// CreateStatement emits `INSERT [OR REPLACE | OR IGNORE] INTO <container>
// (field1, …) VALUES (:field1, …)` for every field on model (C4, spec.md
// §4.4).
func CreateStatement(model *Shape, container string, action InsertAction) (string, error) {
	if model.Kind != KindModel {
		return "", fmt.Errorf("%w: CreateStatement requires a model shape", qerr.ErrInvalidNamingConvention)
	}
	labels := model.Labels()
	if len(labels) == 0 {
		return "", fmt.Errorf("%w: model shape has no fields", qerr.ErrInvalidNamingConvention)
	}

	var actionText string
	switch action {
	case InsertPlain:
		actionText = "INSERT"
	case InsertOrReplace:
		actionText = "INSERT OR REPLACE"
	case InsertOrIgnore:
		actionText = "INSERT OR IGNORE"
	default:
		return "", fmt.Errorf("%w: unknown insert action", qerr.ErrInvalidFunctionChain)
	}

	placeholders := make([]string, len(labels))
	for i, l := range labels {
		placeholders[i] = ":" + l
	}

	return fmt.Sprintf("%s INTO %s (%s) VALUES (%s);",
		actionText, container, strings.Join(labels, ", "), strings.Join(placeholders, ", ")), nil
}
