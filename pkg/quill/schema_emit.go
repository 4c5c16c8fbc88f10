package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// CreateTable emits a literal `CREATE TABLE IF NOT EXISTS <container> (...)
// STRICT, WITHOUT ROWID;` statement for a model shape (C3, spec.md §4.3).
// model must already have passed Model/MustModel validation, so the only
// remaining failure modes here are a non-model shape and an empty field
// list.
func CreateTable(model *Shape, container string) (string, error) {
	if model.Kind != KindModel {
		return "", fmt.Errorf("%w: CreateTable requires a model shape", qerr.ErrInvalidNamingConvention)
	}
	if len(model.Fields) == 0 {
		return "", fmt.Errorf("%w: model shape has no fields", qerr.ErrInvalidNamingConvention)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", container)
	for i, f := range model.Fields {
		b.WriteByte('\t')
		b.WriteString(columnDef(f))
		if i < len(model.Fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(") STRICT, WITHOUT ROWID;")
	return b.String(), nil
}

func columnDef(f field.Field) string {
	if f.Label == uuidLabel {
		return fmt.Sprintf("%s %s PRIMARY KEY", f.Label, f.Tag)
	}
	if f.Optional {
		return fmt.Sprintf("%s %s", f.Label, f.Tag)
	}
	return fmt.Sprintf("%s %s NOT NULL", f.Label, f.Tag)
}
