// Package quill turns user-declared record shapes into prepared SQL
// statements and bidirectional value converters over an embedded SQLite
// database. Application code declares Model, View, and Filter shapes once
// at package scope (typically via the panicking MustModel/MustView/
// MustFilter constructors), then drives CreateTable, Find, Count,
// CreateStatement, Update, and Delete against them; no routine code writes SQL strings or
// hand-rolls bind/extract calls.
package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Kind distinguishes the three shape roles spec.md §3 defines.
type Kind int

const (
	// KindModel describes how a row is written.
	KindModel Kind = iota
	// KindView describes how a row is read.
	KindView
	// KindFilter restricts which field labels may appear in WHERE/ORDER BY.
	KindFilter
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindView:
		return "view"
	case KindFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// uuidLabel is the one field label every model shape must carry (spec.md
// §3).
const uuidLabel = "uuid"

// Shape is a named ordered sequence of labelled fields: the realization of
// spec.md §3's "user-declared shapes". A Shape is built once, validated
// eagerly, and then shared read-only across every builder and CRUD
// instance that targets it.
type Shape struct {
	Kind   Kind
	Fields []field.Field

	byLabel map[string]field.Field
	order   []string
}

// Field looks up a field by label. The second return value is false if no
// field in the shape carries that label.
func (s *Shape) Field(label string) (field.Field, bool) {
	f, ok := s.byLabel[label]
	return f, ok
}

// Labels returns the shape's field labels in declaration order.
func (s *Shape) Labels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// HasLabel reports whether label names a field on the shape.
func (s *Shape) HasLabel(label string) bool {
	_, ok := s.byLabel[label]
	return ok
}

// newShape validates the common invariants of spec.md §3 that apply
// regardless of shape kind: unique labels, and — if a uuid-labelled field
// is present at all — that it is not optional.
func newShape(kind Kind, fields []field.Field) (*Shape, error) {
	s := &Shape{
		Kind:    kind,
		Fields:  fields,
		byLabel: make(map[string]field.Field, len(fields)),
		order:   make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.byLabel[f.Label]; dup {
			return nil, fmt.Errorf("%w: %s shape has duplicate label %q", qerr.ErrDuplicateLabel, kind, f.Label)
		}
		s.byLabel[f.Label] = f
		s.order = append(s.order, f.Label)
	}
	if uf, ok := s.byLabel[uuidLabel]; ok && uf.Optional {
		return nil, fmt.Errorf("%w: %s shape's uuid field must not be optional", qerr.ErrUUIDOptional, kind)
	}
	return s, nil
}
