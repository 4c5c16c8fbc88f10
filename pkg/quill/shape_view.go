package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// viewDescriptors is the set of C2 descriptors a view field may use: raw
// scalars, Slice, Any<T>, or an optional wrapper of any of those
// (spec.md §3).
var viewDescriptors = map[field.Descriptor]bool{
	field.DInt:     true,
	field.DBool:    true,
	field.DFloat:   true,
	field.DSlice:   true,
	field.DAnyEnum: true,
	field.DAnyJSON: true,
}

// View validates and builds a view shape.
func View(fields ...field.Field) (*Shape, error) {
	for _, f := range fields {
		if !viewDescriptors[f.Descriptor] {
			return nil, fmt.Errorf("%w: view field %q uses a model-only descriptor", qerr.ErrInvalidNamingConvention, f.Label)
		}
	}
	return newShape(KindView, fields)
}

// MustView is View, panicking on error.
func MustView(fields ...field.Field) *Shape {
	s, err := View(fields...)
	if err != nil {
		panic(err)
	}
	return s
}
