package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// filterDescriptors is the set of C2 descriptors a filter field may use:
// raw scalars only (spec.md §3).
var filterDescriptors = map[field.Descriptor]bool{
	field.DInt:   true,
	field.DBool:  true,
	field.DFloat: true,
}

// Filter validates and builds a filter shape.
func Filter(fields ...field.Field) (*Shape, error) {
	for _, f := range fields {
		if !filterDescriptors[f.Descriptor] {
			return nil, fmt.Errorf("%w: filter field %q must be a raw scalar", qerr.ErrInvalidNamingConvention, f.Label)
		}
	}
	return newShape(KindFilter, fields)
}

// MustFilter is Filter, panicking on error.
func MustFilter(fields ...field.Field) *Shape {
	s, err := Filter(fields...)
	if err != nil {
		panic(err)
	}
	return s
}
