package quill

import (
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// modelDescriptors is the set of C2 descriptors a model field may use:
// raw scalars or any CastInto annotation (spec.md §3).
var modelDescriptors = map[field.Descriptor]bool{
	field.DInt:               true,
	field.DBool:               true,
	field.DFloat:              true,
	field.DCastIntoIntEnum:    true,
	field.DCastIntoTextEnum:   true,
	field.DCastIntoTextJSON:   true,
	field.DCastIntoTextBytes:  true,
	field.DCastIntoBlobBytes:  true,
}

// Model validates and builds a model shape: it must carry a non-optional
// uuid field using CastInto<Blob,bytes>, every field's descriptor must be
// one a model may use, and every label must be unique.
func Model(fields ...field.Field) (*Shape, error) {
	for _, f := range fields {
		if !modelDescriptors[f.Descriptor] {
			return nil, fmt.Errorf("%w: model field %q uses a view/filter-only descriptor", qerr.ErrInvalidNamingConvention, f.Label)
		}
	}
	s, err := newShape(KindModel, fields)
	if err != nil {
		return nil, err
	}
	uf, ok := s.byLabel[uuidLabel]
	if !ok {
		return nil, fmt.Errorf("%w: model shape has no uuid field", qerr.ErrMissingUUID)
	}
	if !uf.IsUUIDCompatible() {
		return nil, fmt.Errorf("%w: model uuid field must be non-optional CastInto<Blob,bytes>", qerr.ErrUUIDNotBlob)
	}
	return s, nil
}

// MustModel is Model, panicking on error. Declared at package scope, a
// malformed model shape aborts program startup before main runs — the
// closest Go analogue to "bad shapes fail the build" (spec.md Design
// Notes; SPEC_FULL.md Open Question 1).
func MustModel(fields ...field.Field) *Shape {
	s, err := Model(fields...)
	if err != nil {
		panic(err)
	}
	return s
}
