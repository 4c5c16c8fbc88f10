package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Gate selects whether an Update/Delete is required to carry a WHERE
// clause (Exact) or forbidden from carrying one (All) — a build-time
// safety check against accidental full-table mutation (spec.md §4.4).
type Gate int

const (
	// GateExact requires When to have been invoked.
	GateExact Gate = iota
	// GateAll requires When NOT to have been invoked.
	GateAll
)

// UpdateBuilder assembles `UPDATE <container> SET field1 = :field1, …`
// with an optional WHERE clause and a mandatory Exact/All gate.
type UpdateBuilder struct {
	model     *Shape
	container string

	whenCalled bool
	body       strings.Builder
}

// Update starts a builder for `UPDATE <container> SET …` over every field
// on model.
func Update(model *Shape, container string) *UpdateBuilder {
	return &UpdateBuilder{model: model, container: container}
}

// When appends `WHERE <joined tokens>`. May be called at most once.
func (b *UpdateBuilder) When(tokens ...Token) error {
	if b.whenCalled {
		return fmt.Errorf("%w: when already called", qerr.ErrInvalidFunctionChain)
	}
	b.body.WriteString("\nWHERE " + joinTokens(tokens...))
	b.whenCalled = true
	return nil
}

// Statement emits the final SQL text with a trailing semicolon, enforcing
// gate against whether When was invoked (property 4, spec.md §8).
func (b *UpdateBuilder) Statement(gate Gate) (string, error) {
	if gate == GateExact && !b.whenCalled {
		return "", fmt.Errorf("%w: Exact update requires a when clause", qerr.ErrMismatchedConstraint)
	}
	if gate == GateAll && b.whenCalled {
		return "", fmt.Errorf("%w: All update forbids a when clause", qerr.ErrMismatchedConstraint)
	}

	labels := b.model.Labels()
	sets := make([]string, len(labels))
	for i, l := range labels {
		sets[i] = fmt.Sprintf("%s = :%s", l, l)
	}

	text := "UPDATE " + b.container + " SET " + strings.Join(sets, ", ") + b.body.String()
	if strings.HasSuffix(text, ";") {
		return "", fmt.Errorf("%w: statement text already ends with ';'", qerr.ErrInvalidFunctionChain)
	}
	return text + ";", nil
}
