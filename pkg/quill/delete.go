package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// DeleteBuilder assembles `DELETE FROM <container>` with an optional WHERE
// clause and a mandatory Exact/All gate, mirroring UpdateBuilder.
type DeleteBuilder struct {
	container string

	whenCalled bool
	body       strings.Builder
}

// Delete starts a builder for `DELETE FROM <container>`.
func Delete(container string) *DeleteBuilder {
	return &DeleteBuilder{container: container}
}

// When appends `WHERE <joined tokens>`. May be called at most once.
func (b *DeleteBuilder) When(tokens ...Token) error {
	if b.whenCalled {
		return fmt.Errorf("%w: when already called", qerr.ErrInvalidFunctionChain)
	}
	b.body.WriteString("\nWHERE " + joinTokens(tokens...))
	b.whenCalled = true
	return nil
}

// Statement emits the final SQL text with a trailing semicolon, enforcing
// gate against whether When was invoked — the same safety check Update
// uses to keep a forgotten when() from wiping a whole table.
func (b *DeleteBuilder) Statement(gate Gate) (string, error) {
	if gate == GateExact && !b.whenCalled {
		return "", fmt.Errorf("%w: Exact delete requires a when clause", qerr.ErrMismatchedConstraint)
	}
	if gate == GateAll && b.whenCalled {
		return "", fmt.Errorf("%w: All delete forbids a when clause", qerr.ErrMismatchedConstraint)
	}

	text := "DELETE FROM " + b.container + b.body.String()
	if strings.HasSuffix(text, ";") {
		return "", fmt.Errorf("%w: statement text already ends with ';'", qerr.ErrInvalidFunctionChain)
	}
	return text + ";", nil
}
