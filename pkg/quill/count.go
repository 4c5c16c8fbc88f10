package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// CountBuilder assembles a `SELECT COUNT(*) FROM <container>` statement
// with an optional WHERE clause (C4, spec.md §4.4).
type CountBuilder struct {
	filter    *Shape
	container string

	whenCalled bool
	body       strings.Builder
}

// Count starts a builder for `SELECT COUNT(*) FROM <container>`.
func Count(filter *Shape, container string) *CountBuilder {
	return &CountBuilder{filter: filter, container: container}
}

// When appends `WHERE <joined tokens>`. May be called at most once.
func (b *CountBuilder) When(tokens ...Token) error {
	if b.whenCalled {
		return fmt.Errorf("%w: when already called", qerr.ErrInvalidFunctionChain)
	}
	b.body.WriteString("\nWHERE " + joinTokens(tokens...))
	b.whenCalled = true
	return nil
}

// Statement emits the final SQL text with a trailing semicolon.
func (b *CountBuilder) Statement() (string, error) {
	text := "SELECT COUNT(*) FROM " + b.container + b.body.String()
	if strings.HasSuffix(text, ";") {
		return "", fmt.Errorf("%w: statement text already ends with ';'", qerr.ErrInvalidFunctionChain)
	}
	return text + ";", nil
}
