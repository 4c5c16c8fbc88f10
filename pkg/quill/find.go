package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Ordering is one ORDER BY term.
type Ordering struct {
	Label string
	Desc  bool
}

// Asc builds an ascending ordering term.
func Asc(label string) Ordering { return Ordering{Label: label} }

// Descending builds a descending ordering term.
func Descending(label string) Ordering { return Ordering{Label: label, Desc: true} }

// FindBuilder assembles a SELECT statement as a small state machine with a
// monotonically increasing ordinal seq ∈ {1..5}: dist (seq==1 only),
// when (1→2), sort (2→3), limit (3→4), skip (4→5) (C4, spec.md §4.4).
// A FindBuilder is created during shape analysis, consumed by Statement,
// and discarded — never shared across requests.
type FindBuilder struct {
	view      *Shape
	filter    *Shape
	container string

	seq      int
	distinct bool
	body     strings.Builder
}

// Find starts a builder that will emit `SELECT <view labels> FROM
// <container>` against view for column selection and filter for WHERE/
// ORDER BY validation.
func Find(view, filter *Shape, container string) *FindBuilder {
	return &FindBuilder{view: view, filter: filter, container: container, seq: 1}
}

// Dist replaces SELECT with SELECT DISTINCT. It only succeeds if invoked
// before any other step (property 3, spec.md §8).
func (b *FindBuilder) Dist() error {
	if b.seq != 1 || b.distinct {
		return fmt.Errorf("%w: dist must be the first step", qerr.ErrInvalidFunctionChain)
	}
	b.distinct = true
	return nil
}

// When appends `WHERE <joined tokens>`. Valid only at seq==1; advances to
// seq==2.
func (b *FindBuilder) When(tokens ...Token) error {
	if b.seq != 1 {
		return fmt.Errorf("%w: when out of order", qerr.ErrInvalidFunctionChain)
	}
	b.body.WriteString("\nWHERE " + joinTokens(tokens...))
	b.seq = 2
	return nil
}

// Sort appends `ORDER BY <field> {ASC|DESC}, …`, preserving the caller's
// order. Valid only at seq==2; advances to seq==3. Every ordering's field
// must exist on the view or filter shape.
func (b *FindBuilder) Sort(orderings ...Ordering) error {
	if b.seq != 2 {
		return fmt.Errorf("%w: sort out of order", qerr.ErrInvalidFunctionChain)
	}
	if len(orderings) == 0 {
		return fmt.Errorf("%w: sort requires at least one ordering", qerr.ErrInvalidFunctionChain)
	}
	parts := make([]string, len(orderings))
	for i, o := range orderings {
		if !b.view.HasLabel(o.Label) && !b.filter.HasLabel(o.Label) {
			return fmt.Errorf("%w: %q is not on the view or filter shape", qerr.ErrUnknownLabel, o.Label)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", o.Label, dir)
	}
	b.body.WriteString("\nORDER BY " + strings.Join(parts, ", "))
	b.seq = 3
	return nil
}

// Limit appends `LIMIT n`. Valid only at seq==3; advances to seq==4.
func (b *FindBuilder) Limit(n int) error {
	if b.seq != 3 {
		return fmt.Errorf("%w: limit out of order", qerr.ErrInvalidFunctionChain)
	}
	fmt.Fprintf(&b.body, "\nLIMIT %d", n)
	b.seq = 4
	return nil
}

// Skip appends `OFFSET n`. Valid only at seq==4; advances to seq==5.
func (b *FindBuilder) Skip(n int) error {
	if b.seq != 4 {
		return fmt.Errorf("%w: skip out of order", qerr.ErrInvalidFunctionChain)
	}
	fmt.Fprintf(&b.body, "\nOFFSET %d", n)
	b.seq = 5
	return nil
}

// Statement emits the final SQL text with a trailing semicolon. It may be
// called at any seq value — every step after dist is optional.
func (b *FindBuilder) Statement() (string, error) {
	head := "SELECT "
	if b.distinct {
		head += "DISTINCT "
	}
	text := head + strings.Join(b.view.Labels(), ", ") + " FROM " + b.container + b.body.String()
	if strings.HasSuffix(text, ";") {
		return "", fmt.Errorf("%w: statement text already ends with ';'", qerr.ErrInvalidFunctionChain)
	}
	return text + ";", nil
}
