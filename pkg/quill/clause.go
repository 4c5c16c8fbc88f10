package quill

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

// Operator is the closed set of comparison/pattern/set operators a filter
// condition may use (C4, spec.md §4.4).
type Operator int

const (
	OpEQ Operator = iota
	OpNE
	OpGT
	OpLT
	OpLE
	OpGE
	OpContains
	OpNotContains
	OpBetween
	OpIn
	OpNotIn
	OpNull
	OpNotNull
)

// Chain is a logical connective keyword.
type Chain int

const (
	ChainAND Chain = iota
	ChainOR
	ChainNOT
)

func (c Chain) String() string {
	switch c {
	case ChainAND:
		return "AND"
	case ChainOR:
		return "OR"
	case ChainNOT:
		return "NOT"
	default:
		return "?"
	}
}

// Token is one rendered clause fragment: a condition, a chain keyword, or a
// parenthesised group of other tokens.
type Token string

// Cond renders a single filter condition against label on filter, matching
// spec.md §4.4's `filter(field, op, _)` family. n is the arity for OpIn/
// OpNotIn (n≥1) and is ignored for every other operator.
func Cond(filter *Shape, label string, op Operator, n int) (Token, error) {
	if filter.Kind != KindFilter {
		return "", fmt.Errorf("%w: Cond requires a filter shape", qerr.ErrInvalidNamingConvention)
	}
	if !filter.HasLabel(label) {
		return "", fmt.Errorf("%w: filter has no field %q", qerr.ErrUnknownLabel, label)
	}
	switch op {
	case OpEQ:
		return Token(fmt.Sprintf("%s = :_%s", label, label)), nil
	case OpNE:
		return Token(fmt.Sprintf("%s != :_%s", label, label)), nil
	case OpGT:
		return Token(fmt.Sprintf("%s > :_%s", label, label)), nil
	case OpLT:
		return Token(fmt.Sprintf("%s < :_%s", label, label)), nil
	case OpLE:
		return Token(fmt.Sprintf("%s <= :_%s", label, label)), nil
	case OpGE:
		return Token(fmt.Sprintf("%s >= :_%s", label, label)), nil
	case OpContains:
		return Token(fmt.Sprintf("%s LIKE :_%s", label, label)), nil
	case OpNotContains:
		return Token(fmt.Sprintf("%s NOT LIKE :_%s", label, label)), nil
	case OpBetween:
		return Token(fmt.Sprintf("%s BETWEEN :_%s1 AND :_%s2", label, label, label)), nil
	case OpIn:
		return renderInList(label, n, "IN")
	case OpNotIn:
		return renderInList(label, n, "NOT IN")
	case OpNull:
		return Token(fmt.Sprintf("%s IS NULL", label)), nil
	case OpNotNull:
		return Token(fmt.Sprintf("%s IS NOT NULL", label)), nil
	default:
		return "", fmt.Errorf("%w: unknown operator", qerr.ErrInvalidFunctionChain)
	}
}

func renderInList(label string, n int, keyword string) (Token, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %s requires n>=1 placeholders", qerr.ErrInvalidFunctionChain, keyword)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf(":_%s%d", label, i+1)
	}
	return Token(fmt.Sprintf("%s %s (%s)", label, keyword, strings.Join(names, ", "))), nil
}

// ChainToken renders a logical connective keyword as a Token.
func ChainToken(c Chain) Token {
	return Token(c.String())
}

// Group parenthesises a sequence of tokens, single-space separated.
func Group(tokens ...Token) Token {
	strs := make([]string, len(tokens))
	for i, t := range tokens {
		strs[i] = string(t)
	}
	return Token("(" + strings.Join(strs, " ") + ")")
}

// joinTokens renders a sequence of tokens single-space separated, without
// wrapping parentheses — used by when() to assemble the WHERE clause body.
func joinTokens(tokens ...Token) string {
	strs := make([]string, len(tokens))
	for i, t := range tokens {
		strs[i] = string(t)
	}
	return strings.Join(strs, " ")
}
