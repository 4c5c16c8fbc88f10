package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
)

func demoFilter(t *testing.T) *Shape {
	t.Helper()
	f, err := Filter(
		field.Int("handle", func(w *widget) int64 { return w.Count }, func(w *widget, v int64) { w.Count = v }),
		field.Bool("active", func(w *widget) bool { return w.Active }, func(w *widget, v bool) { w.Active = v }),
	)
	require.NoError(t, err)
	return f
}

func TestCondRenders(t *testing.T) {
	filter := demoFilter(t)

	tok, err := Cond(filter, "handle", OpEQ, 0)
	require.NoError(t, err)
	assert.Equal(t, Token("handle = :_handle"), tok)

	tok, err = Cond(filter, "handle", OpBetween, 0)
	require.NoError(t, err)
	assert.Equal(t, Token("handle BETWEEN :_handle1 AND :_handle2"), tok)

	tok, err = Cond(filter, "handle", OpIn, 3)
	require.NoError(t, err)
	assert.Equal(t, Token("handle IN (:_handle1, :_handle2, :_handle3)"), tok)
}

func TestCondRejectsUnknownLabel(t *testing.T) {
	filter := demoFilter(t)
	_, err := Cond(filter, "nope", OpEQ, 0)
	require.Error(t, err)
}

func TestCondRejectsNonFilterShape(t *testing.T) {
	m, err := Model(widgetUUIDField())
	require.NoError(t, err)
	_, err = Cond(m, "uuid", OpEQ, 0)
	require.Error(t, err)
}

func TestGroupAndChain(t *testing.T) {
	filter := demoFilter(t)
	a, _ := Cond(filter, "handle", OpEQ, 0)
	b, _ := Cond(filter, "active", OpEQ, 0)
	grouped := Group(a, ChainToken(ChainOR), b)
	assert.Equal(t, Token("(handle = :_handle OR active = :_active)"), grouped)
}
