package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/pkg/quill/field"
)

func demoView(t *testing.T) *Shape {
	t.Helper()
	v, err := View(
		field.Int("handle", func(w *widget) int64 { return w.Count }, func(w *widget, v int64) { w.Count = v }),
	)
	require.NoError(t, err)
	return v
}

func TestFindBasicStatement(t *testing.T) {
	view := demoView(t)
	filter := demoFilter(t)

	fb := Find(view, filter, "widgets")
	text, err := fb.Statement()
	require.NoError(t, err)
	assert.Equal(t, "SELECT handle FROM widgets;", text)
}

func TestFindStepOrderEnforced(t *testing.T) {
	view := demoView(t)
	filter := demoFilter(t)

	fb := Find(view, filter, "widgets")
	cond, err := Cond(filter, "handle", OpGT, 0)
	require.NoError(t, err)
	require.NoError(t, fb.When(cond))
	require.NoError(t, fb.Sort(Asc("handle")))
	err = fb.Dist()
	require.Error(t, err)
}

func TestFindFullChain(t *testing.T) {
	view := demoView(t)
	filter := demoFilter(t)

	fb := Find(view, filter, "widgets")
	require.NoError(t, fb.Dist())
	cond, err := Cond(filter, "handle", OpGT, 0)
	require.NoError(t, err)
	require.NoError(t, fb.When(cond))
	require.NoError(t, fb.Sort(Descending("handle")))
	require.NoError(t, fb.Limit(10))
	require.NoError(t, fb.Skip(5))

	text, err := fb.Statement()
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT handle FROM widgets\nWHERE handle > :_handle\nORDER BY handle DESC\nLIMIT 10\nOFFSET 5;", text)
}

func TestFindSortRejectsUnknownLabel(t *testing.T) {
	view := demoView(t)
	filter := demoFilter(t)
	fb := Find(view, filter, "widgets")
	cond, err := Cond(filter, "handle", OpGT, 0)
	require.NoError(t, err)
	require.NoError(t, fb.When(cond))
	err = fb.Sort(Asc("nope"))
	require.Error(t, err)
}
