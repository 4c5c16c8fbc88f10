package quill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
)

func TestBindExtractRoundTrip(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	m := demoModel(t)
	ddl, err := CreateTable(m, "widgets")
	require.NoError(t, err)
	_, err = h.Exec(context.Background(), ddl)
	require.NoError(t, err)

	insertSQL, err := CreateStatement(m, "widgets", InsertPlain)
	require.NoError(t, err)
	ins, err := h.Prepare(insertSQL)
	require.NoError(t, err)
	defer ins.Finalize()

	src := &widget{ID: []byte("0123456789abcdef"), Count: 42}
	require.NoError(t, Bind(ins, m, src))
	_, err = ins.Step(context.Background())
	require.NoError(t, err)

	view, err := View(widgetCountField())
	require.NoError(t, err)

	sel, err := h.Prepare("SELECT count FROM widgets;")
	require.NoError(t, err)
	defer sel.Finalize()
	hasRow, err := sel.Step(context.Background())
	require.NoError(t, err)
	require.True(t, hasRow)

	out := &widget{}
	require.NoError(t, Extract(sel, view, out))
	assert.Equal(t, int64(42), out.Count)
}

func TestExtractRejectsColumnCountMismatch(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), "CREATE TABLE t (a INTEGER NOT NULL, b INTEGER NOT NULL);")
	require.NoError(t, err)
	_, err = h.Exec(context.Background(), "INSERT INTO t (a, b) VALUES (1, 2);")
	require.NoError(t, err)

	sel, err := h.Prepare("SELECT a, b FROM t;")
	require.NoError(t, err)
	defer sel.Finalize()
	hasRow, err := sel.Step(context.Background())
	require.NoError(t, err)
	require.True(t, hasRow)

	onlyA, err := View(field.Int("a", func(w *widget) int64 { return w.Count }, func(w *widget, v int64) { w.Count = v }))
	require.NoError(t, err)

	out := &widget{}
	err = Extract(sel, onlyA, out)
	require.Error(t, err)
}

func TestExtractBoolAndNullOptional(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), "CREATE TABLE t (flag INTEGER NOT NULL, nick TEXT);")
	require.NoError(t, err)
	_, err = h.Exec(context.Background(), "INSERT INTO t (flag, nick) VALUES (1, NULL);")
	require.NoError(t, err)

	type rec struct {
		Flag bool
		Nick []byte
	}
	view, err := View(
		field.Bool("flag", func(r *rec) bool { return r.Flag }, func(r *rec, v bool) { r.Flag = v }),
		field.Slice("nick", func(r *rec) []byte { return r.Nick }, func(r *rec, v []byte) { r.Nick = v }),
	)
	require.NoError(t, err)

	sel, err := h.Prepare("SELECT flag, nick FROM t;")
	require.NoError(t, err)
	defer sel.Finalize()
	hasRow, err := sel.Step(context.Background())
	require.NoError(t, err)
	require.True(t, hasRow)

	out := &rec{}
	require.NoError(t, Extract(sel, view, out))
	assert.True(t, out.Flag)
	assert.Nil(t, out.Nick)
}
