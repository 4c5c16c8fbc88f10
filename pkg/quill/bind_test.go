package quill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/internal/engine"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
)

func TestBindMatchingFieldsSucceeds(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), "CREATE TABLE t (uuid BLOB PRIMARY KEY, count INTEGER NOT NULL);")
	require.NoError(t, err)

	stmt, err := h.Prepare("INSERT INTO t (uuid, count) VALUES (:uuid, :count);")
	require.NoError(t, err)
	defer stmt.Finalize()

	m := demoModel(t)
	w := &widget{ID: []byte("0123456789abcdef"), Count: 1}
	err = Bind(stmt, m, w)
	require.NoError(t, err)
}

func TestBindMismatchedFieldsError(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), "CREATE TABLE t (uuid BLOB PRIMARY KEY);")
	require.NoError(t, err)

	stmt, err := h.Prepare("INSERT INTO t (uuid) VALUES (:uuid);")
	require.NoError(t, err)
	defer stmt.Finalize()

	m := demoModel(t)
	w := &widget{ID: []byte("0123456789abcdef"), Count: 1}
	err = Bind(stmt, m, w)
	require.Error(t, err)
}

func TestBindOptionalAbsentBindsNull(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	type rec struct {
		ID []byte
	}
	m, err := Model(
		field.CastIntoBlobBytes("uuid", func(r *rec) []byte { return r.ID }, func(r *rec, b []byte) { r.ID = b }),
		field.OptCastIntoIntEnum("nick",
			func(r *rec) *nickCode { return nil },
			func(r *rec, v *nickCode) {},
			func(c nickCode) int64 { return int64(c) },
			func(n int64) (nickCode, error) { return nickCode(n), nil },
		),
	)
	require.NoError(t, err)

	ddl, err := CreateTable(m, "t")
	require.NoError(t, err)
	_, err = h.Exec(context.Background(), ddl)
	require.NoError(t, err)

	insertSQL, err := CreateStatement(m, "t", InsertPlain)
	require.NoError(t, err)
	stmt, err := h.Prepare(insertSQL)
	require.NoError(t, err)
	defer stmt.Finalize()

	r := &rec{ID: []byte("0123456789abcdef")}
	require.NoError(t, Bind(stmt, m, r))
	hasRow, err := stmt.Step(context.Background())
	require.NoError(t, err)
	require.False(t, hasRow)
}

func TestBindAgainstUpdateWithWhenClause(t *testing.T) {
	h, err := engine.Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), "CREATE TABLE t (uuid BLOB PRIMARY KEY, count INTEGER NOT NULL);")
	require.NoError(t, err)

	m := demoModel(t)
	filter, err := Filter(widgetCountField())
	require.NoError(t, err)

	cond, err := Cond(filter, "count", OpEQ, 0)
	require.NoError(t, err)
	ub := Update(m, "t")
	require.NoError(t, ub.When(cond))
	updateSQL, err := ub.Statement(GateExact)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET uuid = :uuid, count = :count\nWHERE count = :_count;", updateSQL)

	stmt, err := h.Prepare(updateSQL)
	require.NoError(t, err)
	defer stmt.Finalize()

	w := &widget{ID: []byte("0123456789abcdef"), Count: 9}
	require.NoError(t, Bind(stmt, m, w))
	require.NoError(t, BindFilterScalar(stmt, filter, "count", int64(0)))

	_, err = stmt.Step(context.Background())
	require.NoError(t, err)
}

type nickCode int
