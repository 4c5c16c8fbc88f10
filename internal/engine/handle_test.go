package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	defer h.Close()
	assert.Empty(t, h.ErrMsg())
}

func TestHandle_ExecDDLAndPragma(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), `CREATE TABLE IF NOT EXISTS t (uuid BLOB PRIMARY KEY, name TEXT NOT NULL) STRICT, WITHOUT ROWID;`)
	require.NoError(t, err)

	rb, err := h.Exec(context.Background(), `PRAGMA table_info(t);`)
	require.NoError(t, err)
	require.NotNil(t, rb)
	assert.True(t, rb.Len() >= 2)
	assert.Equal(t, "name", rb.Rows[0][1].Label)
}

func TestPrepareBindStep(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), `CREATE TABLE t (uuid BLOB PRIMARY KEY, name TEXT NOT NULL, age INTEGER NOT NULL) STRICT, WITHOUT ROWID;`)
	require.NoError(t, err)

	ins, err := h.Prepare(`INSERT INTO t (uuid, name, age) VALUES (:uuid, :name, :age);`)
	require.NoError(t, err)
	defer ins.Finalize()

	assert.Equal(t, 3, ins.ParameterCount())
	idx, err := ins.ParameterIndex("name")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	require.NoError(t, ins.BindBlob(1, []byte("0123456789abcdef"), LifetimeStatic))
	require.NoError(t, ins.BindText(2, []byte("Alice"), LifetimeStatic))
	require.NoError(t, ins.BindInt64(3, 30))

	hasRow, err := ins.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, hasRow)

	sel, err := h.Prepare(`SELECT uuid, name, age FROM t;`)
	require.NoError(t, err)
	defer sel.Finalize()

	hasRow, err = sel.Step(context.Background())
	require.NoError(t, err)
	require.True(t, hasRow)
	assert.Equal(t, ColBlob, sel.ColumnType(0))
	assert.Equal(t, ColText, sel.ColumnType(1))
	assert.Equal(t, ColInteger, sel.ColumnType(2))
	assert.Equal(t, int64(30), sel.ColumnInt64(2))

	hasRow, err = sel.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, hasRow)
}

func TestBindParameterNotFound(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), `CREATE TABLE t (uuid BLOB PRIMARY KEY) STRICT, WITHOUT ROWID;`)
	require.NoError(t, err)

	stmt, err := h.Prepare(`INSERT INTO t (uuid) VALUES (:uuid);`)
	require.NoError(t, err)
	defer stmt.Finalize()

	_, err = stmt.ParameterIndex("nope")
	assert.ErrorContains(t, err, "bind parameter not found")
}

func TestUniqueConstraintClassified(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Exec(context.Background(), `CREATE TABLE t (uuid BLOB PRIMARY KEY) STRICT, WITHOUT ROWID;`)
	require.NoError(t, err)

	ins, err := h.Prepare(`INSERT INTO t (uuid) VALUES (:uuid);`)
	require.NoError(t, err)
	defer ins.Finalize()

	require.NoError(t, ins.BindBlob(1, []byte("0123456789abcdef"), LifetimeStatic))
	_, err = ins.Step(context.Background())
	require.NoError(t, err)

	ins.Reset()
	require.NoError(t, ins.BindBlob(1, []byte("0123456789abcdef"), LifetimeStatic))
	_, err = ins.Step(context.Background())
	require.Error(t, err)
	assert.True(t, IsConstraintError(err))
}
