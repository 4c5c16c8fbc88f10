package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoModel(t *testing.T) *Shape {
	t.Helper()
	m, err := Model(widgetUUIDField(), widgetCountField())
	require.NoError(t, err)
	return m
}

func TestCreateStatementPlain(t *testing.T) {
	m := demoModel(t)
	text, err := CreateStatement(m, "widgets", InsertPlain)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO widgets (uuid, count) VALUES (:uuid, :count);", text)
}

func TestCreateStatementOrReplace(t *testing.T) {
	m := demoModel(t)
	text, err := CreateStatement(m, "widgets", InsertOrReplace)
	require.NoError(t, err)
	assert.Equal(t, "INSERT OR REPLACE INTO widgets (uuid, count) VALUES (:uuid, :count);", text)
}

func TestCreateStatementRejectsNonModel(t *testing.T) {
	v, err := View(widgetCountField())
	require.NoError(t, err)
	_, err = CreateStatement(v, "widgets", InsertPlain)
	require.Error(t, err)
}

func TestCreateTableSchema(t *testing.T) {
	m := demoModel(t)
	text, err := CreateTable(m, "widgets")
	require.NoError(t, err)
	assert.Contains(t, text, "uuid BLOB PRIMARY KEY")
	assert.Contains(t, text, "count INTEGER NOT NULL")
	assert.Contains(t, text, "STRICT, WITHOUT ROWID")
}
