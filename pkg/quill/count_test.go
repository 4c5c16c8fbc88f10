package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountBasicStatement(t *testing.T) {
	filter := demoFilter(t)
	cb := Count(filter, "widgets")
	text, err := cb.Statement()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM widgets;", text)
}

func TestCountWithWhen(t *testing.T) {
	filter := demoFilter(t)
	cb := Count(filter, "widgets")
	cond, err := Cond(filter, "active", OpEQ, 0)
	require.NoError(t, err)
	require.NoError(t, cb.When(cond))
	require.Error(t, cb.When(cond))

	text, err := cb.Statement()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM widgets\nWHERE active = :_active;", text)
}
