package uuid7

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quill/pkg/quill/qerr"
)

func TestNewRoundTripsThroughBytes(t *testing.T) {
	id := New()
	back, err := FromBytes(id.Bytes())
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestFromBytesRejectsWrongSize(t *testing.T) {
	_, err := FromBytes([]byte("too short"))
	require.Error(t, err)
}

func TestURNRoundTrip(t *testing.T) {
	id := New()
	urn := id.ToURN()
	back, err := FromURN(urn)
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestFromURNRejectsInvalidHex(t *testing.T) {
	_, err := FromURN("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz")
	require.ErrorIs(t, err, qerr.ErrInvalidHexCharacter)
}

func TestFromURNRejectsMalformedShape(t *testing.T) {
	_, err := FromURN("0123-4567-89ab-cdef")
	require.ErrorIs(t, err, qerr.ErrMalformedURNString)
}
