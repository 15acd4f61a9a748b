package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.24.1")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Major)
	assert.Equal(t, 24, v.Minor)
	assert.Equal(t, 1, v.Patch)
}

func TestParseVersionStripsPrerelease(t *testing.T) {
	v, err := ParseVersion("1.24.1-rc.0")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Patch)
}

func TestIsAtLeast(t *testing.T) {
	v := Version{Major: 1, Minor: 24, Patch: 0}
	assert.True(t, v.IsAtLeast(1, 24, 0))
	assert.True(t, v.IsAtLeast(1, 23, 9))
	assert.False(t, v.IsAtLeast(1, 24, 1))
	assert.False(t, v.IsAtLeast(2, 0, 0))
}

func TestAggregateTransportGate(t *testing.T) {
	old, _ := NewGate("1.28.0")
	assert.Equal(t, TransportREST, old.AggregateTransport())

	newer, _ := NewGate("1.29.0")
	assert.Equal(t, TransportRPC, newer.AggregateTransport())
}

func TestRequireNamedVectorsErrorMessage(t *testing.T) {
	g, _ := NewGate("1.20.0")
	err := g.RequireNamedVectors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "named_vectors")
	assert.Contains(t, err.Error(), "1.20.0")
}
