package search

import (
	"testing"

	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gate(version string) *capability.Gate {
	g, _ := capability.NewGate(version)
	return g
}

func TestBuilderRejectsMultipleProbes(t *testing.T) {
	b := NewBuilder("Article").BM25(rpc.BM25Search{Query: "x"}).NearObject(rpc.NearObjectSearch{UUID: "u"})
	_, err := b.Build(gate("1.30.0"))
	assert.Error(t, err)
}

func TestBuilderDefaultsMetadataWhenUnset(t *testing.T) {
	req, err := NewBuilder("Article").BM25(rpc.BM25Search{Query: "x"}).Build(gate("1.30.0"))
	require.NoError(t, err)
	assert.NotEmpty(t, req.ReturnMetadata)
	assert.NotContains(t, req.ReturnMetadata, "vector")
}

func TestBuilderNearTextRequiresConceptsOrObjects(t *testing.T) {
	_, err := NewBuilder("Article").NearText(rpc.NearTextSearch{
		Concepts: []string{"space"},
		MoveTo:   &rpc.NearTextMove{},
	})
	assert.Error(t, err)
}

func TestBuilderNearTextMoveToOK(t *testing.T) {
	b, err := NewBuilder("Article").NearText(rpc.NearTextSearch{
		Concepts: []string{"space"},
		MoveTo:   &rpc.NearTextMove{Concepts: []string{"adventure"}},
	})
	require.NoError(t, err)
	req, err := b.Build(gate("1.30.0"))
	require.NoError(t, err)
	assert.Equal(t, "space", req.NearText.Concepts[0])
}

func TestBuilderNamedVectorsHardGated(t *testing.T) {
	b := NewBuilder("Article").NearVector(rpc.NearVectorSearch{NamedVectors: map[string][]float32{"title": {1, 2}}})
	_, err := b.Build(gate("1.20.0"))
	assert.Error(t, err)

	_, err = b.Build(gate("1.24.0"))
	assert.NoError(t, err)
}

func TestBuilderAutoLimitZeroDisablesAutocut(t *testing.T) {
	req, err := NewBuilder("Article").BM25(rpc.BM25Search{Query: "x"}).AutoLimit(0).Build(gate("1.30.0"))
	require.NoError(t, err)
	require.NotNil(t, req.AutoLimit)
	assert.Equal(t, int64(0), *req.AutoLimit)
}
