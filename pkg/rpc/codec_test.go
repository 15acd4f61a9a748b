package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodecName(t *testing.T) {
	assert.Equal(t, "vecta-json", jsonCodec{}.Name())
}

func TestJSONCodecRoundTripsSearchRequest(t *testing.T) {
	limit := int64(10)
	req := &SearchRequest{
		Collection: "Article",
		Limit:      &limit,
		BM25:       &BM25Search{Query: "dune"},
	}

	data, err := jsonCodec{}.Marshal(req)
	require.NoError(t, err)

	var out SearchRequest
	require.NoError(t, jsonCodec{}.Unmarshal(data, &out))

	assert.Equal(t, "Article", out.Collection)
	require.NotNil(t, out.Limit)
	assert.Equal(t, int64(10), *out.Limit)
	require.NotNil(t, out.BM25)
	assert.Equal(t, "dune", out.BM25.Query)
}
