package collection

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func TestConfigDescribeDecodesSchema(t *testing.T) {
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/schema/Article", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Article","description":"news items"}`))
	})
	defer srv.Close()

	got, err := c.Config().Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Article", got.Name)
	assert.Equal(t, "news items", got.Description)
}

func TestConfigAddReferenceSendsReferenceDataType(t *testing.T) {
	var captured models.Property
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		var body models.Property
		require.NoError(t, decodeBody(r, &body))
		captured = body
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	err := c.Config().AddReference(context.Background(), "author", []string{"Person"})
	require.NoError(t, err)
	assert.Equal(t, models.DataTypeReference, captured.DataType)
	assert.Equal(t, []string{"Person"}, captured.TargetCollections)
}

func TestConfigGetShards(t *testing.T) {
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"shard-1","status":"READY","node":"node-a"}]`))
	})
	defer srv.Close()

	shards, err := c.Config().GetShards(context.Background())
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.Equal(t, "READY", shards[0].Status)
}
