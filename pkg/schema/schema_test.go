package schema

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	h := transport.NewHTTP(transport.HTTPConfig{BaseURL: srv.URL, Timeouts: transport.Timeouts{Connect: time.Second, Read: time.Second}}, auth.NewManager(auth.APIKey{Key: "k"}))
	return New(h), srv
}

func TestCreateNormalizesCollectionName(t *testing.T) {
	var capturedPath string
	var captured models.Collection
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	require.NoError(t, c.Create(context.Background(), models.Collection{Name: "article"}))
	assert.Equal(t, "/v1/schema", capturedPath)
	assert.Equal(t, "Article", captured.Name)
}

func TestExistsFalseOn404(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	ok, err := c.Exists(context.Background(), "Article")
	require.NoError(t, err)
	assert.False(t, ok)
}
