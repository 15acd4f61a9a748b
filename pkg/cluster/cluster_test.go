package cluster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
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

func TestReadyTrueOn200(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/.well-known/ready", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	ready, err := c.Ready(context.Background())
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestReadyFalseOn503(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	ready, err := c.Ready(context.Background())
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestMetaDecodesVersion(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"1.29.0"}`))
	})
	defer srv.Close()

	meta, err := c.Meta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.29.0", meta.Version)
}
