package replication

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

func TestStartReplicationOperation(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/replication/replicate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"uuid":"op-1","status":"REGISTERED","transfer_type":"COPY"}`))
	})
	defer srv.Close()

	op, err := c.Start(context.Background(), "Article", "shard-1", "node-a", "node-b", TransferCopy)
	require.NoError(t, err)
	assert.Equal(t, "op-1", op.UUID)
	assert.Equal(t, TransferCopy, op.TransferType)
}

func TestCancelReplicationOperation(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/replication/replicate/op-1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	require.NoError(t, c.Cancel(context.Background(), "op-1"))
}
