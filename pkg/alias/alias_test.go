package alias

import (
	"context"
	"encoding/json"
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

func TestCreateAliasSendsTargetCollection(t *testing.T) {
	var captured Alias
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	require.NoError(t, c.Create(context.Background(), "ArticleAlias", "Article"))
	assert.Equal(t, "Article", captured.TargetCollection)
}

func TestGetAliasReturnsNilOn404(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	a, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestExistsTrueWhenAliasFound(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"alias":"ArticleAlias","class":"Article"}`))
	})
	defer srv.Close()

	ok, err := c.Exists(context.Background(), "ArticleAlias")
	require.NoError(t, err)
	assert.True(t, ok)
}
