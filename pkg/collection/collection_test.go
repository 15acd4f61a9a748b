package collection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T, handler http.HandlerFunc) (*Collection, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	h := transport.NewHTTP(transport.HTTPConfig{BaseURL: srv.URL, Timeouts: transport.Timeouts{Connect: time.Second, Read: time.Second}}, auth.NewManager(auth.APIKey{Key: "k"}))
	g, err := capability.NewGate("1.30.0")
	require.NoError(t, err)
	return New("article", h, nil, g), srv
}

func TestInsertGeneratesAndReturnsUUID(t *testing.T) {
	var capturedID string
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		capturedID, _ = body["id"].(string)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
	defer srv.Close()

	id, err := c.Insert(context.Background(), models.Object{Properties: map[string]models.PropertyValue{
		"name": {Kind: models.PropertyValueText, Text: "hello"},
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, capturedID)
}

func TestGetByIDReturnsNilOn404(t *testing.T) {
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	obj, err := c.GetByID(context.Background(), "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestExistsFalseOn404(t *testing.T) {
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	ok, err := c.Exists(context.Background(), "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTenantDoesNotMutateParent(t *testing.T) {
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	defer srv.Close()

	scoped := c.WithTenant("T1")
	assert.Equal(t, "", c.tenant)
	assert.Equal(t, "T1", scoped.tenant)
}
