package debug

import (
	"context"
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

func TestGetObjectOverRESTDecodesVectorAndProperties(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"class":"Article","id":"abc","properties":{"title":"hello"},"vector":[0.1,0.2]}`))
	})
	defer srv.Close()

	obj, err := c.GetObjectOverREST(context.Background(), "Article", "abc", "", "")
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, []float32{0.1, 0.2}, obj.Vector)
	assert.Equal(t, models.PropertyValue{Kind: models.PropertyValueText, Text: "hello"}, obj.Properties["title"])
}

func TestGetObjectOverRESTReturnsNilOn404(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	obj, err := c.GetObjectOverREST(context.Background(), "Article", "abc", "", "")
	require.NoError(t, err)
	assert.Nil(t, obj)
}
