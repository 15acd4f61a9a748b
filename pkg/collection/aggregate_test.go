package collection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateOverAllUsesGraphQLBelowRPCCutoff(t *testing.T) {
	var hitGraphQL bool
	c, srv := newTestGraphQLCollection(t, "1.28.0", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/graphql" {
			hitGraphQL = true
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"Aggregate":{"Article":[{"meta":{"count":42}}]}}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	result, err := c.AggregateOverAll(context.Background())
	require.NoError(t, err)
	assert.True(t, hitGraphQL)
	assert.Equal(t, int64(42), result.TotalCount)
}

func TestAggregateOverAllSurfacesGraphQLErrors(t *testing.T) {
	c, srv := newTestGraphQLCollection(t, "1.28.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
	})
	defer srv.Close()

	_, err := c.AggregateOverAll(context.Background())
	require.Error(t, err)
	var qe *verrors.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "boom", qe.Message)
}

func newTestGraphQLCollection(t *testing.T, serverVersion string, handler http.HandlerFunc) (*Collection, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	h := transport.NewHTTP(transport.HTTPConfig{BaseURL: srv.URL}, auth.NewManager(auth.APIKey{Key: "k"}))
	g, err := capability.NewGate(serverVersion)
	require.NoError(t, err)
	return New("article", h, nil, g), srv
}
