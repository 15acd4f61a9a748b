package rbac

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

func TestCreateRoleFlattensPermissions(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/authz/roles", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	err := c.CreateRole(context.Background(), Role{
		Name: "viewer",
		Permissions: []Permission{
			{Domain: DomainCollections, Action: "read"},
			{Domain: DomainData, Action: "read"},
		},
	})
	require.NoError(t, err)
}

func TestGetRoleDecodesPermissions(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"viewer","permissions":[{"domain":"collections","action":"read"}]}`))
	})
	defer srv.Close()

	role, err := c.GetRole(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, "viewer", role.Name)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, DomainCollections, role.Permissions[0].Domain)
}
