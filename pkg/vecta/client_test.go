package vecta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, version string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/meta":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"version":"` + version + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestConnectFetchesVersionAndIsIdempotent(t *testing.T) {
	srv := newTestServer(t, "1.29.0")
	defer srv.Close()

	cfg := vconfig.NewConnectConfig(srv.URL, vconfig.WithAPIKey("k"), vconfig.WithTimeout(time.Second, time.Second))
	c := New(cfg)

	require.NoError(t, c.Connect(context.Background()))
	require.NoError(t, c.Connect(context.Background())) // idempotent no-op

	assert.True(t, c.gate.Server.IsAtLeast(1, 29, 0))
}

func TestCollectionFailsBeforeConnect(t *testing.T) {
	c := New(vconfig.NewConnectConfig("http://unused"))
	_, err := c.Collection("Article")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*verrors.ClosedClientError))
}

func TestCollectionFailsAfterClose(t *testing.T) {
	srv := newTestServer(t, "1.29.0")
	defer srv.Close()

	cfg := vconfig.NewConnectConfig(srv.URL, vconfig.WithAPIKey("k"), vconfig.WithTimeout(time.Second, time.Second))
	c := New(cfg)
	require.NoError(t, c.Connect(context.Background()))
	require.NoError(t, c.Close(context.Background()))

	_, err := c.Collection("Article")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*verrors.ClosedClientError))
}

func TestCloseBeforeConnectIsNoop(t *testing.T) {
	c := New(vconfig.NewConnectConfig("http://unused"))
	require.NoError(t, c.Close(context.Background()))
}

func TestConnectFailsOnUnreachableServer(t *testing.T) {
	cfg := vconfig.NewConnectConfig("http://127.0.0.1:1", vconfig.WithTimeout(50*time.Millisecond, 50*time.Millisecond))
	c := New(cfg)
	err := c.Connect(context.Background())
	require.Error(t, err)
}

func TestConnectSurfacesSchemaAndClusterHandles(t *testing.T) {
	srv := newTestServer(t, "1.29.0")
	defer srv.Close()

	cfg := vconfig.NewConnectConfig(srv.URL, vconfig.WithAPIKey("k"), vconfig.WithTimeout(time.Second, time.Second))
	c := New(cfg)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close(context.Background())

	_, err := c.Schema()
	require.NoError(t, err)
	_, err = c.Cluster()
	require.NoError(t, err)
	_, err = c.Roles()
	require.NoError(t, err)
	_, err = c.Replication()
	require.NoError(t, err)
	_, err = c.Backup()
	require.NoError(t, err)
}
