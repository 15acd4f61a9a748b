package vecta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentialsAPIKeySkipsDiscovery(t *testing.T) {
	cfg := vconfig.NewConnectConfig("http://unreachable.invalid", vconfig.WithAPIKey("k"))
	mgr, err := resolveCredentials(context.Background(), cfg.BaseURL, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Bearer k", mgr.AuthorizationHeader())
}

func TestResolveCredentialsNoneIsAnonymous(t *testing.T) {
	cfg := vconfig.NewConnectConfig("http://unreachable.invalid")
	mgr, err := resolveCredentials(context.Background(), cfg.BaseURL, cfg)
	require.NoError(t, err)
	assert.Equal(t, "", mgr.AuthorizationHeader())
}

func TestResolveCredentialsOIDCFailsFastOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := vconfig.NewConnectConfig(srv.URL,
		vconfig.WithOIDCClientCredentials("client", "secret", ""),
		vconfig.WithTimeout(time.Second, time.Second))

	_, err := resolveCredentials(context.Background(), cfg.BaseURL, cfg)
	require.Error(t, err)
}

func TestResolveCredentialsOIDCSucceedsOnDiscovery(t *testing.T) {
	mux := http.NewServeMux()
	issuer := httptest.NewServer(mux)
	defer issuer.Close()
	mux.HandleFunc("/issuer-config", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_endpoint":"` + issuer.URL + `/token"}`))
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok123","expires_in":3600}`))
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/.well-known/openid-configuration" {
			w.Write([]byte(`{"href":"` + issuer.URL + `/issuer-config","clientId":"c"}`))
		}
	}))
	defer srv.Close()

	cfg := vconfig.NewConnectConfig(srv.URL,
		vconfig.WithOIDCClientCredentials("client", "secret", ""),
		vconfig.WithTimeout(time.Second, time.Second))

	mgr, err := resolveCredentials(context.Background(), cfg.BaseURL, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", mgr.AuthorizationHeader())
	mgr.Close()
}
