package vecta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"github.com/cuemby/vecta-go/pkg/vlog"
)

// resolveCredentials builds the auth.Manager Connect installs, performing
// OIDC discovery first when cfg.Credentials names an OIDC flow, per
// spec.md §4.2 and original_source/weaviate/connect/v4.py's
// _create_clients (API keys and bare auth headers skip discovery
// entirely; discovery failure against explicitly supplied OIDC
// credentials fails fast rather than silently downgrading to
// unauthenticated).
func resolveCredentials(ctx context.Context, baseURL string, cfg vconfig.ConnectConfig) (*auth.Manager, error) {
	switch creds := cfg.Credentials.(type) {
	case nil:
		return auth.NewManager(auth.APIKey{}), nil
	case auth.APIKey:
		return auth.NewManager(creds), nil
	default:
		endpoint, err := discoverTokenEndpoint(ctx, baseURL, cfg.ConnectTimeout)
		if err != nil {
			return nil, &verrors.AuthenticationError{
				Reason: "OIDC discovery failed; credentials were supplied against what does not appear to be an OIDC-enabled server",
				Err:    err,
			}
		}
		return auth.NewOIDCManager(ctx, creds, &httpTokenSource{tokenEndpoint: endpoint, timeout: cfg.ConnectTimeout})
	}
}

type oidcDiscoveryResponse struct {
	Href     string `json:"href"`
	ClientID string `json:"clientId"`
}

type openIDConfiguration struct {
	TokenEndpoint string `json:"token_endpoint"`
}

// discoverTokenEndpoint fetches /v1/.well-known/openid-configuration, then
// follows its "href" to the issuer's own discovery document to find the
// real token endpoint, mirroring the two-hop discovery the reference
// client performs via authlib's OAuth2Client metadata fetch.
func discoverTokenEndpoint(ctx context.Context, baseURL string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}

	discoveryURL := baseURL + "/v1/.well-known/openid-configuration"
	body, status, err := getJSON(ctx, client, discoveryURL)
	if err != nil {
		return "", err
	}
	if status == 404 {
		return "", fmt.Errorf("vecta: %s returned 404", discoveryURL)
	}

	var disc oidcDiscoveryResponse
	if err := json.Unmarshal(body, &disc); err != nil || disc.Href == "" {
		vlog.Logger.Warn().Str("url", discoveryURL).Msg("openid-configuration response was not valid JSON")
		return "", fmt.Errorf("vecta: %s did not return a parseable OIDC config", discoveryURL)
	}

	issuerBody, _, err := getJSON(ctx, client, disc.Href)
	if err != nil {
		return "", err
	}
	var oidc openIDConfiguration
	if err := json.Unmarshal(issuerBody, &oidc); err != nil || oidc.TokenEndpoint == "" {
		return "", fmt.Errorf("vecta: issuer %s did not return a token_endpoint", disc.Href)
	}
	return oidc.TokenEndpoint, nil
}

func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &verrors.ConnectionError{Addr: url, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// httpTokenSource implements auth.TokenSource against a discovered OAuth2
// token endpoint using the standard resource-owner-password and
// client-credentials grants.
type httpTokenSource struct {
	tokenEndpoint string
	timeout       time.Duration
}

func (s *httpTokenSource) Exchange(ctx context.Context, creds auth.Credentials) (auth.Token, error) {
	form := url.Values{}
	switch c := creds.(type) {
	case auth.OIDCClientCredentials:
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", c.ClientID)
		form.Set("client_secret", c.ClientSecret)
		if c.Scope != "" {
			form.Set("scope", c.Scope)
		}
	case auth.OIDCResourceOwnerPassword:
		form.Set("grant_type", "password")
		form.Set("username", c.Username)
		form.Set("password", c.Password)
		if c.ClientID != "" {
			form.Set("client_id", c.ClientID)
		}
		if c.Scope != "" {
			form.Set("scope", c.Scope)
		}
	default:
		return auth.Token{}, fmt.Errorf("vecta: unsupported OIDC credential type %T", creds)
	}
	return s.post(ctx, form)
}

func (s *httpTokenSource) Refresh(ctx context.Context, refreshToken string, storedCreds auth.Credentials) (auth.Token, error) {
	if refreshToken == "" {
		return s.Exchange(ctx, storedCreds)
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return s.post(ctx, form)
}

func (s *httpTokenSource) post(ctx context.Context, form url.Values) (auth.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenEndpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return auth.Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: s.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return auth.Token{}, &verrors.ConnectionError{Addr: s.tokenEndpoint, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.Token{}, err
	}
	if resp.StatusCode != 200 {
		return auth.Token{}, fmt.Errorf("vecta: token endpoint %s returned %d: %s", s.tokenEndpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wire struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return auth.Token{}, fmt.Errorf("vecta: decode token response: %w", err)
	}
	return auth.Token{
		AccessToken:  wire.AccessToken,
		RefreshToken: wire.RefreshToken,
		ExpiresIn:    time.Duration(wire.ExpiresIn) * time.Second,
		FetchedAt:    time.Now(),
	}, nil
}

// fetchServerVersion performs the server-version fetch step of Connect via
// GET /v1/meta, per spec.md §3.
func fetchServerVersion(ctx context.Context, h *transport.HTTP) (string, error) {
	resp, err := h.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/meta",
		OKStatus:   []int{200},
		ErrorLabel: "fetch server meta",
	})
	if err != nil {
		return "", err
	}
	var meta struct {
		Version string `json:"version"`
	}
	if err := resp.JSON(&meta); err != nil {
		return "", fmt.Errorf("vecta: decode server meta: %w", err)
	}
	return meta.Version, nil
}
