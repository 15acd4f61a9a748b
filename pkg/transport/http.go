// Package transport carries requests and responses over the two sibling
// transports: a JSON/HTTP control plane and a streaming RPC data plane
// (implemented in pkg/rpc). Grounded on the teacher's pkg/client/client.go
// (NewClient/NewClientWithToken wiring dial options, timeouts, and a
// bearer token onto every call) generalized from a single gRPC dial to a
// dual HTTP+RPC transport sharing one credential source.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"github.com/cuemby/vecta-go/pkg/vlog"
)

// Timeouts is the two-part (connect, read) timeout every call respects,
// per spec.md §4.1.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
}

// HTTPConfig configures an HTTP transport.
type HTTPConfig struct {
	BaseURL  string
	Timeouts Timeouts
	Headers  map[string]string // static extra headers, e.g. from WithHeaders
	Proxy    func(*http.Request) (*http.Response, error) // not read by NewHTTP
}

// HTTP is the JSON control-plane transport. One instance per client.
type HTTP struct {
	baseURL string
	client  *http.Client
	headers map[string]string
	auth    *auth.Manager
}

// NewHTTP builds an HTTP transport dialing through cfg, authenticating
// every call via mgr.
func NewHTTP(cfg HTTPConfig, mgr *auth.Manager) *HTTP {
	return &HTTP{
		baseURL: cfg.BaseURL,
		headers: cfg.Headers,
		auth:    mgr,
		client: &http.Client{
			Timeout: cfg.Timeouts.Connect + cfg.Timeouts.Read,
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.Timeouts.Read,
			},
		},
	}
}

// Request is one call's parameters.
type Request struct {
	Method string // GET, POST, PUT, PATCH, DELETE, HEAD
	Path   string // joined onto <base_url>/v1
	Body   any    // marshaled as JSON when non-nil
	Params map[string]string
	Headers map[string]string
	OKStatus []int // allow-list; any other status (including other 2xx) fails
	ErrorLabel string // used in the failure message
}

// Response is a decoded HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Send issues one HTTP call. Failure on network error and on any status
// code outside req.OKStatus, per spec.md §4.1.
func (h *HTTP) Send(ctx context.Context, req Request) (*Response, error) {
	url := h.baseURL + "/v1" + req.Path
	if len(req.Params) > 0 {
		q := make(neturl.Values, len(req.Params))
		for k, v := range req.Params {
			q.Set(k, v)
		}
		url += "?" + q.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range h.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if token := h.auth.AuthorizationHeader(); token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	if vlog.IsDebug() {
		vlog.Logger.Debug().
			Str("method", req.Method).
			Str("url", url).
			Interface("headers", vlog.RedactHeaders(httpReq.Header)).
			Msg("http request")
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, &verrors.ConnectionError{Addr: h.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &verrors.ConnectionError{Addr: h.baseURL, Err: err}
	}

	out := &Response{StatusCode: resp.StatusCode, Body: body, Headers: resp.Header}

	if !statusAllowed(resp.StatusCode, req.OKStatus) {
		label := req.ErrorLabel
		if label == "" {
			label = req.Path
		}
		return out, &verrors.UnexpectedStatusError{StatusCode: resp.StatusCode, Path: label, Body: truncate(string(body), 500)}
	}
	return out, nil
}

// statusAllowed reports whether code is in okIn. Any status not explicitly
// listed fails, including other 2xx codes, per spec.md §4.1 ("any other
// 2xx also considered a failure to catch silent regressions").
func statusAllowed(code int, okIn []int) bool {
	for _, c := range okIn {
		if c == code {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
