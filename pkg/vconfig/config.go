// Package vconfig holds client connection configuration: a functional
// options surface for building a ConnectConfig (mirroring the teacher's
// manager.Config / worker.Config struct-of-fields style), an on-disk YAML
// profile file for the CLI, and a bbolt-backed local cache for CLI
// join/profile state.
package vconfig

import (
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
)

// GRPCConfig configures the RPC data-plane dial.
type GRPCConfig struct {
	Addr   string
	Secure bool
}

// EmbeddedConfig configures an optional embedded server process started
// and stopped alongside the client, per spec.md's "embedded server
// collaborator" note.
type EmbeddedConfig struct {
	Enabled  bool
	BinaryPath string
	DataPath string
	Port     int
}

// ConnectConfig is the fully-resolved configuration a client connects
// with, built up via Option functions applied over sane defaults.
type ConnectConfig struct {
	BaseURL     string
	Credentials auth.Credentials
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Headers     map[string][]string
	GRPC        GRPCConfig
	Embedded    EmbeddedConfig
}

// Option mutates a ConnectConfig during construction.
type Option func(*ConnectConfig)

// NewConnectConfig builds a ConnectConfig for baseURL with sane transport
// timeout defaults, then applies opts in order.
func NewConnectConfig(baseURL string, opts ...Option) ConnectConfig {
	cfg := ConnectConfig{
		BaseURL:        baseURL,
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    60 * time.Second,
		Headers:        map[string][]string{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAPIKey configures static API-key authentication.
func WithAPIKey(key string) Option {
	return func(c *ConnectConfig) {
		c.Credentials = auth.APIKey{Key: key}
	}
}

// WithOIDCClientCredentials configures the OIDC client-credentials flow.
func WithOIDCClientCredentials(clientID, clientSecret, scope string) Option {
	return func(c *ConnectConfig) {
		c.Credentials = auth.OIDCClientCredentials{ClientID: clientID, ClientSecret: clientSecret, Scope: scope}
	}
}

// WithOIDCResourceOwnerPassword configures the OIDC resource-owner
// password-credentials flow.
func WithOIDCResourceOwnerPassword(username, password, clientID, scope string) Option {
	return func(c *ConnectConfig) {
		c.Credentials = auth.OIDCResourceOwnerPassword{Username: username, Password: password, ClientID: clientID, Scope: scope}
	}
}

// WithTimeout overrides the (connect, read) timeout pair.
func WithTimeout(connect, read time.Duration) Option {
	return func(c *ConnectConfig) {
		c.ConnectTimeout = connect
		c.ReadTimeout = read
	}
}

// WithHeaders merges extra static headers sent on every HTTP request.
func WithHeaders(headers map[string][]string) Option {
	return func(c *ConnectConfig) {
		for k, v := range headers {
			c.Headers[k] = v
		}
	}
}

// WithGRPC configures the RPC data-plane dial target.
func WithGRPC(addr string, secure bool) Option {
	return func(c *ConnectConfig) {
		c.GRPC = GRPCConfig{Addr: addr, Secure: secure}
	}
}

// WithEmbedded enables an embedded server process, started at connect
// time and stopped at close.
func WithEmbedded(binaryPath, dataPath string, port int) Option {
	return func(c *ConnectConfig) {
		c.Embedded = EmbeddedConfig{Enabled: true, BinaryPath: binaryPath, DataPath: dataPath, Port: port}
	}
}
