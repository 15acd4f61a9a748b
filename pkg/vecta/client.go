// Package vecta is the public import path: the Client Root that composes
// Transport, Auth, and the Capability Gate, and exposes collections,
// cluster, users/roles/groups, debug, replication, backup, and aliases,
// per spec.md §3. Grounded on the teacher's pkg/client/client.go (a thin
// wrapper dialing a connection and handing out typed sub-clients) and on
// original_source/weaviate/connect/v4.py's connect/close sequencing
// (OIDC discovery before auth session creation, a background refresh
// task torn down on close).
package vecta

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cuemby/vecta-go/pkg/alias"
	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/backup"
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/cluster"
	"github.com/cuemby/vecta-go/pkg/collection"
	"github.com/cuemby/vecta-go/pkg/debug"
	"github.com/cuemby/vecta-go/pkg/embedded"
	"github.com/cuemby/vecta-go/pkg/executor"
	"github.com/cuemby/vecta-go/pkg/rbac"
	"github.com/cuemby/vecta-go/pkg/replication"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/schema"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"github.com/cuemby/vecta-go/pkg/vlog"
)

// coordinator holds every piece of state a connected client needs:
// transport, auth, capability gate, and the sub-clients handed out to
// callers. Client and AsyncClient both embed a *coordinator and differ
// only in whether their Connect/Close block or return a Future, per
// spec.md Design Notes ("two hand-written surfaces sharing an internal
// executor").
type coordinator struct {
	cfg vconfig.ConnectConfig

	mu        sync.Mutex
	connected bool
	closed    atomic.Bool

	embeddedProc *embedded.Process
	authMgr      *auth.Manager
	http         *transport.HTTP
	rpcChan      *rpc.Channel
	gate         *capability.Gate

	schema      *schema.Client
	backup      *backup.Client
	rbac        *rbac.Client
	replication *replication.Client
	cluster     *cluster.Client
	alias       *alias.Client
	debug       *debug.Client
}

// Client is created inert; Connect must succeed before any other method is
// called, per spec.md §3 ("A Client is created inert; connect() performs
// ...").
type Client struct {
	*coordinator
}

// New builds an inert Client from cfg. No network activity occurs until
// Connect.
func New(cfg vconfig.ConnectConfig) *Client {
	return &Client{&coordinator{cfg: cfg}}
}

// logInit guards the one-time WEAVIATE_LOG_LEVEL read, per spec.md §6
// ("read exactly once, at Init"); shared across every Client in the
// process since the global logger is itself process-wide.
var logInit sync.Once

// Connect performs, in order: (1) optional embedded-server start, (2) OIDC
// discovery to decide auth style, (3) server-version fetch, (4) RPC channel
// open plus health probe. Idempotent: a second call after success is a
// no-op, per spec.md §3. This is the synchronous colour: it blocks until
// connect completes, run through the same pkg/executor engine AsyncClient
// uses for its Future-returning colour.
func (c *Client) Connect(ctx context.Context) error {
	_, err := executor.Execute(ctx, c.coordinator.doConnect, identity[struct{}])
	return err
}

// Close tears down the RPC channel, the token refresh task, and the embedded
// server, in that order; idle HTTP connections are not closed explicitly.
// Safe to call more than once and before Connect.
// Synchronous colour of the shared close operation.
func (c *Client) Close(ctx context.Context) error {
	_, err := executor.Execute(ctx, c.coordinator.doClose, identity[struct{}])
	return err
}

// doConnect is the shared Connect implementation both colours execute.
func (c *coordinator) doConnect(ctx context.Context) (struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return struct{}{}, nil
	}

	logInit.Do(func() {
		vlog.Init(vlog.Config{Level: vlog.LevelFromEnv()})
	})

	baseURL := c.cfg.BaseURL
	if c.cfg.Embedded.Enabled {
		proc := embedded.New(embedded.Config{
			BinaryPath: c.cfg.Embedded.BinaryPath,
			DataPath:   c.cfg.Embedded.DataPath,
			Port:       c.cfg.Embedded.Port,
		})
		if err := proc.Start(ctx); err != nil {
			return struct{}{}, fmt.Errorf("vecta: start embedded server: %w", err)
		}
		c.embeddedProc = proc
		baseURL = "http://" + proc.Addr()
	}

	creds, err := resolveCredentials(ctx, baseURL, c.cfg)
	if err != nil {
		c.stopEmbedded()
		return struct{}{}, err
	}
	c.authMgr = creds

	c.http = transport.NewHTTP(transport.HTTPConfig{
		BaseURL: baseURL,
		Timeouts: transport.Timeouts{
			Connect: c.cfg.ConnectTimeout,
			Read:    c.cfg.ReadTimeout,
		},
		Headers: flattenHeaders(c.cfg.Headers),
	}, c.authMgr)

	version, err := fetchServerVersion(ctx, c.http)
	if err != nil {
		c.teardown()
		return struct{}{}, err
	}
	gate, err := capability.NewGate(version)
	if err != nil {
		c.teardown()
		return struct{}{}, fmt.Errorf("vecta: parse server version %q: %w", version, err)
	}
	c.gate = gate

	if c.cfg.GRPC.Addr != "" {
		ch, err := rpc.Dial(rpc.DialConfig{
			Addr:    c.cfg.GRPC.Addr,
			Secure:  c.cfg.GRPC.Secure,
			Timeout: c.cfg.ConnectTimeout,
		}, c.authMgr)
		if err != nil {
			c.teardown()
			return struct{}{}, err
		}
		if err := ch.HealthCheck(ctx); err != nil {
			_ = ch.Close()
			c.teardown()
			return struct{}{}, fmt.Errorf("vecta: rpc health check: %w", err)
		}
		c.rpcChan = ch
	}

	c.schema = schema.New(c.http)
	c.backup = backup.New(c.http)
	c.rbac = rbac.New(c.http)
	c.replication = replication.New(c.http)
	c.cluster = cluster.New(c.http)
	c.alias = alias.New(c.http)
	c.debug = debug.New(c.http)

	c.connected = true
	return struct{}{}, nil
}

// doClose is the shared Close implementation both colours execute.
func (c *coordinator) doClose(ctx context.Context) (struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return struct{}{}, nil
	}
	c.closed.Store(true)
	c.connected = false
	c.teardown()
	return struct{}{}, c.stopEmbedded()
}

func (c *coordinator) teardown() {
	if c.rpcChan != nil {
		_ = c.rpcChan.Close()
		c.rpcChan = nil
	}
	if c.authMgr != nil {
		c.authMgr.Close()
	}
}

func (c *coordinator) stopEmbedded() error {
	if c.embeddedProc == nil {
		return nil
	}
	err := c.embeddedProc.Stop(context.Background())
	c.embeddedProc = nil
	return err
}

// requireConnected returns ClosedClientError for any I/O attempted after
// Close, or before a successful Connect, per spec.md §7.
func (c *coordinator) requireConnected() error {
	if c.closed.Load() || !c.connected {
		return &verrors.ClosedClientError{}
	}
	return nil
}

// Collection returns a facade over the named collection. name is
// normalized per models.NormalizeCollectionName.
func (c *coordinator) Collection(name string) (*collection.Collection, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return collection.New(name, c.http, c.rpcChan, c.gate), nil
}

// Schema exposes cluster-wide schema CRUD.
func (c *coordinator) Schema() (*schema.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.schema, nil
}

// Cluster exposes readiness/liveness probes, node listing, and server meta.
func (c *coordinator) Cluster() (*cluster.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.cluster, nil
}

// Roles exposes RBAC role/user/group CRUD.
func (c *coordinator) Roles() (*rbac.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.rbac, nil
}

// Replication exposes shard replication operations.
func (c *coordinator) Replication() (*replication.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.replication, nil
}

// Backup exposes cluster-wide backup/restore operations.
func (c *coordinator) Backup() (*backup.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.backup, nil
}

// Aliases exposes collection-alias CRUD.
func (c *coordinator) Aliases() (*alias.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.alias, nil
}

// Debug exposes the diagnostic object-over-REST lookup.
func (c *coordinator) Debug() (*debug.Client, error) {
	if err := c.requireConnected(); err != nil {
		return nil, err
	}
	return c.debug, nil
}

// identity is the onResponse passthrough for executor calls whose result
// is already final, with no separate response-decoding step.
func identity[T any](v T) (T, error) {
	return v, nil
}

func flattenHeaders(h map[string][]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
