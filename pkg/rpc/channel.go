package rpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/cuemby/vecta-go/pkg/verrors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// Channel is the RPC data-plane transport: one *grpc.ClientConn plus the
// credential source every call injects into its metadata, per spec.md
// §4.1 ("metadata authorization: <token> refreshed on every call").
type Channel struct {
	conn *grpc.ClientConn
	auth *auth.Manager
}

// DialConfig configures the RPC channel.
type DialConfig struct {
	Addr    string
	Secure  bool
	Timeout time.Duration
}

// Dial opens the RPC channel, grounded on the teacher's NewClient dial
// pattern (grpc.Dial + transport credentials), generalized to accept
// either plaintext or TLS credentials and to register this package's
// non-protobuf codec as the default call content subtype.
func Dial(cfg DialConfig, mgr *auth.Manager) (*Channel, error) {
	opts := []grpc.DialOption{
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}
	if !cfg.Secure {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, cfg.Addr, opts...)
	if err != nil {
		return nil, &verrors.ConnectionError{Addr: cfg.Addr, Err: err}
	}
	return &Channel{conn: conn, auth: mgr}, nil
}

// Close tears down the underlying connection.
func (c *Channel) Close() error {
	return c.conn.Close()
}

// withAuth attaches the current bearer token to ctx's outgoing metadata.
func (c *Channel) withAuth(ctx context.Context) context.Context {
	token := c.auth.AuthorizationHeader()
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", token)
}

// invoke issues one unary call of method against req, decoding into resp.
func (c *Channel) invoke(ctx context.Context, method string, req, resp any) error {
	ctx = c.withAuth(ctx)
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return &verrors.RPCError{Method: method, Err: err}
	}
	return nil
}

// Search issues the Search RPC.
func (c *Channel) Search(ctx context.Context, req *SearchRequest) (*SearchReply, error) {
	resp := &SearchReply{}
	if err := c.invoke(ctx, "/vecta.v1.Weaviate/Search", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BatchObjects issues the BatchObjects RPC.
func (c *Channel) BatchObjects(ctx context.Context, req *BatchObjectsRequest) (*BatchObjectsReply, error) {
	resp := &BatchObjectsReply{}
	if err := c.invoke(ctx, "/vecta.v1.Weaviate/BatchObjects", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TenantsGet issues the TenantsGet RPC.
func (c *Channel) TenantsGet(ctx context.Context, req *TenantsGetRequest) (*TenantsGetReply, error) {
	resp := &TenantsGetReply{}
	if err := c.invoke(ctx, "/vecta.v1.Weaviate/TenantsGet", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Aggregate issues the Aggregate RPC.
func (c *Channel) Aggregate(ctx context.Context, req *AggregateRequest) (*AggregateReply, error) {
	resp := &AggregateReply{}
	if err := c.invoke(ctx, "/vecta.v1.Weaviate/Aggregate", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// HealthCheck issues the health probe, used by Client.Connect.
func (c *Channel) HealthCheck(ctx context.Context) error {
	resp := &HealthCheckReply{}
	if err := c.invoke(ctx, "/vecta.v1.Weaviate/HealthCheck", &HealthCheckRequest{}, resp); err != nil {
		return err
	}
	if !resp.Healthy {
		return fmt.Errorf("rpc: server reports unhealthy: %s", resp.Message)
	}
	return nil
}
