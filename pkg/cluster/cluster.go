// Package cluster is a thin CRUD executor over the server's cluster
// administration endpoints, per spec.md §6: readiness/liveness probes and
// node statistics. Node statistics are also the data source the batch
// engine's dynamic size controller polls (pkg/batch.StatsFetcher); this
// package is the administrative, whole-cluster view of the same data.
package cluster

import (
	"context"

	"github.com/cuemby/vecta-go/pkg/transport"
)

// Client wraps the HTTP control plane for cluster administration.
type Client struct {
	http *transport.HTTP
}

// New builds a cluster client.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// Ready reports whether the server is ready to serve traffic.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/.well-known/ready",
		OKStatus:   []int{200, 503},
		ErrorLabel: "check ready",
	})
	if err != nil {
		return false, err
	}
	return resp.StatusCode == 200, nil
}

// Live reports whether the server process is alive.
func (c *Client) Live(ctx context.Context) (bool, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/.well-known/live",
		OKStatus:   []int{200, 503},
		ErrorLabel: "check live",
	})
	if err != nil {
		return false, err
	}
	return resp.StatusCode == 200, nil
}

// NodeStatus is one node's reported health and shard summary.
type NodeStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Shards []struct {
		Collection string `json:"collection"`
		Name       string `json:"name"`
		ObjectCount int64  `json:"objectCount"`
	} `json:"shards"`
}

// Nodes lists every cluster node's reported status.
func (c *Client) Nodes(ctx context.Context) ([]NodeStatus, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/nodes",
		OKStatus:   []int{200},
		ErrorLabel: "list nodes",
	})
	if err != nil {
		return nil, err
	}
	var wire struct {
		Nodes []NodeStatus `json:"nodes"`
	}
	if err := resp.JSON(&wire); err != nil {
		return nil, err
	}
	return wire.Nodes, nil
}

// Meta describes the connected server's identity and version, per
// spec.md §6's `GET /v1/meta`.
type Meta struct {
	Version string `json:"version"`
	Hostname string `json:"hostname,omitempty"`
}

// Meta fetches the server's version and identity.
func (c *Client) Meta(ctx context.Context) (Meta, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/meta",
		OKStatus:   []int{200},
		ErrorLabel: "get meta",
	})
	if err != nil {
		return Meta{}, err
	}
	var out Meta
	if err := resp.JSON(&out); err != nil {
		return Meta{}, err
	}
	return out, nil
}
