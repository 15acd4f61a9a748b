// Package replication is a thin CRUD executor over the server's shard
// replication endpoints, per spec.md §6 (`/v1/replication/replicate[/{uuid}[/cancel]]`,
// `/v1/replication/sharding-state`).
package replication

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/transport"
)

// TransferType selects whether a replication operation copies or moves a
// shard replica, per spec.md §3's ReplicateOperation.
type TransferType string

const (
	TransferCopy TransferType = "COPY"
	TransferMove TransferType = "MOVE"
)

// Operation mirrors spec.md §3's ReplicateOperation: immutable once
// created, with cancellation/deletion modeled as a terminal status
// transition rather than a distinct type.
type Operation struct {
	UUID          string         `json:"uuid"`
	Collection    string         `json:"collection"`
	Shard         string         `json:"shard"`
	SourceNode    string         `json:"source_node"`
	TargetNode    string         `json:"target_node"`
	TransferType  TransferType   `json:"transfer_type"`
	Status        string         `json:"status"`
	StatusHistory []StatusRecord `json:"status_history,omitempty"`
}

// StatusRecord is one entry of a replication operation's status history.
type StatusRecord struct {
	Status string `json:"status"`
	Since  string `json:"since"`
}

// Client wraps the HTTP control plane for replication operations.
type Client struct {
	http *transport.HTTP
}

// New builds a replication client.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// Start requests a new replica transfer for one shard.
func (c *Client) Start(ctx context.Context, collection, shard, sourceNode, targetNode string, transferType TransferType) (Operation, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method: "POST",
		Path:   "/replication/replicate",
		Body: map[string]any{
			"collection":    collection,
			"shard":         shard,
			"source_node":   sourceNode,
			"target_node":   targetNode,
			"transfer_type": transferType,
		},
		OKStatus:   []int{200, 201},
		ErrorLabel: "start replication operation",
	})
	if err != nil {
		return Operation{}, err
	}
	var out Operation
	if err := resp.JSON(&out); err != nil {
		return Operation{}, fmt.Errorf("replication: decode operation: %w", err)
	}
	return out, nil
}

// Get fetches a replication operation's current status.
func (c *Client) Get(ctx context.Context, uuid string) (Operation, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/replication/replicate/%s", uuid),
		OKStatus:   []int{200},
		ErrorLabel: "get replication operation",
	})
	if err != nil {
		return Operation{}, err
	}
	var out Operation
	if err := resp.JSON(&out); err != nil {
		return Operation{}, fmt.Errorf("replication: decode operation: %w", err)
	}
	return out, nil
}

// Cancel transitions a replication operation to the cancelled terminal
// state, per spec.md §3's "cancellation/deletion is a terminal state
// transition".
func (c *Client) Cancel(ctx context.Context, uuid string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/replication/replicate/%s/cancel", uuid),
		OKStatus:   []int{200, 204},
		ErrorLabel: "cancel replication operation",
	})
	return err
}

// Delete removes a finished replication operation's record.
func (c *Client) Delete(ctx context.Context, uuid string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       fmt.Sprintf("/replication/replicate/%s", uuid),
		OKStatus:   []int{204},
		ErrorLabel: "delete replication operation",
	})
	return err
}

// ShardState is one shard's replica placement, as reported by the
// sharding-state endpoint.
type ShardState struct {
	Collection string   `json:"collection"`
	Shard      string   `json:"shard"`
	Replicas   []string `json:"replicas"`
}

// ShardingState fetches the cluster-wide shard replica placement.
func (c *Client) ShardingState(ctx context.Context) ([]ShardState, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/replication/sharding-state",
		OKStatus:   []int{200},
		ErrorLabel: "get sharding state",
	})
	if err != nil {
		return nil, err
	}
	var out []ShardState
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("replication: decode sharding state: %w", err)
	}
	return out, nil
}
