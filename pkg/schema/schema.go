// Package schema is a thin CRUD executor over the server's cluster-wide
// schema endpoint, per spec.md §6 (`GET|POST|DELETE /v1/schema[/{Collection}[/properties|/shards|/tenants[/{tenant}]]]`).
// Per-collection schema operations (describe/update/add-property/shards)
// are also reachable off a collection handle in pkg/collection; this
// package is the entry point for listing and creating collections
// themselves, before a Collection handle exists.
package schema

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/transport"
)

// Client wraps the HTTP control plane for cluster-wide schema CRUD.
type Client struct {
	http *transport.HTTP
}

// New builds a schema client.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// List fetches every collection's schema.
func (c *Client) List(ctx context.Context) ([]models.Collection, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/schema",
		OKStatus:   []int{200},
		ErrorLabel: "list schema",
	})
	if err != nil {
		return nil, err
	}
	var wire struct {
		Collections []models.Collection `json:"collections"`
	}
	if err := resp.JSON(&wire); err != nil {
		return nil, fmt.Errorf("schema: decode collections: %w", err)
	}
	return wire.Collections, nil
}

// Create defines a new collection.
func (c *Client) Create(ctx context.Context, collection models.Collection) error {
	collection.Name = models.NormalizeCollectionName(collection.Name)
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       "/schema",
		Body:       collection,
		OKStatus:   []int{200},
		ErrorLabel: "create collection",
	})
	return err
}

// Delete drops a collection and every object it holds.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       fmt.Sprintf("/schema/%s", models.NormalizeCollectionName(name)),
		OKStatus:   []int{200},
		ErrorLabel: "delete collection",
	})
	return err
}

// Exists reports whether a collection exists, comparing names
// case-insensitively as admin paths do per spec.md's collection note.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/schema/%s", models.NormalizeCollectionName(name)),
		OKStatus:   []int{200, 404},
		ErrorLabel: "check collection existence",
	})
	if err != nil {
		return false, err
	}
	return resp.StatusCode == 200, nil
}
