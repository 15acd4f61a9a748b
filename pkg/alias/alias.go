// Package alias implements CRUD over the collection-alias endpoints, per
// spec.md §6's documented `/v1/aliases[/{alias}]` paths. Grounded on
// original_source/weaviate/aliases/executor.py (list_all/get/create/
// update/delete/exists over the same path family), styled as a thin
// client-side executor the way pkg/rbac, pkg/replication, and pkg/schema
// are.
package alias

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/transport"
)

// Alias maps a short name to a target collection.
type Alias struct {
	Name             string `json:"alias"`
	TargetCollection string `json:"class"`
}

// Client is the alias CRUD executor.
type Client struct {
	http *transport.HTTP
}

// New builds an alias Client over http.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// ListAll returns every alias defined on the cluster, optionally filtered
// to one collection when collection is non-empty.
func (c *Client) ListAll(ctx context.Context, collection string) ([]Alias, error) {
	params := map[string]string{}
	if collection != "" {
		params["class"] = collection
	}
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/aliases",
		Params:     params,
		OKStatus:   []int{200},
		ErrorLabel: "list aliases",
	})
	if err != nil {
		return nil, err
	}
	var wire struct {
		Aliases []Alias `json:"aliases"`
	}
	if err := resp.JSON(&wire); err != nil {
		return nil, fmt.Errorf("alias: decode list: %w", err)
	}
	return wire.Aliases, nil
}

// Get fetches one alias. A 404 is whitelisted to a nil, nil return.
func (c *Client) Get(ctx context.Context, name string) (*Alias, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/aliases/" + name,
		OKStatus:   []int{200, 404},
		ErrorLabel: "get alias",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == 404 {
		return nil, nil
	}
	var a Alias
	if err := resp.JSON(&a); err != nil {
		return nil, fmt.Errorf("alias: decode: %w", err)
	}
	return &a, nil
}

// Create points a new alias at targetCollection.
func (c *Client) Create(ctx context.Context, name, targetCollection string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       "/aliases",
		Body:       Alias{Name: name, TargetCollection: targetCollection},
		OKStatus:   []int{200},
		ErrorLabel: "create alias",
	})
	return err
}

// Update repoints an existing alias at newTargetCollection.
func (c *Client) Update(ctx context.Context, name, newTargetCollection string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "PUT",
		Path:       "/aliases/" + name,
		Body:       map[string]string{"class": newTargetCollection},
		OKStatus:   []int{200},
		ErrorLabel: "update alias",
	})
	return err
}

// Delete removes an alias.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       "/aliases/" + name,
		OKStatus:   []int{204},
		ErrorLabel: "delete alias",
	})
	return err
}

// Exists reports whether an alias is defined.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	a, err := c.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return a != nil, nil
}
