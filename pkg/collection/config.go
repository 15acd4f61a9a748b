package collection

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/transport"
)

// Config exposes the schema-management sub-surface of a collection:
// describe/update/add-property/add-reference/get-shards/update-shards,
// per spec.md §4.10.
type Config struct {
	c *Collection
}

// Config returns the schema-management handle for this collection.
func (c *Collection) Config() Config {
	return Config{c: c}
}

// Describe fetches the server's current schema snapshot for the
// collection, per spec.md's "Holds config snapshot; no internal
// mutation of config without a round-trip."
func (cfg Config) Describe(ctx context.Context) (models.Collection, error) {
	resp, err := cfg.c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/schema/%s", cfg.c.name),
		OKStatus:   []int{200},
		ErrorLabel: "describe collection",
	})
	if err != nil {
		return models.Collection{}, err
	}
	var out models.Collection
	if err := resp.JSON(&out); err != nil {
		return models.Collection{}, fmt.Errorf("collection: decode schema: %w", err)
	}
	return out, nil
}

// Update pushes mutable collection-level settings (description,
// replication factor, vectorizer config) to the server.
func (cfg Config) Update(ctx context.Context, patch models.Collection) error {
	_, err := cfg.c.http.Send(ctx, transport.Request{
		Method:     "PUT",
		Path:       fmt.Sprintf("/schema/%s", cfg.c.name),
		Body:       patch,
		OKStatus:   []int{200},
		ErrorLabel: "update collection config",
	})
	return err
}

// AddProperty appends a new property definition to the collection's
// schema; existing objects are left untouched.
func (cfg Config) AddProperty(ctx context.Context, prop models.Property) error {
	_, err := cfg.c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/schema/%s/properties", cfg.c.name),
		Body:       prop,
		OKStatus:   []int{200},
		ErrorLabel: "add property",
	})
	return err
}

// AddReference appends a reference-typed property naming one or more
// target collections.
func (cfg Config) AddReference(ctx context.Context, name string, targetCollections []string) error {
	prop := models.Property{Name: name, DataType: models.DataTypeReference, TargetCollections: targetCollections}
	return cfg.AddProperty(ctx, prop)
}

// ShardInfo describes one shard's placement and status.
type ShardInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Node   string `json:"node,omitempty"`
}

// GetShards lists the collection's shards and their current status.
func (cfg Config) GetShards(ctx context.Context) ([]ShardInfo, error) {
	resp, err := cfg.c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/schema/%s/shards", cfg.c.name),
		OKStatus:   []int{200},
		ErrorLabel: "get shards",
	})
	if err != nil {
		return nil, err
	}
	var out []ShardInfo
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("collection: decode shards: %w", err)
	}
	return out, nil
}

// UpdateShards sets the READONLY/READY status of one named shard.
func (cfg Config) UpdateShards(ctx context.Context, shard, status string) error {
	_, err := cfg.c.http.Send(ctx, transport.Request{
		Method:     "PUT",
		Path:       fmt.Sprintf("/schema/%s/shards/%s", cfg.c.name, shard),
		Body:       map[string]string{"status": status},
		OKStatus:   []int{200},
		ErrorLabel: "update shard status",
	})
	return err
}
