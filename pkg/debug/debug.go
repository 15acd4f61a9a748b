// Package debug implements the diagnostic object-over-REST lookup, per
// spec.md §9's Client Root composition list. Grounded on
// original_source/weaviate/debug/executor.py's get_object_over_rest (a
// raw GET against the REST object path that bypasses the RPC data plane
// entirely, returning the object's stored vector(s) alongside its
// properties for support/debugging use) and debug/types.py's
// DebugRESTObject shape.
package debug

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/transport"
)

// Object is the REST-path debug view of a stored object: its properties
// plus whichever vector(s) it holds, unfiltered by the RPC data plane.
type Object struct {
	Collection       string
	UUID             string
	Tenant           string
	Properties       map[string]models.PropertyValue
	Vector           []float32
	NamedVectors     map[string][]float32
	CreationTimeUnix *int64
	LastUpdateUnix   *int64
}

// Client is the debug executor.
type Client struct {
	http *transport.HTTP
}

// New builds a debug Client over http.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// GetObjectOverREST fetches one object's stored vector(s) and properties
// directly over the REST object path, bypassing the RPC data plane. A
// 404 is whitelisted to a nil, nil return.
func (c *Client) GetObjectOverREST(ctx context.Context, collection, uuid string, tenant, nodeName string) (*Object, error) {
	params := map[string]string{}
	if tenant != "" {
		params["tenant"] = tenant
	}
	if nodeName != "" {
		params["node_name"] = nodeName
	}

	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/objects/%s/%s", collection, uuid),
		Params:     params,
		OKStatus:   []int{200, 404},
		ErrorLabel: "debug get object",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == 404 {
		return nil, nil
	}

	var wire struct {
		Collection       string                     `json:"class"`
		ID               string                     `json:"id"`
		Properties       map[string]any             `json:"properties"`
		Tenant           string                     `json:"tenant"`
		Vector           []float32                  `json:"vector"`
		Vectors          map[string][]float32       `json:"vectors"`
		CreationTimeUnix *int64                     `json:"creationTimeUnix"`
		LastUpdateUnix   *int64                     `json:"lastUpdateTimeUnix"`
	}
	if err := resp.JSON(&wire); err != nil {
		return nil, fmt.Errorf("debug: decode object: %w", err)
	}

	out := &Object{
		Collection:       wire.Collection,
		UUID:             wire.ID,
		Tenant:           wire.Tenant,
		Vector:           wire.Vector,
		NamedVectors:     wire.Vectors,
		CreationTimeUnix: wire.CreationTimeUnix,
		LastUpdateUnix:   wire.LastUpdateUnix,
		Properties:       make(map[string]models.PropertyValue, len(wire.Properties)),
	}
	for k, v := range wire.Properties {
		out.Properties[k] = models.DecodeJSONScalar(v)
	}
	return out, nil
}
