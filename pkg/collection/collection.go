// Package collection implements the per-collection facade composing data
// CRUD, batch, query, aggregate, tenants, config, and backup-of-one, per
// spec.md §4.10. Grounded on the teacher's pkg/client/client.go, whose
// typed wrapper methods (CreateService, GetNode, …) compose a single
// gRPC connection into a domain-specific surface; generalized here from
// one flat method set into a facade with sub-handles (Query, Batch,
// Config, Backup); data CRUD methods sit on Collection itself.
package collection

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/batch"
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/search"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/verrors"
)

// ConsistencyLevel is carried per call and expands to the server's wire
// encoding, per spec.md §5.
type ConsistencyLevel string

const (
	ConsistencyOne     ConsistencyLevel = "ONE"
	ConsistencyQuorum  ConsistencyLevel = "QUORUM"
	ConsistencyAll     ConsistencyLevel = "ALL"
)

// Collection is a lightweight, server-owned handle: it holds no schema
// state of its own beyond name/tenant/consistency, per spec.md §3.
type Collection struct {
	name        string
	tenant      string
	consistency ConsistencyLevel

	http  *transport.HTTP
	rpc   *rpc.Channel
	gate  *capability.Gate
	batch *batch.Engine
}

// New builds a Collection handle. name is normalized per
// models.NormalizeCollectionName.
func New(name string, http *transport.HTTP, rpcChan *rpc.Channel, gate *capability.Gate) *Collection {
	return &Collection{name: models.NormalizeCollectionName(name), http: http, rpc: rpcChan, gate: gate}
}

// WithTenant returns a cheap decorated handle carrying tenant into
// subsequent calls without mutating the receiver, per spec.md §4.10.
func (c *Collection) WithTenant(tenant string) *Collection {
	cp := *c
	cp.tenant = tenant
	return &cp
}

// WithConsistencyLevel returns a decorated handle carrying a consistency
// level into subsequent calls without mutating the receiver.
func (c *Collection) WithConsistencyLevel(level ConsistencyLevel) *Collection {
	cp := *c
	cp.consistency = level
	return &cp
}

// Insert creates one object (data.insert), assigning a UUID if absent.
func (c *Collection) Insert(ctx context.Context, obj models.Object) (string, error) {
	obj.EnsureUUID()
	obj.Tenant = c.tenant

	body := map[string]any{
		"class":      c.name,
		"id":         obj.UUID,
		"properties": propsToWire(obj.Properties),
	}
	if obj.Tenant != "" {
		body["tenant"] = obj.Tenant
	}

	params := map[string]string{}
	if c.consistency != "" {
		params["consistency"] = string(c.consistency)
	}

	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       "/objects",
		Body:       body,
		Params:     params,
		OKStatus:   []int{200},
		ErrorLabel: "insert object",
	})
	if err != nil {
		return "", err
	}
	return obj.UUID, nil
}

// GetByID fetches one object. A 404 is whitelisted to a nil, nil return
// rather than an error, per spec.md §7 ("404 on get_by_id ⇒ None").
func (c *Collection) GetByID(ctx context.Context, uuid string) (*models.Object, error) {
	params := map[string]string{}
	if c.tenant != "" {
		params["tenant"] = c.tenant
	}
	if c.consistency != "" {
		params["consistency"] = string(c.consistency)
	}

	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/objects/%s/%s", c.name, uuid),
		Params:     params,
		OKStatus:   []int{200, 404},
		ErrorLabel: "get object",
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == 404 {
		return nil, nil
	}

	var wire struct {
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
		Tenant     string         `json:"tenant"`
	}
	if err := resp.JSON(&wire); err != nil {
		return nil, fmt.Errorf("collection: decode object: %w", err)
	}
	obj := &models.Object{UUID: wire.ID, Tenant: wire.Tenant, Properties: map[string]models.PropertyValue{}}
	for k, v := range wire.Properties {
		obj.Properties[k] = models.DecodeJSONScalar(v)
	}
	return obj, nil
}

// Exists reports whether an object exists. A 404 is whitelisted to false
// rather than an error, per spec.md §7 ("404 on exists ⇒ false").
func (c *Collection) Exists(ctx context.Context, uuid string) (bool, error) {
	params := map[string]string{}
	if c.consistency != "" {
		params["consistency"] = string(c.consistency)
	}

	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "HEAD",
		Path:       fmt.Sprintf("/objects/%s/%s", c.name, uuid),
		Params:     params,
		OKStatus:   []int{204, 404},
		ErrorLabel: "check object existence",
	})
	if err != nil {
		return false, err
	}
	return resp.StatusCode == 204, nil
}

// Delete removes one object.
func (c *Collection) Delete(ctx context.Context, uuid string) error {
	params := map[string]string{}
	if c.consistency != "" {
		params["consistency"] = string(c.consistency)
	}

	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       fmt.Sprintf("/objects/%s/%s", c.name, uuid),
		Params:     params,
		OKStatus:   []int{204},
		ErrorLabel: "delete object",
	})
	return err
}

func propsToWire(props map[string]models.PropertyValue) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = propertyValueToWire(v)
	}
	return out
}

func propertyValueToWire(v models.PropertyValue) any {
	switch v.Kind {
	case models.PropertyValueText:
		return v.Text
	case models.PropertyValueInt:
		return v.Int
	case models.PropertyValueNumber:
		return v.Number
	case models.PropertyValueBool:
		return v.Bool
	case models.PropertyValueDate:
		return v.Date
	case models.PropertyValueUUID:
		return v.UUID
	case models.PropertyValueArray:
		if v.TextArray != nil {
			return v.TextArray
		}
		if v.IntArray != nil {
			return v.IntArray
		}
		if v.NumberArray != nil {
			return v.NumberArray
		}
		return v.BoolArray
	case models.PropertyValueNested:
		return propsToWire(v.Nested)
	default:
		return nil
	}
}

// Query exposes the full search surface over this collection.
func (c *Collection) Query() *search.Builder {
	b := search.NewBuilder(c.name)
	if c.tenant != "" {
		b = b.WithTenant(c.tenant)
	}
	return b
}

// Search executes a built search request over the RPC channel.
func (c *Collection) Search(ctx context.Context, req *rpc.SearchRequest) (search.Decoded, error) {
	reply, err := c.rpc.Search(ctx, req)
	if err != nil {
		return search.Decoded{}, err
	}
	return search.DecodeReply(reply), nil
}

// pageSize is fetch_objects_iterator's internal page size, per spec.md
// §4.10.
const pageSize = 100

// IterateObjects pages through every object in the collection via an
// after-cursor, calling visit for each page until a page returns empty,
// per spec.md §4.10.
func (c *Collection) IterateObjects(ctx context.Context, visit func([]models.Object) error) error {
	after := ""
	for {
		req, err := c.Query().Limit(pageSize).After(after).Build(c.gate)
		if err != nil && after == "" {
			// After() with an empty cursor on the first page is allowed;
			// only non-empty after conflicts with probes, which none are
			// set here, so this branch should not trigger in practice.
			return err
		}
		decoded, err := c.Search(ctx, req)
		if err != nil {
			return err
		}
		if len(decoded.Results) == 0 {
			return nil
		}
		objs := make([]models.Object, len(decoded.Results))
		for i, r := range decoded.Results {
			objs[i] = r.Object
		}
		if err := visit(objs); err != nil {
			return err
		}
		after = objs[len(objs)-1].UUID
		if after == "" {
			return nil
		}
	}
}

// Batch exposes the bulk ingestion engine for this collection.
func (c *Collection) Batch(cfg batch.Config) *batch.Engine {
	cfg.SubmitObjects = c.submitObjects
	cfg.SubmitReferences = c.submitReferences
	c.batch = batch.NewEngine(cfg)
	return c.batch
}

func (c *Collection) submitObjects(ctx context.Context, objects []models.Object) ([]batch.SubmitOutcome, error) {
	wire := make([]rpc.BatchObjectWire, len(objects))
	for i, o := range objects {
		wire[i] = rpc.BatchObjectWire{UUID: o.UUID, Properties: propsToWire(o.Properties), Vector: o.Vector, NamedVectors: o.NamedVectors}
	}
	reply, err := c.rpc.BatchObjects(ctx, &rpc.BatchObjectsRequest{Collection: c.name, Tenant: c.tenant, Objects: wire})
	if err != nil {
		return nil, err
	}
	out := make([]batch.SubmitOutcome, len(reply.Results))
	for i, r := range reply.Results {
		out[i] = batch.SubmitOutcome{UUID: r.UUID, Errors: r.Errors}
	}
	return out, nil
}

func (c *Collection) submitReferences(ctx context.Context, refs []models.BatchReference) ([]batch.SubmitOutcome, error) {
	out := make([]batch.SubmitOutcome, len(refs))
	for i, r := range refs {
		body := map[string]any{
			"from": fmt.Sprintf("weaviate://localhost/%s/%s/%s", c.name, r.FromUUID, r.FromProperty),
			"to":   r.To.Beacons(),
		}
		_, err := c.http.Send(ctx, transport.Request{
			Method:     "POST",
			Path:       "/batch/references",
			Body:       []any{body},
			OKStatus:   []int{200},
			ErrorLabel: "add reference",
		})
		if err != nil {
			out[i] = batch.SubmitOutcome{Errors: []string{err.Error()}}
			continue
		}
		out[i] = batch.SubmitOutcome{}
	}
	return out, nil
}

// ensureMultiTenancy is a guard several tenant operations share.
func (c *Collection) ensureMultiTenancy(enabled bool) error {
	if !enabled {
		return &verrors.InvalidInputError{Field: "tenant", Reason: "collection does not have multi-tenancy enabled"}
	}
	return nil
}
