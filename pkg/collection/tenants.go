package collection

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/transport"
)

// Tenants lists every tenant of the collection.
func (c *Collection) Tenants(ctx context.Context) ([]models.Tenant, error) {
	reply, err := c.rpc.TenantsGet(ctx, &rpc.TenantsGetRequest{Collection: c.name})
	if err != nil {
		return nil, err
	}
	out := make([]models.Tenant, len(reply.Tenants))
	for i, t := range reply.Tenants {
		out[i] = models.Tenant{Name: t.Name, ActivityStatus: models.TenantActivityStatus(t.ActivityStatus).Normalize()}
	}
	return out, nil
}

// CreateTenants adds tenants, chunking updates larger than 100 client-side,
// per spec.md §3.
func (c *Collection) CreateTenants(ctx context.Context, tenants []models.Tenant) error {
	for _, t := range tenants {
		if err := models.ValidateWritable(t.ActivityStatus); err != nil {
			return err
		}
	}
	for _, chunk := range models.ChunkTenants(tenants) {
		if err := c.postTenants(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) postTenants(ctx context.Context, tenants []models.Tenant) error {
	wire := make([]map[string]any, len(tenants))
	for i, t := range tenants {
		wire[i] = map[string]any{"name": t.Name, "activityStatus": string(t.ActivityStatus.Normalize())}
	}
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/schema/%s/tenants", c.name),
		Body:       wire,
		OKStatus:   []int{200},
		ErrorLabel: "create tenants",
	})
	return err
}
