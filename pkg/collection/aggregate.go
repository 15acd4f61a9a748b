package collection

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/verrors"
)

// AggregateResult is the decoded outcome of an aggregate call, uniform
// across both wire transports the capability gate may select.
type AggregateResult struct {
	TotalCount int64
	Properties map[string]map[string]any
}

// AggregateOverAll runs an unfiltered aggregate over the whole collection,
// picking GraphQL/REST or the RPC Aggregate service per the capability
// gate's soft-gate decision (RPC from 1.29.0 onward), per spec.md §4.3/§6.
func (c *Collection) AggregateOverAll(ctx context.Context) (AggregateResult, error) {
	if c.gate.AggregateTransport() == capability.TransportRPC {
		return c.aggregateRPC(ctx)
	}
	return c.aggregateGraphQL(ctx)
}

func (c *Collection) aggregateRPC(ctx context.Context) (AggregateResult, error) {
	reply, err := c.rpc.Aggregate(ctx, &rpc.AggregateRequest{Collection: c.name, Tenant: c.tenant})
	if err != nil {
		return AggregateResult{}, err
	}
	if len(reply.Groups) == 0 {
		return AggregateResult{}, nil
	}
	g := reply.Groups[0]
	return AggregateResult{TotalCount: g.Count, Properties: g.Metrics}, nil
}

// aggregateGraphQL is the legacy pre-1.29 path: a GraphQL query
// posted to /v1/graphql, per the capability gate's soft-gate decision.
func (c *Collection) aggregateGraphQL(ctx context.Context) (AggregateResult, error) {
	query := fmt.Sprintf(`{Aggregate{%s{meta{count}}}}`, c.name)
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       "/graphql",
		Body:       map[string]any{"query": query},
		OKStatus:   []int{200},
		ErrorLabel: "aggregate over_all",
	})
	if err != nil {
		return AggregateResult{}, err
	}

	var wire struct {
		Data struct {
			Aggregate map[string][]struct {
				Meta struct {
					Count int64 `json:"count"`
				} `json:"meta"`
			} `json:"Aggregate"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := resp.JSON(&wire); err != nil {
		return AggregateResult{}, fmt.Errorf("collection: decode aggregate response: %w", err)
	}
	if len(wire.Errors) > 0 {
		return AggregateResult{}, &verrors.QueryError{Message: wire.Errors[0].Message}
	}

	results := wire.Data.Aggregate[c.name]
	if len(results) == 0 {
		return AggregateResult{}, nil
	}
	return AggregateResult{TotalCount: results[0].Meta.Count}, nil
}
