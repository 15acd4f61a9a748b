package vecta

import (
	"context"

	"github.com/cuemby/vecta-go/pkg/executor"
	"github.com/cuemby/vecta-go/pkg/vconfig"
)

// AsyncClient is the async colour of the Client Root: it shares every
// piece of connected state with Client through the embedded *coordinator,
// and differs only in that Connect/Close return a Future instead of
// blocking, per spec.md Design Notes ("two hand-written surfaces sharing
// an internal executor").
type AsyncClient struct {
	*coordinator
}

// NewAsync builds an inert AsyncClient from cfg. No network activity
// occurs until Connect.
func NewAsync(cfg vconfig.ConnectConfig) *AsyncClient {
	return &AsyncClient{&coordinator{cfg: cfg}}
}

// Connect starts the same connect sequence Client.Connect runs, on a
// separate goroutine, and returns a Future the caller resolves later.
func (c *AsyncClient) Connect(ctx context.Context) *executor.Future[struct{}] {
	return executor.ExecuteAsync(ctx, c.coordinator.doConnect, identity[struct{}])
}

// Close starts the same teardown sequence Client.Close runs, on a
// separate goroutine, and returns a Future the caller resolves later.
func (c *AsyncClient) Close(ctx context.Context) *executor.Future[struct{}] {
	return executor.ExecuteAsync(ctx, c.coordinator.doClose, identity[struct{}])
}
