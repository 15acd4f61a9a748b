package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMapsResponse(t *testing.T) {
	got, err := Execute(context.Background(),
		func(ctx context.Context) (int, error) { return 21, nil },
		func(n int) (string, error) { return fmt.Sprintf("n=%d", n*2), nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "n=42", got)
}

func TestExecutePropagatesCallError(t *testing.T) {
	_, err := Execute(context.Background(),
		func(ctx context.Context) (int, error) { return 0, fmt.Errorf("boom") },
		func(n int) (string, error) { return "", nil },
	)
	assert.EqualError(t, err, "boom")
}

func TestExecuteAsyncResolves(t *testing.T) {
	f := ExecuteAsync(context.Background(),
		func(ctx context.Context) (int, error) { return 5, nil },
		func(n int) (int, error) { return n + 1, nil },
	)
	got, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestFutureGetRespectsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	f := ExecuteAsync(context.Background(),
		func(ctx context.Context) (int, error) {
			<-block
			return 1, nil
		},
		func(n int) (int, error) { return n, nil },
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	close(block)
}
