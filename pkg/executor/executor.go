// Package executor implements the colour-polymorphism call shape of
// spec.md §4.4: a single implementation of "call the server, then map the
// raw result" that two externally-typed surfaces (sync and async) share.
// Go has no awaitable duck-typing, so rather than the teacher's single
// wrapped call graph, this package gives each colour its own thin entry
// point over one shared call, grounded on the teacher's pkg/worker.go
// split between a synchronous method (executeContainer) and its
// goroutine-dispatched caller (containerExecutorLoop).
package executor

import "context"

// Execute runs call, then maps its result through onResponse. This is the
// synchronous colour: it blocks the calling goroutine until call and
// onResponse both return.
func Execute[T, R any](ctx context.Context, call func(context.Context) (T, error), onResponse func(T) (R, error)) (R, error) {
	var zero R
	raw, err := call(ctx)
	if err != nil {
		return zero, err
	}
	return onResponse(raw)
}

// Future is the async colour's handle on an in-flight Execute call. Get
// blocks until the result is ready; it may be called more than once and
// from more than one goroutine.
type Future[R any] struct {
	done   chan struct{}
	result R
	err    error
}

// Get blocks until the future resolves, or ctx is done, whichever comes
// first.
func (f *Future[R]) Get(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// ExecuteAsync is the async colour: it starts call/onResponse on a new
// goroutine and returns immediately with a Future the caller awaits later.
func ExecuteAsync[T, R any](ctx context.Context, call func(context.Context) (T, error), onResponse func(T) (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.result, f.err = Execute(ctx, call, onResponse)
	}()
	return f
}
