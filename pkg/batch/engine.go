package batch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/vlog"
	"github.com/cuemby/vecta-go/pkg/vmetrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ObjectSubmitter sends one object batch to the server and returns its
// per-item raw outcomes, in request order.
type ObjectSubmitter func(ctx context.Context, objects []models.Object) ([]SubmitOutcome, error)

// ReferenceSubmitter sends one reference batch to the server.
type ReferenceSubmitter func(ctx context.Context, refs []models.BatchReference) ([]SubmitOutcome, error)

// SubmitOutcome is one item's raw per-item result from the server.
type SubmitOutcome struct {
	UUID   string
	Errors []string
}

// resultTracker correlates terminal (success or fatal) per-item outcomes
// back to the index the caller's AddObject/AddReference call was given,
// per spec.md §3's BatchResult invariant. An index under retry simply
// has no entry yet; it gains one once a later flush resolves it.
type resultTracker struct {
	mu     sync.Mutex
	uuids  map[int]string
	errors map[int]*models.BatchItemError
}

func newResultTracker() *resultTracker {
	return &resultTracker{uuids: map[int]string{}, errors: map[int]*models.BatchItemError{}}
}

func (t *resultTracker) recordSuccess(index int, uuid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.errors, index)
	t.uuids[index] = uuid
}

func (t *resultTracker) recordError(index int, err *models.BatchItemError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.uuids, index)
	t.errors[index] = err
}

// snapshot builds a BatchResult spanning every index handed out so far
// (0..n-1). An index with no recorded outcome yet (still queued or
// retrying) is left as the zero BatchResponseItem.
func (t *resultTracker) snapshot(n int, elapsed float64) *models.BatchResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := models.NewBatchResult(n, elapsed)
	for index, uuid := range t.uuids {
		if index < n {
			result.SetSuccess(index, uuid)
		}
	}
	for index, err := range t.errors {
		if index < n {
			result.SetError(index, err)
		}
	}
	return result
}

// Config configures an Engine.
type Config struct {
	NumWorkers  int
	ReadTimeout time.Duration
	Filter      ErrorFilter
	Stats       StatsFetcher // nil disables the dynamic size controller's rich-stats path

	SubmitObjects    ObjectSubmitter
	SubmitReferences ReferenceSubmitter
}

// Engine is the producer/consumer batch ingestion pipeline described in
// spec.md §4.8: a typed queue, a bounded worker pool sized at NumWorkers
// (default 1), and a dynamic size controller.
type Engine struct {
	cfg     Config
	queue   *queue
	sizer   *sizer
	sem     *semaphore.Weighted
	results *resultTracker

	mu    sync.Mutex
	group *errgroup.Group // outstanding pool flushes, joined by Flush(wait=true)
}

// NewEngine builds an Engine. NumWorkers defaults to 1 when unset.
func NewEngine(cfg Config) *Engine {
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}
	return &Engine{
		cfg:     cfg,
		queue:   newQueue(),
		sizer:   newSizer(cfg.Stats, cfg.NumWorkers, cfg.ReadTimeout),
		sem:     semaphore.NewWeighted(int64(cfg.NumWorkers)),
		results: newResultTracker(),
		group:   &errgroup.Group{},
	}
}

// Start launches the dynamic size controller's background polling loop.
func (e *Engine) Start(ctx context.Context) {
	if e.cfg.Stats != nil {
		e.sizer.Start(ctx)
	}
}

// Stop drains outstanding flushes, stops the size controller, and returns
// the BatchResult accumulated over the engine's lifetime.
func (e *Engine) Stop(ctx context.Context) (*models.BatchResult, error) {
	result, err := e.Flush(ctx, true)
	e.sizer.Stop()
	return result, err
}

// AddObject enqueues an object, generating a UUID if absent, and triggers
// an async flush once the queue crosses the recommended size — or blocks
// if the recommended size has dropped to 0 (throttle), per spec.md §4.8.
func (e *Engine) AddObject(ctx context.Context, obj models.Object) (int, error) {
	obj.EnsureUUID()
	idx := e.queue.AddObject(obj)
	return idx, e.maybeFlush(ctx)
}

// AddReference enqueues a reference for later flush.
func (e *Engine) AddReference(ctx context.Context, ref models.BatchReference) (int, error) {
	idx := e.queue.AddReference(ref)
	return idx, e.maybeFlush(ctx)
}

func (e *Engine) maybeFlush(ctx context.Context) error {
	recommended := e.sizer.Recommended()
	for recommended == 0 {
		// Throttle: block new submissions while the recommended size is 0.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
		recommended = e.sizer.Recommended()
	}

	if e.queue.ObjectLen() >= recommended || e.queue.ReferenceLen() >= recommended {
		e.flushAsync(ctx)
	}
	return nil
}

// flushAsync kicks off one worker-pool flush without blocking the caller,
// per spec.md §4.8 ("flush returns immediately after enqueuing" when the
// pool has capacity).
func (e *Engine) flushAsync(ctx context.Context) {
	if !e.sem.TryAcquire(1) {
		return // pool saturated; next submission or explicit Flush will retry
	}

	e.mu.Lock()
	e.group.Go(func() error {
		defer e.sem.Release(1)
		return e.flushOnce(ctx)
	})
	e.mu.Unlock()
}

// Flush drains both queues and returns the BatchResult correlating every
// index handed out so far to its terminal outcome, per spec.md §3/§8
// ("Batch partition law"). wait=true joins all outstanding pool workers
// before returning (context-managed exit semantics); wait=false flushes
// synchronously but does not wait for other in-flight pool workers.
func (e *Engine) Flush(ctx context.Context, wait bool) (*models.BatchResult, error) {
	start := time.Now()
	if err := e.flushOnce(ctx); err != nil {
		return nil, err
	}
	if !wait {
		return e.results.snapshot(e.queue.Total(), time.Since(start).Seconds()), nil
	}

	e.mu.Lock()
	group := e.group
	e.group = &errgroup.Group{}
	e.mu.Unlock()

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return e.results.snapshot(e.queue.Total(), time.Since(start).Seconds()), nil
}

// flushOnce drains the current queue contents and submits them
// synchronously. Reference batches always flush after their producing
// objects' batch has acknowledged, per spec.md §4.8.
func (e *Engine) flushOnce(ctx context.Context) error {
	if err := e.flushObjects(ctx); err != nil {
		return err
	}
	return e.flushReferences(ctx)
}

func (e *Engine) flushObjects(ctx context.Context) error {
	n := e.sizer.Recommended()
	if n <= 0 {
		n = e.queue.ObjectLen()
	}
	batch := e.queue.DrainObjects(n)
	if len(batch) == 0 {
		return nil
	}

	objs := make([]models.Object, len(batch))
	for i, q := range batch {
		objs[i] = q.object
	}

	timer := vmetrics.NewTimer(false)
	start := time.Now()
	outcomes, err := e.cfg.SubmitObjects(ctx, objs)
	timer.ObserveDuration()
	if err != nil {
		if isTimeout(err) {
			e.sizer.OnReadTimeout()
			e.requeueObjects(batch)
		}
		return fmt.Errorf("batch: submit objects: %w", err)
	}
	elapsed := time.Since(start).Seconds()

	e.handleOutcomes(batch, outcomes, false)

	if elapsed > 0 {
		vmetrics.ObserveBatchThroughput(float64(len(batch))/elapsed, false)
		e.sizer.RecordThroughput(float64(len(batch))/elapsed, false)
	}
	vmetrics.ObserveQueueLength(float64(e.queue.ObjectLen()), false)
	return nil
}

func (e *Engine) flushReferences(ctx context.Context) error {
	n := e.queue.ReferenceLen()
	if n == 0 {
		return nil
	}
	batch := e.queue.DrainReferences(n)

	refs := make([]models.BatchReference, len(batch))
	for i, q := range batch {
		refs[i] = q.reference
	}

	timer := vmetrics.NewTimer(true)
	start := time.Now()
	outcomes, err := e.cfg.SubmitReferences(ctx, refs)
	timer.ObserveDuration()
	if err != nil {
		return fmt.Errorf("batch: submit references: %w", err)
	}
	elapsed := time.Since(start).Seconds()

	e.handleReferenceOutcomes(batch, outcomes)

	if elapsed > 0 {
		vmetrics.ObserveBatchThroughput(float64(len(batch))/elapsed, true)
		e.sizer.RecordThroughput(float64(len(batch))/elapsed, true)
	}
	return nil
}

// handleOutcomes classifies each per-item outcome, re-enqueuing retriable
// objects under their original index, recording fatal failures and
// successes into the result tracker so Flush can report them back to the
// caller that submitted them, per spec.md §3/§8.
func (e *Engine) handleOutcomes(batch []queuedObject, outcomes []SubmitOutcome, isReference bool) {
	log := vlog.WithComponent("batch.engine")
	for i, q := range batch {
		if i >= len(outcomes) {
			continue
		}
		switch Classify(outcomes[i].Errors, e.cfg.Filter) {
		case ClassifySuccess:
			uuid := outcomes[i].UUID
			if uuid == "" {
				uuid = q.object.UUID
			}
			e.results.recordSuccess(q.index, uuid)
		case ClassifyRetry:
			e.queue.RequeueObject(q)
		case ClassifyFatal:
			log.Error().Int("index", q.index).Strs("errors", outcomes[i].Errors).Msg("batch object failed")
			e.results.recordError(q.index, &models.BatchItemError{Message: strings.Join(outcomes[i].Errors, "; ")})
		}
	}
}

func (e *Engine) handleReferenceOutcomes(batch []queuedReference, outcomes []SubmitOutcome) {
	log := vlog.WithComponent("batch.engine")
	for i, q := range batch {
		if i >= len(outcomes) {
			continue
		}
		switch Classify(outcomes[i].Errors, e.cfg.Filter) {
		case ClassifySuccess:
			e.results.recordSuccess(q.index, outcomes[i].UUID)
		case ClassifyRetry:
			e.queue.RequeueReference(q)
		case ClassifyFatal:
			log.Error().Int("index", q.index).Strs("errors", outcomes[i].Errors).Msg("batch reference failed")
			e.results.recordError(q.index, &models.BatchItemError{Message: strings.Join(outcomes[i].Errors, "; ")})
		}
	}
}

func (e *Engine) requeueObjects(batch []queuedObject) {
	for _, q := range batch {
		e.queue.RequeueObject(q)
	}
}

// timeoutError is implemented by errors that should trigger the read
// timeout/halve-size/retry path.
type timeoutError interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	te, ok := err.(timeoutError)
	return ok && te.Timeout()
}
