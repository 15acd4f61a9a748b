package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cuemby/vecta-go/pkg/vlog"
	"github.com/cuemby/vecta-go/pkg/vmetrics"
)

// NodeStats is the per-node congestion signal the size controller polls
// for, per spec.md §4.8. Rich stats carry both fields; a server that
// leaves QueueLength unset (HasQueueLength false), or reports a non-empty
// queue without a positive RatePerSecond, gets the sliding-window sizing
// instead.
type NodeStats struct {
	RatePerSecond   float64
	QueueLength     int64
	HasQueueLength  bool
}

// StatsFetcher retrieves the latest NodeStats, normally backed by a REST
// call to the server's node-stats endpoint.
type StatsFetcher func(ctx context.Context) (NodeStats, error)

// sizer owns the recommended batch size and the background polling loop
// that adjusts it, per spec.md §4.8's exact ratio-threshold formulas.
type sizer struct {
	fetch      StatsFetcher
	numWorkers int
	readTimeout time.Duration

	recommended atomic.Int64 // current recommended object batch size

	// Sliding-window fallback state, guarded by mu.
	mu               sync.Mutex
	objectThroughput []float64
	refThroughput    []float64

	cancel context.CancelFunc
	done   chan struct{}
}

const (
	minRecommendedSize     = 1
	maxColdStartSize       = 25
	slidingWindowSize      = 5
	throughputSizeIncrement = 250
)

// newSizer builds a sizer with an initial recommended size of 1 (cold
// start), matching "default 1" worker/size semantics from spec.md §4.8.
func newSizer(fetch StatsFetcher, numWorkers int, readTimeout time.Duration) *sizer {
	s := &sizer{fetch: fetch, numWorkers: numWorkers, readTimeout: readTimeout}
	s.recommended.Store(1)
	vmetrics.ObserveRecommendedSize(1)
	return s
}

// Recommended returns the current recommended object batch size.
func (s *sizer) Recommended() int {
	return int(s.recommended.Load())
}

// Start launches the background polling loop. Call Stop to shut it down.
func (s *sizer) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(runCtx)
}

// Stop sets the recommended size to a small positive number so the final
// batch drains, then stops the polling loop, per spec.md §4.8 ("On
// shutdown: set recommended size to a small positive number so the final
// batch drains").
func (s *sizer) Stop() {
	s.recommended.Store(1)
	vmetrics.ObserveRecommendedSize(1)
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *sizer) loop(ctx context.Context) {
	defer close(s.done)
	log := vlog.WithComponent("batch.sizer")
	interval := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		stats, err := s.fetch(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("node stats fetch failed, falling back to fast poll")
			interval = 100 * time.Millisecond
			continue
		}
		interval = 500 * time.Millisecond

		if !stats.HasQueueLength {
			// Open question (a) in DESIGN.md: servers that omit
			// queue_length fall back to throughput-only sizing rather
			// than raising an error. Preserved from the source as-is.
			s.applyThroughputFallback(false)
			continue
		}

		s.applyRichStats(stats)
	}
}

// applyRichStats implements the exact ratio-threshold formulas of spec.md
// §4.8.
func (s *sizer) applyRichStats(stats NodeStats) {
	current := float64(s.Recommended())

	if stats.QueueLength == 0 {
		next := current * 2
		if next > maxColdStartSize {
			next = maxColdStartSize
		}
		s.setRecommended(next)
		return
	}

	if stats.RatePerSecond <= 0 {
		// Open question (a) in DESIGN.md: no rate_per_second means no
		// ratio, so size from observed throughput instead.
		s.applyThroughputFallback(false)
		return
	}
	ratio := float64(stats.QueueLength) / stats.RatePerSecond
	steadyState := stats.RatePerSecond / float64(s.numWorkers)

	switch {
	case ratio > 1.9 && ratio < 2.1:
		s.setRecommended(steadyState)
	case ratio <= 1.9:
		headroom := steadyState * 2 / ratio
		next := current * 1.5
		if headroom < next {
			next = headroom
		}
		s.setRecommended(next)
	case ratio < 10:
		s.setRecommended(steadyState * 2 / ratio)
	default:
		s.setRecommended(0)
	}
}

// RecordThroughput feeds one flush's observed objects/sec or refs/sec into
// the sliding window used when the server exposes no rich stats.
func (s *sizer) RecordThroughput(objectsPerSec float64, isReference bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isReference {
		s.refThroughput = pushWindow(s.refThroughput, objectsPerSec, slidingWindowSize)
	} else {
		s.objectThroughput = pushWindow(s.objectThroughput, objectsPerSec, slidingWindowSize)
	}
}

func pushWindow(window []float64, v float64, max int) []float64 {
	window = append(window, v)
	if len(window) > max {
		window = window[len(window)-max:]
	}
	return window
}

// applyThroughputFallback implements spec.md §4.8's sliding-window
// fallback: recommended = min(current+250, avg*creation_time*0.75), where
// creation_time = min(read_timeout/10, 2).
func (s *sizer) applyThroughputFallback(isReference bool) {
	s.mu.Lock()
	window := s.objectThroughput
	if isReference {
		window = s.refThroughput
	}
	avg := average(window)
	s.mu.Unlock()

	if avg == 0 {
		return
	}

	creationTime := s.readTimeout.Seconds() / 10
	if creationTime > 2 {
		creationTime = 2
	}

	current := float64(s.Recommended())
	byThroughput := avg * creationTime * 0.75
	next := current + throughputSizeIncrement
	if byThroughput < next {
		next = byThroughput
	}
	s.setRecommended(next)
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func (s *sizer) setRecommended(v float64) {
	if v < 0 {
		v = 0
	}
	s.recommended.Store(int64(v))
	vmetrics.ObserveRecommendedSize(v)
}

// OnReadTimeout halves the recommended object size, floored at 1, and
// signals the batch should be retried, per spec.md §4.8.
func (s *sizer) OnReadTimeout() {
	current := s.Recommended()
	next := current / 2
	if next < minRecommendedSize {
		next = minRecommendedSize
	}
	s.recommended.Store(int64(next))
	vmetrics.ObserveRecommendedSize(float64(next))
}
