package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSizerColdStartDoubles(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	s.recommended.Store(4)
	s.applyRichStats(NodeStats{QueueLength: 0, HasQueueLength: true})
	assert.Equal(t, 8, s.Recommended())
}

func TestSizerColdStartCapsAt25(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	s.recommended.Store(20)
	s.applyRichStats(NodeStats{QueueLength: 0, HasQueueLength: true})
	assert.Equal(t, 25, s.Recommended())
}

func TestSizerSteadyState(t *testing.T) {
	s := newSizer(nil, 2, time.Second)
	// ratio = 200/100 = 2.0, within (1.9, 2.1)
	s.applyRichStats(NodeStats{RatePerSecond: 100, QueueLength: 200, HasQueueLength: true})
	assert.Equal(t, 50, s.Recommended()) // 100/2
}

func TestSizerHeadroomBelowRatio(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	s.recommended.Store(10)
	// ratio = 50/100 = 0.5 <= 1.9
	s.applyRichStats(NodeStats{RatePerSecond: 100, QueueLength: 50, HasQueueLength: true})
	// current*1.5 = 15, headroom = (100/1)*2/0.5 = 400 -> min is 15
	assert.Equal(t, 15, s.Recommended())
}

func TestSizerBackoffRatio(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	// ratio = 500/100 = 5, within [2.1, 10)
	s.applyRichStats(NodeStats{RatePerSecond: 100, QueueLength: 500, HasQueueLength: true})
	// (100/1)*2/5 = 40
	assert.Equal(t, 40, s.Recommended())
}

func TestSizerStopsAtHighRatio(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	// ratio = 2000/100 = 20 >= 10
	s.applyRichStats(NodeStats{RatePerSecond: 100, QueueLength: 2000, HasQueueLength: true})
	assert.Equal(t, 0, s.Recommended())
}

func TestSizerOnReadTimeoutHalvesWithFloor(t *testing.T) {
	s := newSizer(nil, 1, time.Second)
	s.recommended.Store(4)
	s.OnReadTimeout()
	assert.Equal(t, 2, s.Recommended())

	s.recommended.Store(1)
	s.OnReadTimeout()
	assert.Equal(t, 1, s.Recommended())
}

func TestSizerThroughputFallback(t *testing.T) {
	s := newSizer(nil, 1, 20*time.Second) // creation_time = min(20/10, 2) = 2
	s.recommended.Store(10)
	s.RecordThroughput(100, false) // avg=100
	s.applyThroughputFallback(false)
	// byThroughput = 100*2*0.75 = 150; current+250 = 260 -> min is 150
	assert.Equal(t, 150, s.Recommended())
}

func TestSizerStopSetsSmallPositiveSize(t *testing.T) {
	s := newSizer(func(ctx context.Context) (NodeStats, error) { return NodeStats{}, nil }, 1, time.Second)
	s.Start(context.Background())
	s.recommended.Store(0)
	s.Stop()
	assert.Equal(t, 1, s.Recommended())
}
