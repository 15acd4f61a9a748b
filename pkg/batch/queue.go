// Package batch implements the producer/consumer ingestion pipeline:
// typed queues, a bounded worker pool, a dynamic size controller driven by
// observed server queue-length and throughput, error classification, and
// retry scheduling, per spec.md §4.8. Grounded on the teacher's
// pkg/worker/worker.go worker-pool and ticker-driven background-loop
// shapes, generalized from container execution to object/reference
// ingestion.
package batch

import (
	"sync"

	"github.com/cuemby/vecta-go/pkg/models"
)

// queuedObject and queuedReference preserve the producer-assigned index so
// results can be attributed back to the caller's input order, per spec.md
// §3/§4.8 ("Ordering: per submission call, input order is preserved").
type queuedObject struct {
	index  int
	object models.Object
}

type queuedReference struct {
	index     int
	reference models.BatchReference
}

// queue is a simple mutex-guarded FIFO of pending items, sized against a
// recommended-size budget maintained by the size controller.
type queue struct {
	mu        sync.Mutex
	objects   []queuedObject
	refs      []queuedReference
	nextIndex int
}

func newQueue() *queue {
	return &queue{}
}

// AddObject enqueues an object, returning the index it was assigned.
func (q *queue) AddObject(o models.Object) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := q.nextIndex
	q.nextIndex++
	q.objects = append(q.objects, queuedObject{index: idx, object: o})
	return idx
}

// AddReference enqueues a reference, returning the index it was assigned.
func (q *queue) AddReference(r models.BatchReference) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := q.nextIndex
	q.nextIndex++
	q.refs = append(q.refs, queuedReference{index: idx, reference: r})
	return idx
}

// DrainObjects removes and returns up to n queued objects.
func (q *queue) DrainObjects(n int) []queuedObject {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.objects) {
		n = len(q.objects)
	}
	batch := q.objects[:n]
	q.objects = q.objects[n:]
	return batch
}

// DrainReferences removes and returns up to n queued references.
func (q *queue) DrainReferences(n int) []queuedReference {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.refs) {
		n = len(q.refs)
	}
	batch := q.refs[:n]
	q.refs = q.refs[n:]
	return batch
}

// RequeueObject re-enqueues a drained object, preserving its original
// index so a retried item's eventual outcome still attributes to the
// index its caller was given, per spec.md §3 ("index position is the
// sole identity used to attribute results and errors").
func (q *queue) RequeueObject(o queuedObject) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.objects = append(q.objects, o)
}

// RequeueReference re-enqueues a drained reference, preserving its
// original index.
func (q *queue) RequeueReference(r queuedReference) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.refs = append(q.refs, r)
}

// Total reports how many indices have been handed out so far, the
// exclusive upper bound of every index a caller has seen from AddObject
// or AddReference.
func (q *queue) Total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.nextIndex
}

// ObjectLen reports the current object queue depth.
func (q *queue) ObjectLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.objects)
}

// ReferenceLen reports the current reference queue depth.
func (q *queue) ReferenceLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.refs)
}
