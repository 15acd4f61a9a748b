package models

// BatchObject and BatchReference are the two item kinds a BatchRequest
// carries; the engine preserves the input order of both for per-index
// error attribution, per spec.md §3.
type BatchObject struct {
	Object Object
}

type BatchReference struct {
	FromUUID     string
	FromProperty string
	To           Reference
}

// BatchRequest is an ordered sequence of items submitted together; index
// position is the sole identity used to attribute results and errors.
type BatchRequest struct {
	Objects    []BatchObject
	References []BatchReference
}

// BatchItemError is a single item's failure, keeping enough context to
// support exclude/include error-filtering in the batch engine.
type BatchItemError struct {
	Message string
	Code    string
}

func (e *BatchItemError) Error() string { return e.Message }

// BatchResult is the outcome of one producer-consumer batch submission.
// Invariants (spec.md §3): len(AllResponses) == input length, and the
// UUIDs/Errors index sets partition {0 .. n-1} with no overlap.
type BatchResult struct {
	AllResponses []BatchResponseItem
	UUIDs        map[int]string
	Errors       map[int]*BatchItemError
	ElapsedSeconds float64
}

// BatchResponseItem is the tagged per-index outcome, either a UUID or an
// error, mirroring AllResponses's ordered parallel structure.
type BatchResponseItem struct {
	UUID  string
	Err   *BatchItemError
}

// HasErrors reports whether any item in the batch failed.
func (r *BatchResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// NewBatchResult allocates an empty BatchResult for n items. SetSuccess and
// SetError keep the disjoint-partition invariant: recording an outcome at an
// index removes any earlier outcome of the other kind there, so each index
// sits in at most one of UUIDs or Errors.
func NewBatchResult(n int, elapsed float64) *BatchResult {
	return &BatchResult{
		AllResponses:   make([]BatchResponseItem, n),
		UUIDs:          make(map[int]string),
		Errors:         make(map[int]*BatchItemError),
		ElapsedSeconds: elapsed,
	}
}

// SetSuccess records a successful outcome at index i.
func (r *BatchResult) SetSuccess(i int, uuid string) {
	r.AllResponses[i] = BatchResponseItem{UUID: uuid}
	r.UUIDs[i] = uuid
	delete(r.Errors, i)
}

// SetError records a failed outcome at index i.
func (r *BatchResult) SetError(i int, err *BatchItemError) {
	r.AllResponses[i] = BatchResponseItem{Err: err}
	r.Errors[i] = err
	delete(r.UUIDs, i)
}
