package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchResultPartitionInvariant(t *testing.T) {
	r := NewBatchResult(3, 0.5)
	r.SetSuccess(0, "uuid-0")
	r.SetError(1, &BatchItemError{Message: "boom"})
	r.SetSuccess(2, "uuid-2")

	assert.Len(t, r.AllResponses, 3)
	assert.True(t, r.HasErrors())

	seen := map[int]bool{}
	for i := range r.UUIDs {
		seen[i] = true
	}
	for i := range r.Errors {
		assert.False(t, seen[i], "index %d present in both UUIDs and Errors", i)
		seen[i] = true
	}
	assert.Len(t, seen, 3)
}

func TestBatchResultNoErrors(t *testing.T) {
	r := NewBatchResult(1, 0.1)
	r.SetSuccess(0, "uuid-0")
	assert.False(t, r.HasErrors())
}
