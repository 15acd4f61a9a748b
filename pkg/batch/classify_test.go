package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySuccess(t *testing.T) {
	assert.Equal(t, ClassifySuccess, Classify(nil, ErrorFilter{}))
	assert.Equal(t, ClassifySuccess, Classify([]string{}, ErrorFilter{}))
}

func TestClassifyRetryByDefault(t *testing.T) {
	assert.Equal(t, ClassifyRetry, Classify([]string{"connection reset"}, ErrorFilter{}))
}

func TestClassifyExcludeMakesFatal(t *testing.T) {
	f := ErrorFilter{Exclude: []string{"invalid property"}}
	assert.Equal(t, ClassifyFatal, Classify([]string{"invalid property: foo"}, f))
}

func TestClassifyIncludeRequiresMatch(t *testing.T) {
	f := ErrorFilter{Include: []string{"timeout"}}
	assert.Equal(t, ClassifyFatal, Classify([]string{"invalid property"}, f))
	assert.Equal(t, ClassifyRetry, Classify([]string{"read timeout"}, f))
}
