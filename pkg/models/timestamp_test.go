package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreationTimeConvertsUnixMillis(t *testing.T) {
	millis := int64(1700000000000)
	m := &MetadataReturn{CreationTimeUnix: &millis}
	got, ok := m.CreationTime()
	require.True(t, ok)
	assert.Equal(t, millis, got.UnixMilli())
}

func TestCreationTimeAbsentWhenNil(t *testing.T) {
	m := &MetadataReturn{}
	_, ok := m.CreationTime()
	assert.False(t, ok)
}
