package vconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutAndGetJoinState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	cache, err := OpenCache(path)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.PutJoinState(JoinState{Profile: "dev", ServerVersion: "1.29.0"}))

	got, ok, err := cache.GetJoinState("dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.29.0", got.ServerVersion)
}

func TestCacheGetJoinStateMissingIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	cache, err := OpenCache(path)
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.GetJoinState("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}
