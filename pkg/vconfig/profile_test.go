package vconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfileFileMissingIsEmpty(t *testing.T) {
	pf, err := LoadProfileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, pf.Profiles)
}

func TestSaveAndLoadProfileFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	pf := ProfileFile{ActiveProfile: "dev"}
	pf = pf.Upsert(Profile{Name: "dev", BaseURL: "http://localhost:8080", APIKey: "k"})

	require.NoError(t, SaveProfileFile(path, pf))

	loaded, err := LoadProfileFile(path)
	require.NoError(t, err)
	active, ok := loaded.Active()
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080", active.BaseURL)
}

func TestUpsertReplacesExistingProfile(t *testing.T) {
	pf := ProfileFile{}
	pf = pf.Upsert(Profile{Name: "dev", BaseURL: "http://a"})
	pf = pf.Upsert(Profile{Name: "dev", BaseURL: "http://b"})
	require.Len(t, pf.Profiles, 1)
	assert.Equal(t, "http://b", pf.Profiles[0].BaseURL)
}
