package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	// HOME is pointed at an empty temp dir so these tests never touch a
	// developer's real ~/.vecta/config.yaml.
	t.Setenv("HOME", t.TempDir())

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("profile", "", "")
	cmd.Flags().String("server", "", "")
	cmd.Flags().String("grpc-addr", "", "")
	cmd.Flags().String("api-key", "", "")
	return cmd
}

func TestResolveProfileFlagOverridesEmptyProfileFile(t *testing.T) {
	cmd := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("server", "http://localhost:8080"))
	require.NoError(t, cmd.Flags().Set("api-key", "k"))

	p, err := resolveProfile(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", p.BaseURL)
	assert.Equal(t, "k", p.APIKey)
}

func TestResolveProfileErrorsWithoutServerOrProfile(t *testing.T) {
	cmd := newTestCmd(t)
	_, err := resolveProfile(cmd)
	assert.Error(t, err)
}

func TestResolveProfileNamedProfileNotFound(t *testing.T) {
	cmd := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("profile", "missing"))

	_, err := resolveProfile(cmd)
	assert.Error(t, err)
}
