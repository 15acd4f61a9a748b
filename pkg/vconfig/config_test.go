package vconfig

import (
	"testing"
	"time"

	"github.com/cuemby/vecta-go/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnectConfigDefaults(t *testing.T) {
	cfg := NewConnectConfig("http://localhost:8080")
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 60*time.Second, cfg.ReadTimeout)
}

func TestWithAPIKeySetsCredentials(t *testing.T) {
	cfg := NewConnectConfig("http://localhost:8080", WithAPIKey("secret"))
	key, ok := cfg.Credentials.(auth.APIKey)
	require.True(t, ok)
	assert.Equal(t, "secret", key.Key)
}

func TestWithTimeoutOverridesDefaults(t *testing.T) {
	cfg := NewConnectConfig("http://localhost:8080", WithTimeout(2*time.Second, 5*time.Second))
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestWithEmbeddedEnables(t *testing.T) {
	cfg := NewConnectConfig("http://localhost:8080", WithEmbedded("/usr/local/bin/vecta-server", "/var/lib/vecta", 6789))
	assert.True(t, cfg.Embedded.Enabled)
	assert.Equal(t, 6789, cfg.Embedded.Port)
}
