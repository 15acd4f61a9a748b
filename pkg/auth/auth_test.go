package auth

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyManagerHeader(t *testing.T) {
	m := NewManager(APIKey{Key: "secret-123"})
	assert.Equal(t, "Bearer secret-123", m.AuthorizationHeader())
	m.Close() // no-op, must not panic
}

type fakeSource struct {
	exchangeCount int32
	refreshCount  int32
	failNext      atomic.Bool
}

func (f *fakeSource) Exchange(ctx context.Context, creds Credentials) (Token, error) {
	atomic.AddInt32(&f.exchangeCount, 1)
	return Token{AccessToken: "tok-0", RefreshToken: "refresh-0", ExpiresIn: 50 * time.Millisecond, FetchedAt: time.Now()}, nil
}

func (f *fakeSource) Refresh(ctx context.Context, refreshToken string, storedCreds Credentials) (Token, error) {
	atomic.AddInt32(&f.refreshCount, 1)
	return Token{AccessToken: "tok-1", RefreshToken: "refresh-1", ExpiresIn: time.Hour, FetchedAt: time.Now()}, nil
}

func TestOIDCManagerRefreshesInBackground(t *testing.T) {
	src := &fakeSource{}
	m, err := NewOIDCManager(context.Background(), OIDCClientCredentials{ClientID: "c"}, src)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-0", m.AuthorizationHeader())

	assert.Eventually(t, func() bool {
		return m.AuthorizationHeader() == "Bearer tok-1"
	}, 3*time.Second, 10*time.Millisecond)

	m.Close()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&src.refreshCount), int32(1))
}
