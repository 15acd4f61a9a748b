// Package auth owns credential material for a client connection: building
// the Authorization header/metadata value, and running the background
// token-refresh scheduler for OIDC flows. Grounded on the teacher's
// pkg/manager/token.go (TokenManager: sync.RWMutex-guarded map, generate/
// validate/revoke/cleanup lifecycle) generalized from server-side join
// tokens to client-side bearer credentials, and on pkg/worker.go's
// ticker+stopCh background-loop shape, generalized to a single refresh
// goroutine tied to a context.Context.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cuemby/vecta-go/pkg/vlog"
)

// Credentials is one of the three shapes spec.md §4.2 recognizes.
type Credentials interface {
	isCredentials()
}

// APIKey produces a static Authorization header; no refresh scheduler runs.
type APIKey struct {
	Key string
}

func (APIKey) isCredentials() {}

// OIDCClientCredentials performs the OIDC client-credentials grant.
type OIDCClientCredentials struct {
	ClientID     string
	ClientSecret string
	Scope        string
}

func (OIDCClientCredentials) isCredentials() {}

// OIDCResourceOwnerPassword performs the OIDC resource-owner-password grant.
type OIDCResourceOwnerPassword struct {
	Username string
	Password string
	ClientID string
	Scope    string
}

func (OIDCResourceOwnerPassword) isCredentials() {}

// TokenSource exchanges and refreshes OIDC tokens against a discovered
// token endpoint. The transport package implements this against the real
// HTTP client; tests substitute a fake.
type TokenSource interface {
	// Exchange performs the initial grant.
	Exchange(ctx context.Context, creds Credentials) (Token, error)
	// Refresh uses a refresh_token, or re-exchanges with storedCreds if
	// refreshToken is empty (spec.md §4.2: "If the token endpoint stops
	// returning refresh_token ... the scheduler re-fetches using stored
	// credentials").
	Refresh(ctx context.Context, refreshToken string, storedCreds Credentials) (Token, error)
}

// Token is one OIDC token exchange's result.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	FetchedAt    time.Time
}

// Expiry returns the absolute instant this token should be considered
// expired.
func (t Token) Expiry() time.Time {
	return t.FetchedAt.Add(t.ExpiresIn)
}

// Manager holds the active credentials and, for OIDC flows, the current
// token plus the background refresh goroutine. One Manager per client.
type Manager struct {
	mu          sync.RWMutex
	staticKey   string // non-empty only for APIKey credentials
	token       *Token
	creds       Credentials
	source      TokenSource
	cancel      context.CancelFunc
	refreshDone chan struct{}
}

// NewManager builds a Manager for static API-key credentials: no refresh
// scheduler is started.
func NewManager(creds APIKey) *Manager {
	return &Manager{staticKey: creds.Key, creds: creds}
}

// NewOIDCManager performs the initial token exchange and starts the
// refresh scheduler, per spec.md §4.2.
func NewOIDCManager(ctx context.Context, creds Credentials, source TokenSource) (*Manager, error) {
	tok, err := source.Exchange(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("auth: initial token exchange: %w", err)
	}
	runCtx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		token:       &tok,
		creds:       creds,
		source:      source,
		cancel:      cancel,
		refreshDone: make(chan struct{}),
	}
	go m.refreshLoop(runCtx)
	return m, nil
}

// AuthorizationHeader returns the current bearer token header value.
func (m *Manager) AuthorizationHeader() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.staticKey != "" {
		return "Bearer " + m.staticKey
	}
	if m.token != nil {
		return "Bearer " + m.token.AccessToken
	}
	return ""
}

// Close stops the refresh scheduler, if one is running. Safe to call more
// than once and on a static-key Manager with no scheduler.
func (m *Manager) Close() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.refreshDone
}

// refreshLoop sleeps until max(1, expires_in-30s), then refreshes. On
// failure it retries after 1s, per spec.md §4.2.
func (m *Manager) refreshLoop(ctx context.Context) {
	defer close(m.refreshDone)
	log := vlog.WithComponent("auth")

	for {
		m.mu.RLock()
		sleepFor := time.Until(m.token.Expiry().Add(-30 * time.Second))
		m.mu.RUnlock()
		if sleepFor < time.Second {
			sleepFor = time.Second
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(sleepFor):
		}

		m.mu.RLock()
		refreshToken := m.token.RefreshToken
		creds := m.creds
		m.mu.RUnlock()

		newTok, err := m.source.Refresh(ctx, refreshToken, creds)
		if err != nil {
			log.Warn().Err(err).Msg("token refresh failed, retrying in 1s")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		m.mu.Lock()
		m.token = &newTok
		m.mu.Unlock()
	}
}
