package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/desirppc/parcelace/internal/client/credential"
	"github.com/desirppc/parcelace/internal/client/models"
	"github.com/desirppc/parcelace/internal/common"
	"github.com/desirppc/parcelace/internal/logging"
)

// State is the manager's lifecycle position. Initializing exists only
// until the first hydration; there is no transition back into it.
type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Refresher fetches fresh profile and wallet data after login. The API
// client satisfies this; tests provide fakes.
type Refresher interface {
	Profile(ctx context.Context) (*models.User, error)
	Wallet(ctx context.Context) (*models.Wallet, error)
}

// Manager is the per-process authoritative view of "am I logged in, and
// as whom". It mirrors the credential store into memory, runs the
// post-login background refresh, and reacts to the expiry signal.
type Manager struct {
	creds     *credential.Store
	refresher Refresher
	bus       *ExpiryBus
	log       logging.Logger
	warnAfter time.Duration

	// onReset is the app-shell reset hook invoked by logout, the analog
	// of the dashboard's full page reload.
	onReset func()

	// onExpired navigates to the login view after a forced logout.
	onExpired func()

	mu         sync.Mutex
	state      State
	token      string
	user       *models.User
	wallet     *models.Wallet
	loginAt    time.Time
	generation string
}

// Option configures a Manager.
type Option func(*Manager)

// WithRefresher wires the post-login profile/wallet refresh source.
func WithRefresher(r Refresher) Option {
	return func(m *Manager) { m.refresher = r }
}

// SetRefresher attaches the refresh source after construction, for wirings
// where the API client needs the manager as its token source first.
func (m *Manager) SetRefresher(r Refresher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresher = r
}

// WithResetHook registers the hook logout calls after clearing state.
func WithResetHook(fn func()) Option {
	return func(m *Manager) { m.onReset = fn }
}

// WithExpiredHook registers the navigation hook run when the session
// expiry signal forces a logout.
func WithExpiredHook(fn func()) Option {
	return func(m *Manager) { m.onExpired = fn }
}

// WithRenewalWarnAfter overrides the renewal-warning threshold.
func WithRenewalWarnAfter(d time.Duration) Option {
	return func(m *Manager) { m.warnAfter = d }
}

// NewManager builds a manager in the Initializing state. Call Hydrate to
// resolve it from the credential store, then Watch to react to expiry.
func NewManager(creds *credential.Store, bus *ExpiryBus, log logging.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	m := &Manager{
		creds:     creds,
		bus:       bus,
		log:       log,
		state:     StateInitializing,
		warnAfter: DefaultRenewalWarnAfter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hydrate resolves Initializing from the credential store, synchronously
// and without any network round trip: a structurally valid cached
// credential means Authenticated right away, with server-side
// revalidation left to the background refresh and the expiry signal.
// Calling Hydrate after the state has resolved is a no-op.
func (m *Manager) Hydrate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateInitializing {
		return
	}

	cred, err := m.creds.Read(ctx)
	if err != nil || cred == nil {
		m.state = StateUnauthenticated
		return
	}

	m.state = StateAuthenticated
	m.token = cred.Token
	m.user = cred.User
	m.loginAt = cred.LoginAt
	m.log.Info(ctx, "session hydrated from store", "user_id", cred.User.ID)
}

// Watch subscribes to the expiry bus until ctx is done. Run it in its own
// goroutine for the lifetime of the app.
func (m *Manager) Watch(ctx context.Context) {
	ch := m.bus.Subscribe()
	defer m.bus.Unsubscribe(ch)

	for {
		select {
		case <-ch:
			m.handleExpiry(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Login stores the credential (clear first, so nothing of a stale prior
// session can mix in), transitions to Authenticated, and kicks off a
// fire-and-forget profile/wallet refresh. The refresh failing, or still
// being in flight, never affects the Authenticated state set here.
func (m *Manager) Login(ctx context.Context, user *models.User, token string) error {
	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.creds.Clear(ctx); err != nil {
		return err
	}
	now := time.Now()
	if err := m.creds.SaveAt(ctx, token, user, now); err != nil {
		return err
	}

	m.state = StateAuthenticated
	m.token = token
	m.user = user
	m.wallet = nil
	m.loginAt = now
	m.generation = uuid.NewString()

	if r := m.refresher; r != nil {
		go m.backgroundRefresh(context.WithoutCancel(ctx), r, m.generation)
	}

	m.log.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

// backgroundRefresh pulls fresh profile and wallet data. The generation id
// fences it: a logout (or a newer login) issued while the fetch was in
// flight invalidates gen, and the results are dropped instead of
// resurrecting a cleared session.
func (m *Manager) backgroundRefresh(ctx context.Context, r Refresher, gen string) {
	user, err := r.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "background profile refresh failed", "error", err)
		return
	}
	wallet, err := r.Wallet(ctx)
	if err != nil {
		m.log.Warn(ctx, "background wallet refresh failed", "error", err)
		wallet = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || m.generation != gen {
		m.log.Debug(ctx, "discarding stale background refresh")
		return
	}

	m.user = user
	m.wallet = wallet
	if err := m.creds.UpdateUser(ctx, user); err != nil {
		m.log.Warn(ctx, "failed to persist refreshed profile", "error", err)
	}
}

// Logout clears the credential and every cached derivative, transitions to
// Unauthenticated, and fires the shell reset hook. Idempotent: a second
// call finds nothing to clear and the state already Unauthenticated.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()

	err := m.creds.Clear(ctx)
	m.state = StateUnauthenticated
	m.token = ""
	m.user = nil
	m.wallet = nil
	m.loginAt = time.Time{}
	m.generation = ""
	reset := m.onReset
	m.mu.Unlock()

	if reset != nil {
		reset()
	}
	return err
}

// UpdateUser replaces the in-memory and persisted user record without
// touching the token or the login timestamp.
func (m *Manager) UpdateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return common.ErrNotAuthenticated
	}
	if err := m.creds.UpdateUser(ctx, user); err != nil {
		return err
	}
	m.user = user
	return nil
}

// handleExpiry performs the logout steps plus login navigation. Receiving
// the signal while already logged out is a no-op.
func (m *Manager) handleExpiry(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.log.Info(ctx, "session expired, forcing logout")
	_ = m.Logout(ctx)
	if m.onExpired != nil {
		m.onExpired()
	}
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the bearer token, or "" when not authenticated. It is the
// token source the HTTP layer reads before each request.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the current user record, nil when not authenticated.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// CachedWallet returns the wallet snapshot from the last background
// refresh, nil when none arrived yet.
func (m *Manager) CachedWallet() *models.Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wallet
}

// Status derives the read-only session view from the in-memory credential.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return Status{}
	}
	cred := &credential.Credential{Token: m.token, User: m.user, LoginAt: m.loginAt}
	return Inspect(cred, time.Now(), m.warnAfter)
}
