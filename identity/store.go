package identity

import (
	"context"
	"sync"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/cache"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/logger"
)

// Store caches the authenticated principal and access snapshot for the
// session. Loading reports true until both the initial fetch and any
// pending admin tenant hydration have finished; redirect decisions must
// not run before that.
type Store struct {
	mu        sync.RWMutex
	provider  Provider
	cache     cache.Cache
	selection SelectionClearer
	logger    logger.Logger
	principal *gate.Principal
	snapshot  *gate.AccessSnapshot
	loading   bool
	hydrating bool
}

// Option customizes a Store.
type Option func(*Store)

// WithCache sets the tenant detail cache used during hydration.
func WithCache(c cache.Cache) Option {
	return func(s *Store) {
		if s == nil {
			return
		}
		s.cache = c
	}
}

// WithSelection registers the selection state cleared on logout.
func WithSelection(clearer SelectionClearer) Option {
	return func(s *Store) {
		if s == nil {
			return
		}
		s.selection = clearer
	}
}

// WithLogger sets the logger.
func WithLogger(lgr logger.Logger) Option {
	return func(s *Store) {
		if s == nil {
			return
		}
		s.logger = lgr
	}
}

// NewStore constructs a session store over the given provider.
func NewStore(provider Provider, options ...Option) *Store {
	s := &Store{
		provider: provider,
		cache:    cache.NoopCache{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.cache == nil {
		s.cache = cache.NoopCache{}
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}
	return s
}

// CurrentUser returns the cached principal, or nil before login.
func (s *Store) CurrentUser() *gate.Principal {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Loading reports whether the session fetch or admin hydration is in flight.
func (s *Store) Loading() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading || s.hydrating
}

// Snapshot returns the cached access snapshot, or nil while it has not
// loaded. A nil snapshot means "not ready", never "no access".
func (s *Store) Snapshot() *gate.AccessSnapshot {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetSnapshot replaces the cached snapshot.
func (s *Store) SetSnapshot(snapshot *gate.AccessSnapshot) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
}

// Load fetches the principal and snapshot, then hydrates admin tenant
// details. Loading stays true for the whole sequence.
func (s *Store) Load(ctx context.Context) error {
	if s == nil || s.provider == nil {
		return aerrors.ErrProviderRequired
	}
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	principal, err := s.provider.CurrentUser(ctx)
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeProviderFetchFailed, "current user fetch failed", map[string]any{
			aerrors.MetaProvider:  "identity",
			aerrors.MetaOperation: "current_user",
		})
	}
	if principal == nil {
		// Anonymous session: nothing to fetch, the resolver sends the
		// visitor to login once loading settles.
		s.mu.Lock()
		s.principal = nil
		s.snapshot = nil
		s.mu.Unlock()
		return nil
	}
	snapshot, err := s.provider.AccessSnapshot(ctx)
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeProviderFetchFailed, "access snapshot fetch failed", map[string]any{
			aerrors.MetaProvider:  "identity",
			aerrors.MetaOperation: "access_snapshot",
		})
	}

	s.mu.Lock()
	s.principal = principal
	s.snapshot = snapshot
	s.mu.Unlock()

	return s.HydrateAdminTenants(ctx)
}

// Login delegates to the provider, which redirects to the external identity
// provider. On failure the session stays unauthenticated.
func (s *Store) Login(ctx context.Context) error {
	if s == nil || s.provider == nil {
		return aerrors.ErrProviderRequired
	}
	if err := s.provider.Login(ctx); err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeLoginFailed, "login failed", map[string]any{
			aerrors.MetaProvider:  "identity",
			aerrors.MetaOperation: "login",
		})
	}
	return nil
}

// Logout clears the session. Local state -- principal, snapshot, tenant
// cache, persisted selection -- is cleared even when the provider call
// fails, so a broken logout can never trap the user in a half
// authenticated session; callers navigate to login regardless of the
// returned error.
func (s *Store) Logout(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var providerErr error
	if s.provider != nil {
		providerErr = s.provider.Logout(ctx)
	}

	s.mu.Lock()
	s.principal = nil
	s.snapshot = nil
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.Clear(ctx)
	}
	if s.selection != nil {
		if err := s.selection.ClearSelection(ctx); err != nil {
			s.logger.Warn("accessgate.logout_selection_clear_failed", "error", err)
		}
	}

	if providerErr != nil {
		s.logger.Warn("accessgate.logout_failed", "error", providerErr)
		return aerrors.WrapExternal(providerErr, aerrors.TextCodeLogoutFailed, "logout failed", map[string]any{
			aerrors.MetaProvider:  "identity",
			aerrors.MetaOperation: "logout",
		})
	}
	return nil
}
