package identity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/cache"
	"github.com/goliatone/go-accessgate/gate"
)

type stubProvider struct {
	mu            sync.Mutex
	principal     *gate.Principal
	snapshot      *gate.AccessSnapshot
	tenants       map[string]gate.AccessibleTenant
	tenantErr     map[string]error
	tenantCalls   []string
	currentErr    error
	snapshotErr   error
	loginErr      error
	logoutErr     error
	logoutCalled  bool
	currentCalled bool
}

func (p *stubProvider) CurrentUser(context.Context) (*gate.Principal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentCalled = true
	return p.principal, p.currentErr
}

func (p *stubProvider) AccessSnapshot(context.Context) (*gate.AccessSnapshot, error) {
	return p.snapshot, p.snapshotErr
}

func (p *stubProvider) TenantByID(_ context.Context, tenantID string) (gate.AccessibleTenant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tenantCalls = append(p.tenantCalls, tenantID)
	if err, ok := p.tenantErr[tenantID]; ok {
		return gate.AccessibleTenant{}, err
	}
	if tenant, ok := p.tenants[tenantID]; ok {
		return tenant, nil
	}
	return gate.AccessibleTenant{}, errors.New("not found")
}

func (p *stubProvider) Login(context.Context) error { return p.loginErr }

func (p *stubProvider) Logout(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logoutCalled = true
	return p.logoutErr
}

func (p *stubProvider) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.tenantCalls...)
}

type stubClearer struct {
	called bool
	err    error
}

func (c *stubClearer) ClearSelection(context.Context) error {
	c.called = true
	return c.err
}

func TestLoadFetchesPrincipalAndSnapshot(t *testing.T) {
	provider := &stubProvider{
		principal: &gate.Principal{ID: "user-1"},
		snapshot:  &gate.AccessSnapshot{Tenants: []gate.AccessibleTenant{{TenantID: "tenant-1"}}},
	}
	identityStore := NewStore(provider)

	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identityStore.CurrentUser() == nil || identityStore.CurrentUser().ID != "user-1" {
		t.Fatalf("expected cached principal, got %+v", identityStore.CurrentUser())
	}
	if identityStore.Snapshot() == nil {
		t.Fatalf("expected cached snapshot")
	}
	if identityStore.Loading() {
		t.Fatalf("loading must be false after load")
	}
}

func TestLoadAnonymousSettlesWithoutError(t *testing.T) {
	provider := &stubProvider{snapshotErr: errors.New("unexpected status 401")}
	identityStore := NewStore(provider)

	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("anonymous load must settle, not fail: %v", err)
	}
	if identityStore.CurrentUser() != nil {
		t.Fatalf("expected no principal, got %+v", identityStore.CurrentUser())
	}
	if identityStore.Snapshot() != nil {
		t.Fatalf("anonymous sessions carry no snapshot, got %+v", identityStore.Snapshot())
	}
	if identityStore.Loading() {
		t.Fatalf("loading must be false after an anonymous load")
	}
}

func TestLoadWrapsProviderFailure(t *testing.T) {
	provider := &stubProvider{
		principal:   &gate.Principal{ID: "user-1"},
		snapshotErr: errors.New("backend down"),
	}
	identityStore := NewStore(provider)

	err := identityStore.Load(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeProviderFetchFailed {
		t.Fatalf("expected fetch-failed wrap, got %v", err)
	}
	if identityStore.Loading() {
		t.Fatalf("loading must reset after a failed load")
	}
}

func TestHydrateFillsMissingAdminTenants(t *testing.T) {
	provider := &stubProvider{
		principal: &gate.Principal{ID: "user-1"},
		snapshot:  &gate.AccessSnapshot{TenantAdminTenantIDs: []string{"tenant-1", "tenant-2"}},
		tenants: map[string]gate.AccessibleTenant{
			"tenant-1": {TenantID: "tenant-1", TenantName: "Acme", TenantIdentifier: "T1"},
			"tenant-2": {TenantID: "tenant-2", TenantName: "Globex", TenantIdentifier: "T2"},
		},
	}
	identityStore := NewStore(provider)

	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := identityStore.Snapshot()
	if snapshot.AdminDetailsPending() {
		t.Fatalf("expected hydration to complete, snapshot %+v", snapshot)
	}
	if tenant, ok := snapshot.TenantByID("tenant-2"); !ok || tenant.TenantName != "Globex" {
		t.Fatalf("expected hydrated tenant detail, got %+v %v", tenant, ok)
	}
}

func TestHydrateDegradesToPlaceholderOnFailure(t *testing.T) {
	provider := &stubProvider{
		principal: &gate.Principal{ID: "user-1"},
		snapshot:  &gate.AccessSnapshot{TenantAdminTenantIDs: []string{"tenant-long-identifier"}},
		tenantErr: map[string]error{"tenant-long-identifier": errors.New("timeout")},
	}
	identityStore := NewStore(provider)

	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("hydration failures must not fail the load: %v", err)
	}

	tenant, ok := identityStore.Snapshot().TenantByID("tenant-long-identifier")
	if !ok {
		t.Fatalf("expected placeholder tenant")
	}
	if tenant.TenantName != "Tenant tenant-l" {
		t.Fatalf("expected truncated placeholder name, got %q", tenant.TenantName)
	}
	if len(tenant.Projects) != 0 {
		t.Fatalf("placeholder carries no projects")
	}
}

func TestHydrateUsesCacheAndSkipsPlaceholderCaching(t *testing.T) {
	tenantCache := cache.NewMemoryCache()
	provider := &stubProvider{
		principal: &gate.Principal{ID: "user-1"},
		snapshot:  &gate.AccessSnapshot{TenantAdminTenantIDs: []string{"tenant-1", "tenant-2"}},
		tenants: map[string]gate.AccessibleTenant{
			"tenant-2": {TenantID: "tenant-2", TenantName: "Globex"},
		},
		tenantErr: map[string]error{"tenant-1": errors.New("timeout")},
	}
	identityStore := NewStore(provider, WithCache(tenantCache))

	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tenantCache.Get(context.Background(), "tenant-1"); ok {
		t.Fatalf("placeholder must not be cached")
	}
	if _, ok := tenantCache.Get(context.Background(), "tenant-2"); !ok {
		t.Fatalf("fetched tenant must be cached")
	}

	// A second hydration resolves tenant-2 from cache and retries tenant-1.
	identityStore.SetSnapshot(&gate.AccessSnapshot{TenantAdminTenantIDs: []string{"tenant-1", "tenant-2"}})
	before := len(provider.calls())
	if err := identityStore.HydrateAdminTenants(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	added := provider.calls()[before:]
	if len(added) != 1 || added[0] != "tenant-1" {
		t.Fatalf("expected only the placeholder tenant to be refetched, got %v", added)
	}
}

func TestLogoutClearsEverythingEvenWhenProviderFails(t *testing.T) {
	tenantCache := cache.NewMemoryCache()
	tenantCache.Set(context.Background(), "tenant-1", gate.AccessibleTenant{TenantID: "tenant-1"})
	clearer := &stubClearer{}
	provider := &stubProvider{
		principal: &gate.Principal{ID: "user-1"},
		snapshot:  &gate.AccessSnapshot{},
		logoutErr: errors.New("idp unreachable"),
	}
	identityStore := NewStore(provider, WithCache(tenantCache), WithSelection(clearer))
	if err := identityStore.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := identityStore.Logout(context.Background())
	if err == nil {
		t.Fatalf("expected provider failure to surface")
	}
	if identityStore.CurrentUser() != nil {
		t.Fatalf("principal must be cleared despite provider failure")
	}
	if identityStore.Snapshot() != nil {
		t.Fatalf("snapshot must be cleared despite provider failure")
	}
	if _, ok := tenantCache.Get(context.Background(), "tenant-1"); ok {
		t.Fatalf("tenant cache must be cleared on logout")
	}
	if !clearer.called {
		t.Fatalf("selection must be cleared on logout")
	}
}

func TestLoginWrapsProviderError(t *testing.T) {
	provider := &stubProvider{loginErr: errors.New("redirect failed")}
	identityStore := NewStore(provider)

	err := identityStore.Login(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeLoginFailed {
		t.Fatalf("expected login-failed wrap, got %v", err)
	}
}
