package identity

import (
	"context"

	"github.com/goliatone/go-accessgate/gate"
)

// Provider is the remote identity surface the console consumes: the current
// principal, the accessible-tenants snapshot, and per-tenant detail lookups
// used for admin hydration. Login and Logout are opaque identity-provider
// side effects.
type Provider interface {
	CurrentUser(ctx context.Context) (*gate.Principal, error)
	AccessSnapshot(ctx context.Context) (*gate.AccessSnapshot, error)
	TenantByID(ctx context.Context, tenantID string) (gate.AccessibleTenant, error)
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

// SelectionClearer clears persisted selection state. The session store
// invokes it on logout so a later login starts from an empty wizard.
type SelectionClearer interface {
	ClearSelection(ctx context.Context) error
}
