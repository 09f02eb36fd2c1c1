package gate

import (
	"strings"
	"time"
)

// AccessibleProject is a project the principal can work in, with the roles
// they hold there.
type AccessibleProject struct {
	ProjectID   int64
	ProjectName string
	ProjectCode string
	IsActive    bool
	UserRoles   []string
	Description string
	CreatedAt   time.Time
}

// AccessibleTenant is a tenant the principal has project-level access to.
type AccessibleTenant struct {
	TenantID         string
	TenantName       string
	TenantIdentifier string
	Description      string
	UserRoles        []string
	Projects         []AccessibleProject
	ProjectCount     int
}

// Project looks up a project by id.
func (t AccessibleTenant) Project(id int64) (AccessibleProject, bool) {
	for _, project := range t.Projects {
		if project.ProjectID == id {
			return project, true
		}
	}
	return AccessibleProject{}, false
}

// AccessSnapshot describes everything the principal may operate on. It is
// fetched once after login and must be fully loaded before any redirect
// decision is made; a nil snapshot always means "still loading", never
// "no access".
type AccessSnapshot struct {
	IsProductOwner       bool
	TenantAdminTenantIDs []string
	Tenants              []AccessibleTenant
}

// HasTenantAdmin reports whether the principal administers at least one tenant.
func (s *AccessSnapshot) HasTenantAdmin() bool {
	return s != nil && len(s.TenantAdminTenantIDs) > 0
}

// HasProjectAccess reports whether the principal has project-level access to
// at least one tenant.
func (s *AccessSnapshot) HasProjectAccess() bool {
	return s != nil && len(s.Tenants) > 0
}

// NoAccess reports whether the principal has neither admin nor project access.
// Product owners are never "no access" regardless of tenant contents.
func (s *AccessSnapshot) NoAccess() bool {
	if s == nil {
		return false
	}
	if s.IsProductOwner {
		return false
	}
	return len(s.TenantAdminTenantIDs) == 0 && len(s.Tenants) == 0
}

// Tenant looks up a tenant by its identifier.
func (s *AccessSnapshot) Tenant(identifier string) (AccessibleTenant, bool) {
	if s == nil {
		return AccessibleTenant{}, false
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return AccessibleTenant{}, false
	}
	for _, tenant := range s.Tenants {
		if tenant.TenantIdentifier == identifier {
			return tenant, true
		}
	}
	return AccessibleTenant{}, false
}

// TenantByID looks up a tenant by id.
func (s *AccessSnapshot) TenantByID(id string) (AccessibleTenant, bool) {
	if s == nil {
		return AccessibleTenant{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return AccessibleTenant{}, false
	}
	for _, tenant := range s.Tenants {
		if tenant.TenantID == id {
			return tenant, true
		}
	}
	return AccessibleTenant{}, false
}

// IsTenantAdminFor reports whether the principal administers the given tenant.
func (s *AccessSnapshot) IsTenantAdminFor(id string) bool {
	if s == nil {
		return false
	}
	for _, adminID := range s.TenantAdminTenantIDs {
		if adminID == id {
			return true
		}
	}
	return false
}

// AdminDetailsPending reports whether any admin tenant id still lacks a
// detailed tenant record. While pending, redirect decisions for tenant
// admins must be deferred; the empty tenant list is still hydrating.
func (s *AccessSnapshot) AdminDetailsPending() bool {
	if s == nil {
		return false
	}
	for _, adminID := range s.TenantAdminTenantIDs {
		if _, ok := s.TenantByID(adminID); !ok {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the snapshot. Hydration merges into a clone
// so readers never observe a partially merged snapshot.
func (s *AccessSnapshot) Clone() *AccessSnapshot {
	if s == nil {
		return nil
	}
	out := &AccessSnapshot{
		IsProductOwner:       s.IsProductOwner,
		TenantAdminTenantIDs: append([]string(nil), s.TenantAdminTenantIDs...),
	}
	if len(s.Tenants) > 0 {
		out.Tenants = make([]AccessibleTenant, len(s.Tenants))
		copy(out.Tenants, s.Tenants)
	}
	return out
}
