package gate

import "strings"

// Permission names understood by the admin console backend. The resolved
// permission set on a Principal uses these exact strings.
const (
	PermissionViewReports         = "ViewReports"
	PermissionViewProjects        = "ViewProjects"
	PermissionAssignRoles         = "AssignRoles"
	PermissionViewUsers           = "ViewUsers"
	PermissionViewBatches         = "ViewBatches"
	PermissionCreateBatches       = "CreateBatches"
	PermissionCreateOrder         = "CreateOrder"
	PermissionCreateProjects      = "CreateProjects"
	PermissionUpdateProjects      = "UpdateProjects"
	PermissionViewSchemas         = "ViewSchemas"
	PermissionCreateSchemas       = "CreateSchemas"
	PermissionUpdateSchemas       = "UpdateSchemas"
	PermissionViewOrderFlow       = "ViewOrderFlow"
	PermissionCreateUsers         = "CreateUsers"
	PermissionCreateRoles         = "CreateRoles"
	PermissionCreateTenants       = "CreateTenants"
	PermissionViewTenants         = "ViewTenants"
	PermissionViewRoles           = "ViewRoles"
	PermissionViewGlobalSchemas   = "ViewGlobalSchemas"
	PermissionCreateGlobalSchemas = "CreateGlobalSchemas"
	PermissionUpdateGlobalSchemas = "UpdateGlobalSchemas"
	PermissionViewOrders          = "ViewOrders"
	PermissionProcessOrders       = "ProcessOrders"
)

// Principal is an authenticated user with pre-resolved permission and role
// sets. The sets are fetched once after login and cached for the session;
// a Principal is treated as immutable after construction.
type Principal struct {
	ID          string
	Name        string
	Email       string
	Permissions []string
	Roles       []string
}

// HasPermission reports whether the principal holds the named permission.
func (p *Principal) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	return contains(p.Permissions, name)
}

// HasAnyPermission reports whether the principal holds at least one of the
// named permissions.
func (p *Principal) HasAnyPermission(names ...string) bool {
	if p == nil {
		return false
	}
	for _, name := range names {
		if contains(p.Permissions, name) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the principal holds every named permission.
func (p *Principal) HasAllPermissions(names ...string) bool {
	if p == nil {
		return false
	}
	for _, name := range names {
		if !contains(p.Permissions, name) {
			return false
		}
	}
	return true
}

// HasRole reports whether the principal holds the named role.
func (p *Principal) HasRole(name string) bool {
	if p == nil {
		return false
	}
	return contains(p.Roles, name)
}

// HasAnyRole reports whether the principal holds at least one of the named roles.
func (p *Principal) HasAnyRole(names ...string) bool {
	if p == nil {
		return false
	}
	for _, name := range names {
		if contains(p.Roles, name) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the principal holds every named role.
func (p *Principal) HasAllRoles(names ...string) bool {
	if p == nil {
		return false
	}
	for _, name := range names {
		if !contains(p.Roles, name) {
			return false
		}
	}
	return true
}

func contains(values []string, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, value := range values {
		if strings.TrimSpace(value) == name {
			return true
		}
	}
	return false
}
