package gate

import "strings"

// Requirement is a declarative access rule attached to a navigable area.
// Either the permission fields or the role fields should be populated;
// when both are present the permission rule wins, which lets areas migrate
// from role gating to permission gating one at a time.
type Requirement struct {
	Permission  string
	Permissions []string
	RequireAll  bool
	Role        string
	Roles       []string
}

// RequireAny builds a requirement satisfied by any one of the permissions.
func RequireAny(permissions ...string) Requirement {
	return Requirement{Permissions: permissions}
}

// RequireAllOf builds a requirement satisfied only by all of the permissions.
func RequireAllOf(permissions ...string) Requirement {
	return Requirement{Permissions: permissions, RequireAll: true}
}

// RequirePermission builds a single-permission requirement.
func RequirePermission(permission string) Requirement {
	return Requirement{Permission: permission}
}

// RequireRole builds a single-role requirement.
func RequireRole(role string) Requirement {
	return Requirement{Role: role}
}

// PermissionList merges the singular and plural permission fields, dropping
// blanks.
func (r Requirement) PermissionList() []string {
	return mergeNames(r.Permission, r.Permissions)
}

// RoleList merges the singular and plural role fields, dropping blanks.
func (r Requirement) RoleList() []string {
	return mergeNames(r.Role, r.Roles)
}

// HasPermissionRule reports whether a permission-based rule is present.
func (r Requirement) HasPermissionRule() bool {
	return len(r.PermissionList()) > 0
}

// HasRoleRule reports whether a role-based rule is present.
func (r Requirement) HasRoleRule() bool {
	return len(r.RoleList()) > 0
}

// IsEmpty reports whether the requirement carries no rule at all. An empty
// requirement grants access unconditionally.
func (r Requirement) IsEmpty() bool {
	return !r.HasPermissionRule() && !r.HasRoleRule()
}

// Satisfied evaluates the requirement against the principal's resolved sets.
// Permission rules take precedence over role rules; RequireAll switches
// between ALL and ANY semantics.
func (r Requirement) Satisfied(p *Principal) bool {
	if permissions := r.PermissionList(); len(permissions) > 0 {
		if r.RequireAll {
			return p.HasAllPermissions(permissions...)
		}
		return p.HasAnyPermission(permissions...)
	}
	if roles := r.RoleList(); len(roles) > 0 {
		if r.RequireAll {
			return p.HasAllRoles(roles...)
		}
		return p.HasAnyRole(roles...)
	}
	return true
}

func mergeNames(single string, list []string) []string {
	out := make([]string, 0, len(list)+1)
	if trimmed := strings.TrimSpace(single); trimmed != "" {
		out = append(out, trimmed)
	}
	for _, name := range list {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
