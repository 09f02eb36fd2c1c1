package gate

import "testing"

func TestPrincipalHasPermission(t *testing.T) {
	principal := &Principal{
		ID:          "user-1",
		Permissions: []string{PermissionViewOrders, PermissionViewBatches},
	}

	if !principal.HasPermission(PermissionViewOrders) {
		t.Fatalf("expected ViewOrders to be granted")
	}
	if principal.HasPermission(PermissionCreateTenants) {
		t.Fatalf("expected CreateTenants to be missing")
	}
}

func TestPrincipalHasPermissionTrimsWhitespace(t *testing.T) {
	principal := &Principal{Permissions: []string{" ViewOrders "}}

	if !principal.HasPermission("ViewOrders") {
		t.Fatalf("expected whitespace-padded grant to match")
	}
}

func TestNilPrincipalHasNothing(t *testing.T) {
	var principal *Principal

	if principal.HasPermission(PermissionViewOrders) {
		t.Fatalf("nil principal must not hold permissions")
	}
	if principal.HasAnyPermission(PermissionViewOrders, PermissionViewBatches) {
		t.Fatalf("nil principal must fail any-of checks")
	}
	if principal.HasRole("admin") {
		t.Fatalf("nil principal must not hold roles")
	}
}

func TestPrincipalAnyAndAllPermissions(t *testing.T) {
	principal := &Principal{Permissions: []string{PermissionViewOrders}}

	if !principal.HasAnyPermission(PermissionProcessOrders, PermissionViewOrders) {
		t.Fatalf("expected any-of to pass with one held permission")
	}
	if principal.HasAllPermissions(PermissionProcessOrders, PermissionViewOrders) {
		t.Fatalf("expected all-of to fail with one missing permission")
	}
	if !principal.HasAllPermissions(PermissionViewOrders) {
		t.Fatalf("expected all-of to pass when every permission is held")
	}
}

func TestPrincipalRoles(t *testing.T) {
	principal := &Principal{Roles: []string{"operator", "viewer"}}

	if !principal.HasAnyRole("admin", "viewer") {
		t.Fatalf("expected any-of roles to pass")
	}
	if principal.HasAllRoles("operator", "admin") {
		t.Fatalf("expected all-of roles to fail")
	}
}
