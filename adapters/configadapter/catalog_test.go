package configadapter

import (
	"testing"

	"github.com/goliatone/go-config/config"

	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/resolver"
)

func TestNewCatalogFlattensNestedRoutes(t *testing.T) {
	catalog := NewCatalog(map[string]any{
		"batches": map[string]any{
			"path":       "/batches",
			"permission": gate.PermissionViewBatches,
		},
		"orders": map[string]any{
			"detail": map[string]any{
				"path":        "/orders/:id",
				"permissions": []any{gate.PermissionViewOrders, gate.PermissionProcessOrders},
			},
		},
	})

	def, ok := catalog.Get("batches")
	if !ok || def.Path != "/batches" {
		t.Fatalf("expected batches route, got %+v %v", def, ok)
	}
	if def.Requirement.Permission != gate.PermissionViewBatches {
		t.Fatalf("expected permission rule, got %+v", def.Requirement)
	}

	def, ok = catalog.Get("orders.detail")
	if !ok {
		t.Fatalf("expected nested route name orders.detail")
	}
	if len(def.Requirement.PermissionList()) != 2 {
		t.Fatalf("expected two permissions, got %v", def.Requirement.PermissionList())
	}
}

func TestNewCatalogReadsAccessModeFlags(t *testing.T) {
	catalog := NewCatalog(map[string]any{
		"login": map[string]any{
			"path":   "/login",
			"public": true,
		},
		"no_access": map[string]any{
			"path":      "/no-access",
			"auth_only": config.NewOptionalBool(true),
		},
		"users": map[string]any{
			"path":        "/users",
			"permissions": []string{gate.PermissionViewUsers, gate.PermissionCreateUsers},
			"require_all": config.NewOptionalBool(true),
		},
	})

	login, _ := catalog.Get("login")
	if !login.Public {
		t.Fatalf("expected public flag, got %+v", login)
	}

	noAccess, _ := catalog.Get("no_access")
	if !noAccess.AuthOnly {
		t.Fatalf("expected auth-only flag from OptionalBool, got %+v", noAccess)
	}

	users, _ := catalog.Get("users")
	if !users.Requirement.RequireAll {
		t.Fatalf("expected require_all from OptionalBool, got %+v", users.Requirement)
	}
}

func TestNewCatalogSkipsEntriesWithoutPath(t *testing.T) {
	catalog := NewCatalog(map[string]any{
		"incomplete": map[string]any{
			"permission": gate.PermissionViewUsers,
		},
		"scalar": "not a route",
	})

	if defs := catalog.List(); len(defs) != 0 {
		t.Fatalf("expected no routes, got %v", defs)
	}
}

func TestLandingPathsRemap(t *testing.T) {
	landing := NewLandingPaths(map[string]any{
		"login":     "/auth/sign-in",
		"dashboard": "/home",
	})

	if path := landing.Path(resolver.Outcome{Route: resolver.RouteLogin}); path != "/auth/sign-in" {
		t.Fatalf("expected remapped login, got %q", path)
	}
	if path := landing.Path(resolver.Outcome{Route: resolver.RouteOrders}); path != "/orders" {
		t.Fatalf("expected default path, got %q", path)
	}
	if path := landing.Path(resolver.Outcome{Loading: true}); path != "" {
		t.Fatalf("loading outcome has no path, got %q", path)
	}
}
