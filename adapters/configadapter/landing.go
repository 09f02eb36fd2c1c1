package configadapter

import (
	"github.com/goliatone/go-accessgate/resolver"
)

// LandingPaths remaps the resolver's landing targets onto host-specific
// paths. Unconfigured targets keep their default path.
type LandingPaths struct {
	paths map[resolver.Route]string
}

// NewLandingPaths builds the remapping from a config map keyed by landing
// target name:
//
//	landing:
//	  login: /auth/sign-in
//	  dashboard: /home
func NewLandingPaths(data map[string]any) *LandingPaths {
	paths := map[resolver.Route]string{}
	for key, target := range map[string]resolver.Route{
		"login":             resolver.RouteLogin,
		"tenant_selection":  resolver.RouteTenantSelection,
		"project_selection": resolver.RouteProjectSelection,
		"no_access":         resolver.RouteNoAccess,
		"dashboard":         resolver.RouteDashboard,
		"orders":            resolver.RouteOrders,
	} {
		if path := stringValue(data[key]); path != "" {
			paths[target] = path
		}
	}
	return &LandingPaths{paths: paths}
}

// Path resolves the host path for a landing outcome. Loading outcomes have
// no path.
func (l *LandingPaths) Path(out resolver.Outcome) string {
	if out.Loading {
		return ""
	}
	if l != nil {
		if path, ok := l.paths[out.Route]; ok {
			return path
		}
	}
	return string(out.Route)
}
