package resolver

import (
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/selection"
)

// Route is a landing target path.
type Route string

const (
	RouteLogin            Route = "/login"
	RouteTenantSelection  Route = "/tenant-selection"
	RouteProjectSelection Route = "/project-selection"
	RouteNoAccess         Route = "/no-access"
	RouteDashboard        Route = "/dashboard"
	RouteOrders           Route = "/orders"
)

// Input is everything the landing decision depends on. The resolver never
// fetches anything itself; it only reacts to already-resolved state.
type Input struct {
	Principal       *gate.Principal
	IdentityLoading bool
	Snapshot        *gate.AccessSnapshot
	Selection       selection.State
}

// Outcome is the landing decision. Loading means "render a loading view,
// decide later" -- never a redirect guess off incomplete data.
type Outcome struct {
	Loading bool
	Route   Route
}

// Resolve picks the landing route for a just-authenticated or freshly
// loaded user. Checks run top to bottom, first match wins. The ordering is
// load-bearing: a product owner with zero tenants is fully authorized, not
// access-denied, so the product-owner check precedes the no-access check;
// and an admin-flagged user with an empty tenant list must hit no-access
// rather than loop through tenant selection, so no-access precedes the
// selection checks.
func Resolve(in Input) Outcome {
	if in.IdentityLoading {
		return Outcome{Loading: true}
	}
	if in.Principal == nil {
		return Outcome{Route: RouteLogin}
	}
	if in.Snapshot == nil {
		return Outcome{Loading: true}
	}
	if in.Snapshot.IsProductOwner {
		return Outcome{Route: RouteDashboard}
	}
	if in.Snapshot.NoAccess() {
		return Outcome{Route: RouteNoAccess}
	}

	derived := selection.Derive(in.Snapshot, in.Selection, false)
	if derived.IsTenantAdmin {
		// The admin's tenant list may still be hydrating; an empty list is
		// not yet a reason to push them into tenant selection.
		if in.Snapshot.AdminDetailsPending() {
			return Outcome{Loading: true}
		}
		if !in.Selection.HasTenant() || !in.Selection.Confirmed {
			return Outcome{Route: RouteTenantSelection}
		}
		return Outcome{Route: RouteDashboard}
	}

	if !in.Selection.HasTenant() || !in.Selection.Confirmed {
		return Outcome{Route: RouteTenantSelection}
	}
	if derived.NeedsProjectSelection {
		return Outcome{Route: RouteProjectSelection}
	}
	if in.Selection.HasTenant() && (in.Selection.HasProject() || !derived.HasProjectAccess) {
		return Outcome{Route: RouteOrders}
	}
	return Outcome{Route: RouteTenantSelection}
}
