package selection

import "github.com/goliatone/go-accessgate/gate"

// State holds the user's in-progress or confirmed choice of tenant and
// project. A project choice is only valid under the tenant it was made in;
// selecting a new tenant always rewinds to "project not yet chosen".
type State struct {
	TenantIdentifier string
	ProjectID        *int64
	Confirmed        bool
}

// HasTenant reports whether a tenant is selected.
func (s State) HasTenant() bool {
	return s.TenantIdentifier != ""
}

// HasProject reports whether a project is selected.
func (s State) HasProject() bool {
	return s.ProjectID != nil
}

// Equal compares two states by value, including the project id.
func (s State) Equal(other State) bool {
	if s.TenantIdentifier != other.TenantIdentifier || s.Confirmed != other.Confirmed {
		return false
	}
	if (s.ProjectID == nil) != (other.ProjectID == nil) {
		return false
	}
	if s.ProjectID != nil && *s.ProjectID != *other.ProjectID {
		return false
	}
	return true
}

// Derived are the booleans the resolver and hosts branch on. They are
// recomputed from the snapshot and state on every call, never cached.
type Derived struct {
	IsProductOwner        bool
	IsTenantAdmin         bool
	HasProjectAccess      bool
	NeedsTenantSelection  bool
	NeedsProjectSelection bool
}

// Derive computes the derived flags. A product owner operates globally and
// never selects a tenant; a tenant admin selects a tenant but never a
// project; everyone else selects tenant first, project second. While
// loading is true no selection is "needed" yet, so callers do not redirect
// off a snapshot that is still being hydrated.
func Derive(snapshot *gate.AccessSnapshot, state State, loading bool) Derived {
	derived := Derived{}
	if snapshot != nil {
		derived.IsProductOwner = snapshot.IsProductOwner
		derived.IsTenantAdmin = snapshot.HasTenantAdmin()
		derived.HasProjectAccess = snapshot.HasProjectAccess()
	}
	derived.NeedsTenantSelection = !derived.IsProductOwner &&
		!state.HasTenant() &&
		!loading &&
		(derived.IsTenantAdmin || derived.HasProjectAccess)
	derived.NeedsProjectSelection = !derived.IsProductOwner &&
		!derived.IsTenantAdmin &&
		derived.HasProjectAccess &&
		state.HasTenant() &&
		!state.HasProject()
	return derived
}
