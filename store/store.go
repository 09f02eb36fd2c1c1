package store

import "context"

// Record is the persisted selection pair. The tenant identifier and project
// id are written and removed together; a tenant change always rewrites the
// whole record with the project cleared.
type Record struct {
	TenantIdentifier string
	ProjectID        *int64
}

// HasTenant reports whether a tenant identifier is present.
func (r Record) HasTenant() bool {
	return r.TenantIdentifier != ""
}

// HasProject reports whether a project id is present.
func (r Record) HasProject() bool {
	return r.ProjectID != nil
}

// Store persists a user's selection across sessions. Writes are idempotent;
// concurrent writers are not coordinated (last writer wins).
type Store interface {
	Load(ctx context.Context, userID string) (Record, bool, error)
	Save(ctx context.Context, userID string, record Record) error
	Clear(ctx context.Context, userID string) error
}
