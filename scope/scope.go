package scope

import (
	"context"
	"strings"

	"github.com/goliatone/go-accessgate/gate"
)

type contextKey string

const (
	principalKey contextKey = "accessgate.principal"
	tenantKey    contextKey = "accessgate.tenant_identifier"
	projectKey   contextKey = "accessgate.project_id"
	returnToKey  contextKey = "accessgate.return_to"
)

// Metadata key names used when scope values travel as maps (preferences,
// log fields, adapter metadata).
const (
	MetadataUserID    = "user_id"
	MetadataTenantID  = "tenant_id"
	MetadataProjectID = "project_id"
)

// WithPrincipal stores the authenticated principal in context.
func WithPrincipal(ctx context.Context, principal *gate.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// Principal extracts the authenticated principal from context.
func Principal(ctx context.Context) (*gate.Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	principal, ok := ctx.Value(principalKey).(*gate.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

// WithTenantIdentifier stores the selected tenant identifier in context.
func WithTenantIdentifier(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, tenantKey, strings.TrimSpace(identifier))
}

// TenantIdentifier extracts the selected tenant identifier from context.
func TenantIdentifier(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(tenantKey).(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// WithProjectID stores the selected project id in context.
func WithProjectID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, projectKey, id)
}

// ProjectID extracts the selected project id from context.
func ProjectID(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(projectKey).(int64)
	return id, ok
}

// WithReturnTo stores the originally requested path so login can send the
// user back there afterward.
func WithReturnTo(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, returnToKey, strings.TrimSpace(path))
}

// ReturnTo extracts the captured return path from context.
func ReturnTo(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(returnToKey).(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
