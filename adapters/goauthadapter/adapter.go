package goauthadapter

import (
	"context"

	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-auth"
)

// ActorExtractor extracts an auth.ActorContext from context.
type ActorExtractor func(context.Context) (*auth.ActorContext, bool)

// PermissionResolver maps an actor to its resolved permission set. go-auth
// carries roles on the actor; permission sets come from the host's own
// role-to-permission mapping.
type PermissionResolver func(*auth.ActorContext) []string

// Option customizes the principal resolver behavior.
type Option func(*PrincipalResolver)

// PrincipalResolver derives gate principals from go-auth actor context.
type PrincipalResolver struct {
	extractor   ActorExtractor
	permissions PermissionResolver
}

// NewPrincipalResolver builds a resolver using go-auth's actor context
// extractor.
func NewPrincipalResolver(opts ...Option) *PrincipalResolver {
	resolver := &PrincipalResolver{
		extractor: auth.ActorFromContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(resolver)
		}
	}
	if resolver.extractor == nil {
		resolver.extractor = auth.ActorFromContext
	}
	return resolver
}

// WithActorExtractor overrides the actor context extractor.
func WithActorExtractor(extractor ActorExtractor) Option {
	return func(resolver *PrincipalResolver) {
		if resolver == nil {
			return
		}
		resolver.extractor = extractor
	}
}

// WithPermissionResolver sets the role-to-permission mapping.
func WithPermissionResolver(permissions PermissionResolver) Option {
	return func(resolver *PrincipalResolver) {
		if resolver == nil {
			return
		}
		resolver.permissions = permissions
	}
}

// Resolve extracts the authenticated principal from context.
func (r *PrincipalResolver) Resolve(ctx context.Context) (*gate.Principal, bool) {
	if r == nil || r.extractor == nil {
		return nil, false
	}
	actor, ok := r.extractor(ctx)
	if !ok || actor == nil {
		return nil, false
	}
	principal := PrincipalFromActor(actor)
	if r.permissions != nil {
		principal.Permissions = r.permissions(actor)
	}
	return principal, true
}

// PrincipalFromActor builds a Principal from an auth.ActorContext.
func PrincipalFromActor(actor *auth.ActorContext) *gate.Principal {
	if actor == nil {
		return nil
	}
	id := actor.ActorID
	if id == "" {
		id = actor.Subject
	}
	principal := &gate.Principal{ID: id}
	if actor.Role != "" {
		principal.Roles = []string{actor.Role}
	}
	return principal
}
