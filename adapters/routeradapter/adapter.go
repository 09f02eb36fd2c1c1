package routeradapter

import (
	"context"

	"github.com/goliatone/go-router"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/gate/guard"
	"github.com/goliatone/go-accessgate/routes"
	"github.com/goliatone/go-accessgate/scope"
)

// Context extracts the standard context from a router context.
func Context(ctx router.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx.Context()
}

// Principal extracts the authenticated principal carried on the request
// context, if any.
func Principal(ctx router.Context) (*gate.Principal, bool) {
	return scope.Principal(Context(ctx))
}

// EvaluatePath gates a request path against the catalog. Public routes
// always render; auth-only routes render for any authenticated principal;
// unknown paths report ErrRouteUnknown so hosts fail closed rather than
// silently allowing unlisted pages. loading reports whether the host's
// identity fetch is still in flight, which holds non-public routes in a
// loading outcome instead of redirecting to login.
func EvaluatePath(ctx router.Context, catalog routes.Catalog, path string, loading bool, opts ...guard.Option) (guard.Result, error) {
	if catalog == nil {
		return guard.Result{}, aerrors.WrapSentinel(aerrors.ErrCatalogRequired, "routeradapter: catalog is required", map[string]any{
			aerrors.MetaAdapter: "router",
			aerrors.MetaPath:    path,
		})
	}
	def, ok := catalog.Match(path)
	if !ok {
		return guard.Result{}, aerrors.WrapSentinel(aerrors.ErrRouteUnknown, "routeradapter: path is not in the catalog", map[string]any{
			aerrors.MetaAdapter: "router",
			aerrors.MetaPath:    path,
		})
	}

	stdctx := Context(ctx)
	principal, _ := scope.Principal(stdctx)
	if def.Public {
		return guard.Result{State: gate.DecisionAllow}, nil
	}

	opts = append(opts, guard.WithRoute(def.Name, path), guard.WithReturnTo(path))
	if def.AuthOnly {
		// Auth-only areas carry no permission requirement; an empty
		// requirement admits any authenticated principal.
		return guard.Evaluate(stdctx, principal, loading, gate.Requirement{}, opts...), nil
	}
	return guard.Evaluate(stdctx, principal, loading, def.Requirement, opts...), nil
}

// RequirePath is the error-returning form of EvaluatePath for middleware.
func RequirePath(ctx router.Context, catalog routes.Catalog, path string, loading bool, opts ...guard.Option) error {
	result, err := EvaluatePath(ctx, catalog, path, loading, opts...)
	if err != nil {
		return err
	}
	if result.Allowed() {
		return nil
	}
	if result.State == gate.DecisionLoading {
		return aerrors.WrapSentinel(aerrors.ErrSnapshotNotReady, "", map[string]any{
			aerrors.MetaPath: path,
		})
	}
	if result.State == gate.DecisionLogin {
		return aerrors.WrapSentinel(aerrors.ErrUnauthenticated, "", map[string]any{
			aerrors.MetaPath:     path,
			aerrors.MetaReturnTo: result.ReturnTo,
		})
	}
	return aerrors.WrapSentinel(aerrors.ErrUnauthorized, "", map[string]any{
		aerrors.MetaPath: path,
	})
}
