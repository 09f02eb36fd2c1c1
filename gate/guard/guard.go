package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
)

// DefaultLoginPath is the redirect target for unauthenticated principals
// when no login path is configured.
const DefaultLoginPath = "/login"

// Denial carries the diagnostics for a denied evaluation: the unmet
// requirement and the principal's actual sets. Diagnostic output only,
// never secrets.
type Denial struct {
	RequiredPermissions []string
	RequiredRoles       []string
	RequireAll          bool
	ActualPermissions   []string
	ActualRoles         []string
}

// Message renders a human-readable denial explanation naming the unmet
// requirement and what the principal actually holds.
func (d Denial) Message() string {
	combinator := "any of"
	if d.RequireAll {
		combinator = "all of"
	}
	if len(d.RequiredPermissions) > 0 {
		return fmt.Sprintf("access denied: requires %s permissions [%s]; principal has [%s]",
			combinator,
			strings.Join(d.RequiredPermissions, ", "),
			strings.Join(d.ActualPermissions, ", "))
	}
	return fmt.Sprintf("access denied: requires %s roles [%s]; principal has [%s]",
		combinator,
		strings.Join(d.RequiredRoles, ", "),
		strings.Join(d.ActualRoles, ", "))
}

// Result is the outcome of a guard evaluation. Exactly one of the decision
// states applies; RedirectTo is set for login and redirect outcomes, Denial
// for denied ones.
type Result struct {
	State      gate.DecisionState
	RedirectTo string
	ReturnTo   string
	Denial     *Denial
}

// Allowed reports whether the area should render.
func (r Result) Allowed() bool {
	return r.State == gate.DecisionAllow
}

type config struct {
	route     string
	path      string
	loginPath string
	returnTo  string
	redirect  string
	fallback  bool
	hooks     []gate.DecisionHook
}

// Option configures an evaluation.
type Option func(*config)

// WithRoute attaches the area name and request path for decision events.
func WithRoute(name, path string) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.route = name
		c.path = path
	}
}

// WithLoginPath overrides the login redirect target.
func WithLoginPath(path string) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.loginPath = strings.TrimSpace(path)
	}
}

// WithReturnTo captures the originally requested path so login can return
// the user there afterward.
func WithReturnTo(path string) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.returnTo = strings.TrimSpace(path)
	}
}

// WithRedirect sets a redirect target used instead of the denied view.
func WithRedirect(path string) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.redirect = strings.TrimSpace(path)
	}
}

// WithFallback renders a host-supplied fallback on denial instead of
// redirecting. Fallback wins over a configured redirect.
func WithFallback() Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.fallback = true
	}
}

// WithDecisionHook registers a decision hook.
func WithDecisionHook(hook gate.DecisionHook) Option {
	return func(c *config) {
		if c == nil || hook == nil {
			return
		}
		c.hooks = append(c.hooks, hook)
	}
}

// Evaluate decides whether a protected area renders for the principal.
// Checks run top to bottom, first match wins: loading, unauthenticated,
// permission rule, role rule, denial policy, unconditional allow. A
// permission rule always wins over a role rule when both are present.
func Evaluate(ctx context.Context, principal *gate.Principal, loading bool, req gate.Requirement, opts ...Option) Result {
	cfg := &config{loginPath: DefaultLoginPath}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.loginPath == "" {
		cfg.loginPath = DefaultLoginPath
	}

	result := evaluate(principal, loading, req, cfg)
	emit(ctx, cfg, principal, req, result)
	return result
}

func evaluate(principal *gate.Principal, loading bool, req gate.Requirement, cfg *config) Result {
	if loading {
		return Result{State: gate.DecisionLoading}
	}
	if principal == nil {
		return Result{
			State:      gate.DecisionLogin,
			RedirectTo: cfg.loginPath,
			ReturnTo:   cfg.returnTo,
		}
	}
	if req.Satisfied(principal) {
		return Result{State: gate.DecisionAllow}
	}
	if cfg.fallback {
		return Result{State: gate.DecisionFallback}
	}
	if cfg.redirect != "" {
		return Result{State: gate.DecisionRedirect, RedirectTo: cfg.redirect}
	}
	denial := &Denial{
		RequireAll:        req.RequireAll,
		ActualPermissions: principal.Permissions,
		ActualRoles:       principal.Roles,
	}
	if req.HasPermissionRule() {
		denial.RequiredPermissions = req.PermissionList()
	} else {
		denial.RequiredRoles = req.RoleList()
	}
	return Result{State: gate.DecisionDenied, Denial: denial}
}

// Require is the programmatic form of Evaluate: it returns nil when access
// is granted and an aerrors sentinel otherwise.
func Require(ctx context.Context, principal *gate.Principal, loading bool, req gate.Requirement, opts ...Option) error {
	result := Evaluate(ctx, principal, loading, req, opts...)
	switch result.State {
	case gate.DecisionAllow:
		return nil
	case gate.DecisionLoading:
		return aerrors.WrapSentinel(aerrors.ErrSnapshotNotReady, "", map[string]any{
			aerrors.MetaOperation: "require",
		})
	case gate.DecisionLogin:
		return aerrors.WrapSentinel(aerrors.ErrUnauthenticated, "", map[string]any{
			aerrors.MetaReturnTo:  result.ReturnTo,
			aerrors.MetaOperation: "require",
		})
	default:
		meta := map[string]any{
			aerrors.MetaOperation:  "require",
			aerrors.MetaRequireAll: req.RequireAll,
		}
		if req.HasPermissionRule() {
			meta[aerrors.MetaPermissions] = req.PermissionList()
		} else if req.HasRoleRule() {
			meta[aerrors.MetaRoles] = req.RoleList()
		}
		return aerrors.WrapSentinel(aerrors.ErrUnauthorized, "", meta)
	}
}

func emit(ctx context.Context, cfg *config, principal *gate.Principal, req gate.Requirement, result Result) {
	if len(cfg.hooks) == 0 {
		return
	}
	event := gate.DecisionEvent{
		Route:      cfg.route,
		Path:       cfg.path,
		State:      result.State,
		Required:   req,
		RedirectTo: result.RedirectTo,
		ReturnTo:   result.ReturnTo,
	}
	if principal != nil {
		event.PrincipalID = principal.ID
	}
	for _, hook := range cfg.hooks {
		if hook == nil {
			continue
		}
		hook.OnDecision(ctx, event)
	}
}
