package gate

import "context"

// DecisionState is the outcome of a guard evaluation.
type DecisionState string

const (
	DecisionLoading  DecisionState = "loading"
	DecisionAllow    DecisionState = "allow"
	DecisionLogin    DecisionState = "login"
	DecisionFallback DecisionState = "fallback"
	DecisionRedirect DecisionState = "redirect"
	DecisionDenied   DecisionState = "denied"
)

// DecisionEvent is emitted after every guard evaluation so hosts can audit
// allow/deny traffic. Diagnostics only; values never include secrets.
type DecisionEvent struct {
	Route       string
	Path        string
	State       DecisionState
	PrincipalID string
	Required    Requirement
	RedirectTo  string
	ReturnTo    string
}

// DecisionHook receives decision events.
type DecisionHook interface {
	OnDecision(ctx context.Context, event DecisionEvent)
}

// DecisionHookFunc wraps a function as a DecisionHook.
type DecisionHookFunc func(context.Context, DecisionEvent)

// OnDecision implements DecisionHook.
func (fn DecisionHookFunc) OnDecision(ctx context.Context, event DecisionEvent) {
	if fn == nil {
		return
	}
	fn(ctx, event)
}
