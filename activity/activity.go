package activity

import "context"

// Action describes a selection mutation.
type Action string

const (
	ActionSelectTenant  Action = "select_tenant"
	ActionSelectProject Action = "select_project"
	ActionClear         Action = "clear"
	ActionRestore       Action = "restore"
)

// SelectionEvent captures a selection mutation after it has been persisted.
type SelectionEvent struct {
	UserID           string
	Action           Action
	TenantIdentifier string
	ProjectID        *int64
	Confirmed        bool
}

// Hook receives selection events.
type Hook interface {
	OnSelection(ctx context.Context, event SelectionEvent)
}

// HookFunc wraps a function as a Hook.
type HookFunc func(context.Context, SelectionEvent)

// OnSelection implements Hook.
func (fn HookFunc) OnSelection(ctx context.Context, event SelectionEvent) {
	if fn == nil {
		return
	}
	fn(ctx, event)
}

// NoopHook ignores selection events.
type NoopHook struct{}

// OnSelection implements Hook.
func (NoopHook) OnSelection(context.Context, SelectionEvent) {}
