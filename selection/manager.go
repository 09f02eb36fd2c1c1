package selection

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-accessgate/activity"
	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/logger"
	"github.com/goliatone/go-accessgate/store"
)

// Manager owns the selection state for one user session. Mutations are
// explicit; background data loads never change the selection. When a store
// and user id are configured, every mutation persists the tenant/project
// pair as a unit.
type Manager struct {
	mu     sync.RWMutex
	userID string
	state  State
	store  store.Store
	hooks  []activity.Hook
	logger logger.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithStore sets the persistence store.
func WithStore(s store.Store) Option {
	return func(m *Manager) {
		if m == nil {
			return
		}
		m.store = s
	}
}

// WithUserID sets the user the persisted selection is keyed by.
func WithUserID(userID string) Option {
	return func(m *Manager) {
		if m == nil {
			return
		}
		m.userID = strings.TrimSpace(userID)
	}
}

// WithHook registers a selection hook.
func WithHook(hook activity.Hook) Option {
	return func(m *Manager) {
		if m == nil || hook == nil {
			return
		}
		m.hooks = append(m.hooks, hook)
	}
}

// WithLogger sets the logger.
func WithLogger(lgr logger.Logger) Option {
	return func(m *Manager) {
		if m == nil {
			return
		}
		m.logger = lgr
	}
}

// NewManager constructs a Manager with the provided options.
func NewManager(options ...Option) *Manager {
	m := &Manager{}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	if m.logger == nil {
		m.logger = logger.Default()
	}
	return m
}

// State returns a copy of the current selection.
func (m *Manager) State() State {
	if m == nil {
		return State{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyState(m.state)
}

// Derived computes the derived flags against the given snapshot.
func (m *Manager) Derived(snapshot *gate.AccessSnapshot, loading bool) Derived {
	return Derive(snapshot, m.State(), loading)
}

// Restore loads the persisted selection, if any. A restored tenant counts
// as confirmed: it could only have been persisted by an explicit selection.
func (m *Manager) Restore(ctx context.Context) error {
	if m == nil || m.store == nil || m.userID == "" {
		return nil
	}
	record, ok, err := m.store.Load(ctx, m.userID)
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeStoreReadFailed, "selection restore failed", map[string]any{
			aerrors.MetaUserID:    m.userID,
			aerrors.MetaOperation: "restore",
		})
	}
	if !ok || !record.HasTenant() {
		return nil
	}
	m.mu.Lock()
	m.state = State{
		TenantIdentifier: record.TenantIdentifier,
		ProjectID:        copyProjectID(record.ProjectID),
		Confirmed:        true,
	}
	restored := copyState(m.state)
	m.mu.Unlock()
	m.emit(ctx, activity.ActionRestore, restored)
	return nil
}

// SelectTenant sets the selected tenant and unconditionally clears any
// selected project; a project belongs to exactly one tenant. Selecting the
// same tenant twice yields the same state as selecting it once.
func (m *Manager) SelectTenant(ctx context.Context, identifier string) error {
	if m == nil {
		return aerrors.ErrManagerRequired
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return aerrors.NewBadInput(aerrors.TextCodeTenantNotSelected, "tenant identifier required", map[string]any{
			aerrors.MetaOperation: "select_tenant",
		})
	}
	next := State{TenantIdentifier: identifier, Confirmed: true}
	if err := m.persist(ctx, next, "select_tenant"); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	m.emit(ctx, activity.ActionSelectTenant, copyState(next))
	return nil
}

// SelectProject sets the selected project under the current tenant. The
// tenant is left untouched.
func (m *Manager) SelectProject(ctx context.Context, projectID int64) error {
	if m == nil {
		return aerrors.ErrManagerRequired
	}
	m.mu.RLock()
	current := copyState(m.state)
	m.mu.RUnlock()
	if !current.HasTenant() {
		return aerrors.WrapSentinel(aerrors.ErrTenantNotSelected, "", map[string]any{
			aerrors.MetaProjectID: projectID,
			aerrors.MetaOperation: "select_project",
		})
	}
	next := State{
		TenantIdentifier: current.TenantIdentifier,
		ProjectID:        &projectID,
		Confirmed:        true,
	}
	if err := m.persist(ctx, next, "select_project"); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	m.emit(ctx, activity.ActionSelectProject, copyState(next))
	return nil
}

// ClearSelection resets both tenant and project and removes the persisted
// pair.
func (m *Manager) ClearSelection(ctx context.Context) error {
	if m == nil {
		return nil
	}
	if m.store != nil && m.userID != "" {
		if err := m.store.Clear(ctx, m.userID); err != nil {
			return aerrors.WrapExternal(err, aerrors.TextCodeStoreWriteFailed, "selection clear failed", map[string]any{
				aerrors.MetaUserID:    m.userID,
				aerrors.MetaOperation: "clear",
			})
		}
	}
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()
	m.emit(ctx, activity.ActionClear, State{})
	return nil
}

func (m *Manager) persist(ctx context.Context, next State, operation string) error {
	if m.store == nil || m.userID == "" {
		return nil
	}
	record := store.Record{
		TenantIdentifier: next.TenantIdentifier,
		ProjectID:        copyProjectID(next.ProjectID),
	}
	if err := m.store.Save(ctx, m.userID, record); err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeStoreWriteFailed, "selection persist failed", map[string]any{
			aerrors.MetaUserID:    m.userID,
			aerrors.MetaTenantID:  next.TenantIdentifier,
			aerrors.MetaOperation: operation,
		})
	}
	return nil
}

func (m *Manager) emit(ctx context.Context, action activity.Action, state State) {
	if len(m.hooks) == 0 {
		return
	}
	event := activity.SelectionEvent{
		UserID:           m.userID,
		Action:           action,
		TenantIdentifier: state.TenantIdentifier,
		ProjectID:        copyProjectID(state.ProjectID),
		Confirmed:        state.Confirmed,
	}
	for _, hook := range m.hooks {
		if hook == nil {
			continue
		}
		hook.OnSelection(ctx, event)
	}
}

func copyState(state State) State {
	state.ProjectID = copyProjectID(state.ProjectID)
	return state
}

func copyProjectID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}
