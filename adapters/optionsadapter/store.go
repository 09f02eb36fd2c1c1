package optionsadapter

import (
	"context"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/goliatone/go-options/pkg/state"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/scope"
	"github.com/goliatone/go-accessgate/store"
)

const priorityUser = 40

// DefaultDomain is the options domain used for console selections.
const DefaultDomain = "console"

const (
	keyTenant  = "selection.tenant"
	keyProject = "selection.project"
)

// ErrStoreRequired indicates the underlying state store is missing.
var ErrStoreRequired = aerrors.ErrStoreRequired

// Option customizes the Store adapter.
type Option func(*Store)

// Store persists per-user selections through a go-options state.Store.
// Selections live at the user level; the tenant identifier and project id
// are written together so a reader never observes a mismatched pair.
type Store struct {
	stateStore state.Store[map[string]any]
	domain     string
}

// NewStore constructs an adapter backed by a go-options state.Store.
func NewStore(stateStore state.Store[map[string]any], opts ...Option) *Store {
	adapter := &Store{
		stateStore: stateStore,
		domain:     DefaultDomain,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(adapter)
		}
	}
	if adapter.domain == "" {
		adapter.domain = DefaultDomain
	}
	return adapter
}

// WithDomain sets the options domain used for selections.
func WithDomain(domain string) Option {
	return func(adapter *Store) {
		if adapter == nil {
			return
		}
		adapter.domain = strings.TrimSpace(domain)
	}
}

// Load implements store.Store.
func (s *Store) Load(ctx context.Context, userID string) (store.Record, bool, error) {
	if s == nil || s.stateStore == nil {
		return store.Record{}, false, storeRequiredError(userID, "load")
	}
	ref, err := s.userRef(userID, "load")
	if err != nil {
		return store.Record{}, false, err
	}

	snapshot, _, ok, err := s.stateStore.Load(ctx, ref)
	if err != nil {
		return store.Record{}, false, aerrors.WrapExternal(err, aerrors.TextCodeStoreReadFailed, "optionsadapter: load failed", s.meta(userID, "load"))
	}
	if !ok || len(snapshot) == 0 {
		return store.Record{}, false, nil
	}

	record := store.Record{}
	if value, found := lookupPath(snapshot, keyTenant); found {
		if tenant, ok := value.(string); ok {
			record.TenantIdentifier = strings.TrimSpace(tenant)
		}
	}
	if value, found := lookupPath(snapshot, keyProject); found {
		if id, ok := projectID(value); ok {
			record.ProjectID = &id
		}
	}
	if !record.HasTenant() {
		return store.Record{}, false, nil
	}
	return record, true, nil
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, userID string, record store.Record) error {
	if s == nil || s.stateStore == nil {
		return storeRequiredError(userID, "save")
	}
	return s.mutate(ctx, userID, "save", func(snapshot map[string]any) error {
		if err := setPath(snapshot, keyTenant, record.TenantIdentifier); err != nil {
			return err
		}
		if record.ProjectID != nil {
			return setPath(snapshot, keyProject, *record.ProjectID)
		}
		deletePath(snapshot, keyProject)
		return nil
	})
}

// Clear implements store.Store.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if s == nil || s.stateStore == nil {
		return storeRequiredError(userID, "clear")
	}
	return s.mutate(ctx, userID, "clear", func(snapshot map[string]any) error {
		deletePath(snapshot, keyTenant)
		deletePath(snapshot, keyProject)
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, userID, operation string, apply func(map[string]any) error) error {
	ref, err := s.userRef(userID, operation)
	if err != nil {
		return err
	}
	resolver := state.Resolver[map[string]any]{Store: s.stateStore}
	_, _, err = resolver.Mutate(ctx, ref, state.Meta{}, func(snapshot *map[string]any) error {
		if snapshot == nil {
			return aerrors.NewInternal(aerrors.TextCodeAdapterFailed, "optionsadapter: snapshot is nil", s.meta(userID, operation))
		}
		if *snapshot == nil {
			*snapshot = map[string]any{}
		}
		return apply(*snapshot)
	})
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeStoreWriteFailed, "optionsadapter: "+operation+" failed", s.meta(userID, operation))
	}
	return nil
}

func (s *Store) userRef(userID, operation string) (state.Ref, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return state.Ref{}, aerrors.NewBadInput(aerrors.TextCodeAdapterFailed, "optionsadapter: user id required", s.meta(userID, operation))
	}
	scopeDef := opts.NewScope(
		"user",
		priorityUser,
		opts.WithScopeLabel("User"),
		opts.WithScopeMetadata(map[string]any{scope.MetadataUserID: userID}),
	)
	return state.Ref{Domain: s.domain, Scope: scopeDef}, nil
}

func (s *Store) meta(userID, operation string) map[string]any {
	meta := map[string]any{
		aerrors.MetaAdapter:   "options",
		aerrors.MetaStore:     "state",
		aerrors.MetaOperation: operation,
		aerrors.MetaUserID:    strings.TrimSpace(userID),
	}
	if s != nil && strings.TrimSpace(s.domain) != "" {
		meta["domain"] = strings.TrimSpace(s.domain)
	}
	return meta
}

func projectID(value any) (int64, bool) {
	switch typed := value.(type) {
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	case float64:
		return int64(typed), true
	default:
		return 0, false
	}
}

func storeRequiredError(userID, operation string) error {
	return aerrors.WrapSentinel(aerrors.ErrStoreRequired, "optionsadapter: state store is required", map[string]any{
		aerrors.MetaAdapter:   "options",
		aerrors.MetaStore:     "state",
		aerrors.MetaOperation: operation,
		aerrors.MetaUserID:    strings.TrimSpace(userID),
	})
}

var _ store.Store = (*Store)(nil)
