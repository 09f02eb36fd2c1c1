package optionsadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-options/pkg/state"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/scope"
	"github.com/goliatone/go-accessgate/store"
)

type memoryStateStore struct {
	snapshots map[string]map[string]any
	loadErr   error
	saveErr   error
	lastRef   state.Ref
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{snapshots: map[string]map[string]any{}}
}

func refKey(ref state.Ref) string {
	userID, _ := ref.Scope.Metadata[scope.MetadataUserID].(string)
	return ref.Domain + "|" + ref.Scope.Name + "|" + userID
}

func (m *memoryStateStore) Load(_ context.Context, ref state.Ref) (map[string]any, state.Meta, bool, error) {
	m.lastRef = ref
	if m.loadErr != nil {
		return nil, state.Meta{}, false, m.loadErr
	}
	snapshot, ok := m.snapshots[refKey(ref)]
	return snapshot, state.Meta{}, ok, nil
}

func (m *memoryStateStore) Save(_ context.Context, ref state.Ref, snapshot map[string]any, _ state.Meta) (state.Meta, error) {
	m.lastRef = ref
	if m.saveErr != nil {
		return state.Meta{}, m.saveErr
	}
	m.snapshots[refKey(ref)] = snapshot
	return state.Meta{}, nil
}

func TestOptionsStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	adapter := NewStore(stateStore)
	projectID := int64(5)

	if err := adapter.Save(ctx, "user-1", store.Record{TenantIdentifier: "T1", ProjectID: &projectID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, ok, err := adapter.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected record")
	}
	if record.TenantIdentifier != "T1" || record.ProjectID == nil || *record.ProjectID != 5 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestOptionsStoreWritesUserScope(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	adapter := NewStore(stateStore, WithDomain("admin"))

	if err := adapter.Save(ctx, "user-1", store.Record{TenantIdentifier: "T1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stateStore.lastRef.Domain != "admin" {
		t.Fatalf("expected custom domain, got %q", stateStore.lastRef.Domain)
	}
	if stateStore.lastRef.Scope.Name != "user" {
		t.Fatalf("expected user scope, got %q", stateStore.lastRef.Scope.Name)
	}
	if id, _ := stateStore.lastRef.Scope.Metadata[scope.MetadataUserID].(string); id != "user-1" {
		t.Fatalf("expected user id metadata, got %q", id)
	}
}

func TestOptionsStoreSaveWithoutProjectDropsProjectKey(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	adapter := NewStore(stateStore)
	projectID := int64(5)

	if err := adapter.Save(ctx, "user-1", store.Record{TenantIdentifier: "T1", ProjectID: &projectID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := adapter.Save(ctx, "user-1", store.Record{TenantIdentifier: "T2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, ok, err := adapter.Load(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("unexpected load result: %+v %v %v", record, ok, err)
	}
	if record.TenantIdentifier != "T2" || record.ProjectID != nil {
		t.Fatalf("tenant change must drop the project, got %+v", record)
	}
}

func TestOptionsStoreClearRemovesSelection(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	adapter := NewStore(stateStore)

	if err := adapter.Save(ctx, "user-1", store.Record{TenantIdentifier: "T1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := adapter.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := adapter.Load(ctx, "user-1"); ok {
		t.Fatalf("expected cleared selection")
	}
}

func TestOptionsStoreWrapsBackendErrors(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	stateStore.loadErr = errors.New("backend down")
	adapter := NewStore(stateStore)

	_, _, err := adapter.Load(ctx, "user-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeStoreReadFailed {
		t.Fatalf("expected read-failed wrap, got %v", err)
	}
}

func TestOptionsStoreRequiresUserID(t *testing.T) {
	adapter := NewStore(newMemoryStateStore())

	if err := adapter.Save(context.Background(), " ", store.Record{TenantIdentifier: "T1"}); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}
