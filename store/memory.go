package store

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrMemoryStoreRequired signals a missing memory store.
var ErrMemoryStoreRequired = errors.New("store: memory store is required")

// ErrUserIDRequired signals a missing user id.
var ErrUserIDRequired = errors.New("store: user id required")

// MemoryStore keeps selections in memory for tests and examples.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Record
}

// NewMemoryStore constructs an in-memory selection store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Record{}}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, userID string) (Record, bool, error) {
	if m == nil {
		return Record{}, false, ErrMemoryStoreRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return Record{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.entries[userID]
	return record, ok, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, userID string, record Record) error {
	if m == nil {
		return ErrMemoryStoreRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[string]Record{}
	}
	m.entries[userID] = record
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context, userID string) error {
	if m == nil {
		return ErrMemoryStoreRequired
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrUserIDRequired
	}
	return userID, nil
}

var _ Store = (*MemoryStore)(nil)
