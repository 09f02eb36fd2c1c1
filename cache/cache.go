package cache

import (
	"context"
	"sync"

	"github.com/goliatone/go-accessgate/gate"
)

// Cache stores hydrated tenant detail records by tenant id so repeated
// admin hydration runs skip tenants already resolved this session.
type Cache interface {
	Get(ctx context.Context, tenantID string) (gate.AccessibleTenant, bool)
	Set(ctx context.Context, tenantID string, tenant gate.AccessibleTenant)
	Delete(ctx context.Context, tenantID string)
	Clear(ctx context.Context)
}

// NoopCache ignores all cache operations.
type NoopCache struct{}

// Get implements Cache.
func (NoopCache) Get(context.Context, string) (gate.AccessibleTenant, bool) {
	return gate.AccessibleTenant{}, false
}

// Set implements Cache.
func (NoopCache) Set(context.Context, string, gate.AccessibleTenant) {}

// Delete implements Cache.
func (NoopCache) Delete(context.Context, string) {}

// Clear implements Cache.
func (NoopCache) Clear(context.Context) {}

// MemoryCache keeps tenant details in memory for the session.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]gate.AccessibleTenant
}

// NewMemoryCache constructs an in-memory tenant detail cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]gate.AccessibleTenant{}}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, tenantID string) (gate.AccessibleTenant, bool) {
	if c == nil {
		return gate.AccessibleTenant{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	tenant, ok := c.entries[tenantID]
	return tenant, ok
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, tenantID string, tenant gate.AccessibleTenant) {
	if c == nil || tenantID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]gate.AccessibleTenant{}
	}
	c.entries[tenantID] = tenant
}

// Delete implements Cache.
func (c *MemoryCache) Delete(_ context.Context, tenantID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
}

// Clear implements Cache.
func (c *MemoryCache) Clear(context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]gate.AccessibleTenant{}
}

var _ Cache = NoopCache{}
var _ Cache = (*MemoryCache)(nil)
