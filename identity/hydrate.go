package identity

import (
	"context"
	"sync"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
)

// PlaceholderTenant builds the degraded record substituted when a tenant
// detail fetch fails: truncated-id name, no projects. The admin can still
// pick the tenant; details fill in on a later refresh.
func PlaceholderTenant(tenantID string) gate.AccessibleTenant {
	return gate.AccessibleTenant{
		TenantID:         tenantID,
		TenantName:       "Tenant " + truncateID(tenantID),
		TenantIdentifier: tenantID,
	}
}

// HydrateAdminTenants fetches detail records for admin tenant ids that are
// missing from the snapshot's tenant list, one concurrent call per id, and
// merges them in once all calls finish. A slow or failing individual
// lookup degrades to a placeholder record; it never blocks or fails the
// batch. Loading reports true until the merge lands.
func (s *Store) HydrateAdminTenants(ctx context.Context) error {
	if s == nil || s.provider == nil {
		return aerrors.ErrProviderRequired
	}
	snapshot := s.Snapshot()
	if snapshot == nil || !snapshot.AdminDetailsPending() {
		return nil
	}

	missing := make([]string, 0, len(snapshot.TenantAdminTenantIDs))
	for _, id := range snapshot.TenantAdminTenantIDs {
		if _, ok := snapshot.TenantByID(id); !ok {
			missing = append(missing, id)
		}
	}

	s.mu.Lock()
	s.hydrating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.hydrating = false
		s.mu.Unlock()
	}()

	type result struct {
		tenant  gate.AccessibleTenant
		fetched bool
	}
	results := make([]result, len(missing))

	var wg sync.WaitGroup
	for i, id := range missing {
		if s.cache != nil {
			if cached, ok := s.cache.Get(ctx, id); ok {
				results[i] = result{tenant: cached, fetched: true}
				continue
			}
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			tenant, err := s.provider.TenantByID(ctx, id)
			if err != nil {
				s.logger.Warn("accessgate.tenant_detail_failed",
					"tenant_id", id,
					"error", err,
				)
				results[i] = result{tenant: PlaceholderTenant(id)}
				return
			}
			results[i] = result{tenant: tenant, fetched: true}
		}(i, id)
	}
	wg.Wait()

	merged := snapshot.Clone()
	for i, res := range results {
		merged.Tenants = append(merged.Tenants, res.tenant)
		// Placeholders stay out of the cache so the next hydration retries.
		if res.fetched && s.cache != nil {
			s.cache.Set(ctx, missing[i], res.tenant)
		}
	}
	s.SetSnapshot(merged)
	return nil
}

func truncateID(id string) string {
	const max = 8
	if len(id) <= max {
		return id
	}
	return id[:max]
}
