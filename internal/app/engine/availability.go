package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Default cadence and bound for availability probes.
const (
	DefaultProbeTTL     = 30 * time.Second
	DefaultProbeTimeout = 5 * time.Second
)

// AvailabilityCache memoizes probe results process-wide. Reads take an
// atomic snapshot; refreshes build a new map and swap it in, so concurrent
// readers never block behind a probe.
type AvailabilityCache struct {
	ttl     time.Duration
	timeout time.Duration

	snapshot atomic.Value // map[string]ProbeStatus
	refresh  sync.Mutex
}

// NewAvailabilityCache creates a cache with the given re-probe interval and
// per-probe timeout. Zero values fall back to the defaults.
func NewAvailabilityCache(ttl, timeout time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultProbeTTL
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	c := &AvailabilityCache{ttl: ttl, timeout: timeout}
	c.snapshot.Store(map[string]ProbeStatus{})
	return c
}

// Probe returns the cached status for eng, probing it when the cached entry
// is missing or older than the TTL.
func (c *AvailabilityCache) Probe(ctx context.Context, eng Engine) ProbeStatus {
	if status, ok := c.cached(eng.Name()); ok {
		return status
	}

	c.refresh.Lock()
	defer c.refresh.Unlock()

	// Re-check under the lock; another caller may have refreshed already.
	if status, ok := c.cached(eng.Name()); ok {
		return status
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := eng.Probe(probeCtx)
	status.CheckedAt = time.Now()
	observeProbe(eng.Name(), status.Available)

	old := c.snapshot.Load().(map[string]ProbeStatus)
	next := make(map[string]ProbeStatus, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[eng.Name()] = status
	c.snapshot.Store(next)

	return status
}

// Snapshot returns the current cache contents without probing.
func (c *AvailabilityCache) Snapshot() map[string]ProbeStatus {
	old := c.snapshot.Load().(map[string]ProbeStatus)
	out := make(map[string]ProbeStatus, len(old))
	for k, v := range old {
		out[k] = v
	}
	return out
}

// Invalidate drops the cached entry for an engine, forcing the next Probe to
// hit it again.
func (c *AvailabilityCache) Invalidate(name string) {
	c.refresh.Lock()
	defer c.refresh.Unlock()

	old := c.snapshot.Load().(map[string]ProbeStatus)
	next := make(map[string]ProbeStatus, len(old))
	for k, v := range old {
		if k != name {
			next[k] = v
		}
	}
	c.snapshot.Store(next)
}

func (c *AvailabilityCache) cached(name string) (ProbeStatus, bool) {
	m := c.snapshot.Load().(map[string]ProbeStatus)
	status, ok := m[name]
	if !ok || time.Since(status.CheckedAt) > c.ttl {
		return ProbeStatus{}, false
	}
	return status, true
}
