package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubEngine struct {
	mu     sync.Mutex
	name   string
	status ProbeStatus
	probes int
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Probe(ctx context.Context) ProbeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes++
	return s.status
}

func (s *stubEngine) Transcribe(ctx context.Context, req *Request, progress ProgressFunc) (*Result, error) {
	return &Result{Text: "stub"}, nil
}

func (s *stubEngine) probeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probes
}

func TestAvailabilityCacheMemoizesWithinTTL(t *testing.T) {
	eng := &stubEngine{name: "stub", status: ProbeStatus{Available: true}}
	cache := NewAvailabilityCache(time.Minute, time.Second)

	first := cache.Probe(context.Background(), eng)
	second := cache.Probe(context.Background(), eng)

	assert.True(t, first.Available)
	assert.Equal(t, first.CheckedAt, second.CheckedAt)
	assert.Equal(t, 1, eng.probeCount())
}

func TestAvailabilityCacheExpires(t *testing.T) {
	eng := &stubEngine{name: "stub", status: ProbeStatus{Available: true}}
	cache := NewAvailabilityCache(10*time.Millisecond, time.Second)

	cache.Probe(context.Background(), eng)
	time.Sleep(20 * time.Millisecond)
	cache.Probe(context.Background(), eng)

	assert.Equal(t, 2, eng.probeCount())
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	eng := &stubEngine{name: "stub", status: ProbeStatus{Available: false, Detail: "down"}}
	cache := NewAvailabilityCache(time.Minute, time.Second)

	cache.Probe(context.Background(), eng)
	cache.Invalidate("stub")
	cache.Probe(context.Background(), eng)

	assert.Equal(t, 2, eng.probeCount())
}

func TestAvailabilityCacheSnapshotIsCopy(t *testing.T) {
	eng := &stubEngine{name: "stub", status: ProbeStatus{Available: true}}
	cache := NewAvailabilityCache(time.Minute, time.Second)
	cache.Probe(context.Background(), eng)

	snap := cache.Snapshot()
	delete(snap, "stub")

	_, ok := cache.Snapshot()["stub"]
	assert.True(t, ok)
}
