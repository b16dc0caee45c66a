package matching

import (
	"context"
	"sync"
	"time"
)

// memoryPending keeps presentations in process memory. The engine falls
// back to it when no Redis is wired; it is not shared between replicas.
type memoryPending struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[uint64]pendingEntry
}

type pendingEntry struct {
	candidateID uint64
	expires     time.Time
}

func newMemoryPending(now func() time.Time) *memoryPending {
	return &memoryPending{now: now, entries: make(map[uint64]pendingEntry)}
}

func (p *memoryPending) SetPending(_ context.Context, viewerID, candidateID uint64, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[viewerID] = pendingEntry{candidateID: candidateID, expires: p.now().Add(ttl)}
	return nil
}

func (p *memoryPending) ClaimPending(_ context.Context, viewerID, candidateID uint64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[viewerID]
	if !ok {
		return false, nil
	}
	if !p.now().Before(e.expires) {
		delete(p.entries, viewerID)
		return false, nil
	}
	if e.candidateID != candidateID {
		return false, nil
	}
	delete(p.entries, viewerID)
	return true, nil
}
