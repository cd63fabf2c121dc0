package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	snap      Snapshot
	expiresAt time.Time
}

// MemorySnapshotStore keeps snapshots in process memory. With a TTL each
// save extends the entry's lifetime, like the Redis store.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemorySnapshotStore creates an empty store whose entries never expire
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return NewExpiringMemorySnapshotStore(0)
}

// NewExpiringMemorySnapshotStore creates an empty store dropping entries ttl after their last save
func NewExpiringMemorySnapshotStore(ttl time.Duration) *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snaps: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemorySnapshotStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemorySnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{snap: snap}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.snaps[snap.ID] = e
	return nil
}

func (m *MemorySnapshotStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.snaps[id]
	if !ok || m.expired(e, m.now()) {
		return nil, ErrSessionNotFound
	}
	snap := e.snap
	return &snap, nil
}

func (m *MemorySnapshotStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}

// DeleteExpired removes entries past their TTL and returns how many went
func (m *MemorySnapshotStore) DeleteExpired(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, e := range m.snaps {
		if m.expired(e, now) {
			delete(m.snaps, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included
func (m *MemorySnapshotStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snaps)
}
