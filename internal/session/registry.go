// Package session keeps the per-visitor storefront and chat state.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/store"
)

var ErrSessionNotFound = errors.New("session not found")

// Session bundles the storefront store and chat panel of one visitor
type Session struct {
	ID        string
	CreatedAt time.Time
	Catalog   *store.Store
	Chat      *chat.Session

	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns when the session was last resolved
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Snapshot is the persisted form of a Session
type Snapshot struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	State      store.State      `json:"state"`
	Transcript []models.Message `json:"transcript"`
	Language   models.Language  `json:"language"`
}

// SnapshotStore persists session snapshots
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// expirer is implemented by snapshot stores that drop expired entries on demand
type expirer interface {
	DeleteExpired(ctx context.Context) int
}

// ChatFactory builds a fresh chat session
type ChatFactory func() *chat.Session

// Registry creates, resolves and persists sessions
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	catalog   []models.Product
	newChat   ChatFactory
	snapshots SnapshotStore
	now       func() time.Time
	log       *slog.Logger
}

// NewRegistry creates a registry. A nil snapshot store keeps sessions in memory only.
func NewRegistry(catalog []models.Product, newChat ChatFactory, snapshots SnapshotStore, log *slog.Logger) *Registry {
	if snapshots == nil {
		snapshots = NewMemorySnapshotStore()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		catalog:   catalog,
		newChat:   newChat,
		snapshots: snapshots,
		now:       time.Now,
		log:       log,
	}
}

// Create starts a new session with an empty cart and a greeting transcript
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: r.now(),
		Catalog:   store.New(r.catalog),
		Chat:      r.newChat(),
	}
	sess.touch(sess.CreatedAt)

	if err := r.Persist(ctx, sess); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.log.Info("session created", "session_id", sess.ID)
	return sess, nil
}

// Get resolves id, rehydrating from the snapshot store when it is not resident
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		sess.touch(r.now())
		return sess, nil
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	snap, err := r.snapshots.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	sess = &Session{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		Catalog:   store.NewFromState(r.catalog, snap.State),
		Chat:      r.newChat(),
	}
	if err := sess.Chat.Restore(snap.Transcript, snap.Language); err != nil {
		return nil, fmt.Errorf("restore transcript: %w", err)
	}

	r.mu.Lock()
	// another request may have rehydrated the same session meanwhile
	if existing, ok := r.sessions[id]; ok {
		sess = existing
	} else {
		r.sessions[id] = sess
	}
	r.mu.Unlock()
	sess.touch(r.now())

	r.log.Debug("session rehydrated", "session_id", id)
	return sess, nil
}

// Persist writes the current session state to the snapshot store
func (r *Registry) Persist(ctx context.Context, sess *Session) error {
	return r.PersistState(ctx, sess, sess.Catalog.State())
}

// PersistState writes sess with state in place of its published storefront state
func (r *Registry) PersistState(ctx context.Context, sess *Session, state store.State) error {
	snap := Snapshot{
		ID:         sess.ID,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  r.now(),
		State:      state,
		Transcript: sess.Chat.Transcript(),
		Language:   sess.Chat.Language(),
	}
	if err := r.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete forgets a session
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	return r.snapshots.Delete(ctx, id)
}

// EvictIdle drops resident sessions not resolved within idle. They are saved
// first so a later Get rehydrates them; sessions waiting on a chat reply stay.
// Snapshot stores that support it also drop their expired entries.
func (r *Registry) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.RLock()
	var stale []*Session
	for _, sess := range r.sessions {
		if sess.LastSeen().Before(cutoff) && sess.Chat.Status() == chat.StatusIdle {
			stale = append(stale, sess)
		}
	}
	r.mu.RUnlock()

	evicted := 0
	for _, sess := range stale {
		if err := r.Persist(ctx, sess); err != nil {
			r.log.Warn("failed to save idle session, keeping it resident", "session_id", sess.ID, "error", err)
			continue
		}

		r.mu.Lock()
		if cur, ok := r.sessions[sess.ID]; ok && cur == sess && sess.LastSeen().Before(cutoff) {
			delete(r.sessions, sess.ID)
			evicted++
		}
		r.mu.Unlock()
	}

	if e, ok := r.snapshots.(expirer); ok {
		if n := e.DeleteExpired(ctx); n > 0 {
			r.log.Debug("expired session snapshots removed", "count", n)
		}
	}
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done
func (r *Registry) RunJanitor(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.EvictIdle(ctx, idle); n > 0 {
				r.log.Info("idle sessions evicted", "count", n, "resident", r.Len())
			}
		}
	}
}

// Len returns the number of resident sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
