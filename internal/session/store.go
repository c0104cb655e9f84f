// Package session keeps uploaded workbooks in memory, one entry per
// upload, keyed by an opaque ID handed back to the client. Nothing is
// persisted; every filter change recomputes from the stored workbook.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetpulse/internal/fleet"
)

// entry is one stored workbook with its access bookkeeping.
type entry struct {
	workbook   *fleet.Workbook
	lastAccess time.Time
}

// Store is a mutex-guarded in-memory workbook store with TTL eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore creates a store whose entries expire after ttl of inactivity.
// A non-positive ttl disables eviction.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "session_store")),
		now:     time.Now,
	}
}

// Put stores a workbook and returns its new ID.
func (s *Store) Put(wb *fleet.Workbook) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.entries[id] = &entry{workbook: wb, lastAccess: s.now()}
	s.mu.Unlock()
	s.logger.Debug("workbook stored", slog.String("workbook_id", id))
	return id
}

// Get returns the workbook for id and refreshes its access time. The
// second return is false when the ID is unknown or already evicted.
func (s *Store) Get(id string) (*fleet.Workbook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastAccess = s.now()
	return e.workbook, true
}

// Delete removes a stored workbook.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len returns the number of stored workbooks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// PurgeExpired drops entries idle longer than the TTL and returns how many
// were removed.
func (s *Store) PurgeExpired() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.lastAccess.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired workbooks purged", slog.Int("count", removed))
	}
	return removed
}

// RunJanitor purges expired entries on the given interval until the
// context is cancelled. Intended to run in its own goroutine.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.PurgeExpired()
		}
	}
}
