// Package notify runs the high-risk sweep: every employee whose latest result is High gets the
// follow-up workflow triggered again, at most once per cooldown window.
package notify

import (
	"context"
	"sync"
	"time"
)

// CooldownStore remembers when each employee was last notified.
type CooldownStore interface {
	// Mark records that employeeID must not be notified again before until.
	Mark(ctx context.Context, employeeID int64, until time.Time)
	// Active reports whether employeeID is still inside its cooldown window.
	Active(ctx context.Context, employeeID int64) bool
}

// MemoryCooldownStore is an in-memory CooldownStore. State is lost on restart, so a restarted
// server may notify an employee again inside the window.
type MemoryCooldownStore struct {
	mu    sync.RWMutex
	until map[int64]time.Time
	nowF  func() time.Time
}

// NewMemoryCooldownStore returns an empty store.
func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{
		until: make(map[int64]time.Time),
		nowF:  time.Now,
	}
}

// Mark records the cooldown for employeeID.
func (s *MemoryCooldownStore) Mark(ctx context.Context, employeeID int64, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[employeeID] = until
}

// Active reports whether employeeID is inside its window. Expired entries are removed.
func (s *MemoryCooldownStore) Active(ctx context.Context, employeeID int64) bool {
	s.mu.RLock()
	until, ok := s.until[employeeID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if !until.After(s.nowF()) {
		s.mu.Lock()
		if cur, ok := s.until[employeeID]; ok && cur.Equal(until) {
			delete(s.until, employeeID)
		}
		s.mu.Unlock()
		return false
	}
	return true
}

// Len returns the number of tracked employees, including expired entries not yet removed.
func (s *MemoryCooldownStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.until)
}
