package entity

import (
	"sync"
	"time"

	"github.com/nerrad567/evobridge/internal/evohome"
)

// Store holds the most recent status snapshot polled from the cloud.
// The controller replaces the whole snapshot atomically after each
// refresh; zones and the hot-water device only ever read their own
// slice of it. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	status    *evohome.SystemStatus
	updatedAt time.Time
}

// NewStore creates an empty status store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a fresh snapshot, discarding the previous one.
func (s *Store) Replace(status *evohome.SystemStatus, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.updatedAt = at
}

// System returns the controller's mode status from the current
// snapshot. The second return is false before the first poll lands.
func (s *Store) System() (evohome.SystemModeStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return evohome.SystemModeStatus{}, false
	}
	return s.status.SystemModeStatus, true
}

// Zone returns the status slice for a single zone by vendor ID.
func (s *Store) Zone(id string) (evohome.ZoneStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return evohome.ZoneStatus{}, false
	}
	for _, z := range s.status.Zones {
		if z.ZoneID == id {
			return z, true
		}
	}
	return evohome.ZoneStatus{}, false
}

// DHW returns the stored hot water status, if the installation has a
// stored hot water device and a snapshot exists.
func (s *Store) DHW() (evohome.DHWStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil || s.status.DHW == nil {
		return evohome.DHWStatus{}, false
	}
	return *s.status.DHW, true
}

// UpdatedAt reports when the current snapshot was installed. Zero
// before the first poll.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
