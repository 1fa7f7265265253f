package state

import (
	"sync"
	"time"

	"github.com/mverdu/skylark/internal/mpv"
)

// Snapshot is the latest sampled playback state plus sampling health.
type Snapshot struct {
	State       mpv.PlaybackState
	HasState    bool
	LastUpdated time.Time
	// ConsecutiveMisses counts ticks in a row where the engine answered
	// no query at all.
	ConsecutiveMisses int
}

// IsStalled reports whether the engine has gone quiet for multiple ticks.
func (s Snapshot) IsStalled() bool {
	return s.ConsecutiveMisses >= 2
}

// Store coordinates the handoff between the sampler and anything that
// wants to observe the session, replacing the snapshot wholesale each
// tick.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish records the snapshot for this tick. responded=false keeps the
// previous state visible but counts the miss.
func (s *Store) Publish(st mpv.PlaybackState, responded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if !responded {
		s.snapshot.ConsecutiveMisses++
		return
	}
	s.snapshot.State = st
	s.snapshot.HasState = true
	s.snapshot.ConsecutiveMisses = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
