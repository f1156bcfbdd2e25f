package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
)

// Key identifies one outstanding delayed action: the chain it belongs to,
// the phase index inside the chain and the stage name.
type Key struct {
	Chain string
	Phase int
	Stage string
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%s-%d", k.Chain, k.Stage, k.Phase)
}

type entry struct {
	timer clock.Timer
}

// Scheduler is the registry of every in-flight delayed action.
type Scheduler struct {
	clock clock.Clock

	mu         sync.Mutex
	entries    map[Key]*entry
	generation uint64
}

// New creates a Scheduler on the given clock.
func New(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.Real()
	}
	return &Scheduler{
		clock:   c,
		entries: make(map[Key]*entry),
	}
}

// Schedule registers action to run after delay. An existing entry with the
// same key is replaced. The action only runs if its entry is still
// registered when the timer fires.
func (s *Scheduler) Schedule(key Key, delay time.Duration, action func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		old.timer.Stop()
	}

	e := &entry{}
	s.entries[key] = e
	// s.mu is held until e.timer is set, so a fast real timer blocks in claim.
	e.timer = s.clock.AfterFunc(delay, func() {
		if s.claim(key, e) {
			action()
		}
	})
}

func (s *Scheduler) claim(key Key, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[key]
	if !ok || cur != e {
		return false
	}
	delete(s.entries, key)
	return true
}

// CancelAll stops every outstanding action and clears the registry. It is
// safe to call on an empty scheduler and any number of times.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, key)
	}
	s.generation++
}

// Generation counts CancelAll calls. Callers capture it when scheduling and
// compare on fire to drop work claimed just before a cancellation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Pending returns the number of registered actions.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Has reports whether key is registered.
func (s *Scheduler) Has(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}
