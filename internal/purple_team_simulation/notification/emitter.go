package notification

import (
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// DefaultCap is the number of notices kept, newest first.
const DefaultCap = 13

const (
	attackDuration     = 8 * time.Second
	detectionDuration  = 6 * time.Second
	mitigationDuration = 7 * time.Second
	systemDuration     = 5 * time.Second
)

// FromEvent derives the notice for a newly appended event.
func FromEvent(e domain.SimulationEvent) domain.NotificationData {
	n := domain.NotificationData{
		ID:        "notif-" + e.ID,
		Message:   e.Description,
		Timestamp: e.Timestamp,
		AutoHide:  true,
		EventID:   e.ID,
	}

	var d time.Duration
	switch e.Type {
	case domain.EventAttack:
		n.Type = domain.NotifyRedAttack
		n.Title = "RED TEAM: " + e.Title
		d = attackDuration
		switch e.Severity {
		case domain.SeverityCritical:
			n.Severity = domain.NoticeError
		case domain.SeverityHigh:
			n.Severity = domain.NoticeWarning
		default:
			n.Severity = domain.NoticeInfo
		}
	case domain.EventDetection:
		n.Type = domain.NotifyBlueDetection
		n.Severity = domain.NoticeInfo
		n.Title = "BLUE TEAM: Detection Alert"
		d = detectionDuration
	case domain.EventMitigation:
		n.Type = domain.NotifyBlueMitigation
		n.Severity = domain.NoticeSuccess
		n.Title = "BLUE TEAM: Threat Mitigated"
		d = mitigationDuration
	default:
		n.Type = domain.NotifySystemAlert
		n.Severity = domain.NoticeInfo
		n.Title = "SYSTEM: " + e.Title
		d = systemDuration
	}
	n.DurationMs = d.Milliseconds()
	return n
}

// Emitter keeps the short-lived notice list and fans notices out to
// subscribers. Its timers are independent of the simulation scheduler, so
// pausing a simulation does not freeze auto-hide.
type Emitter struct {
	clock clock.Clock
	cap   int

	mu      sync.Mutex
	items   []domain.NotificationData
	timers  map[string]clock.Timer
	subs    map[int]chan domain.NotificationData
	nextSub int
	closed  bool
}

// NewEmitter creates an Emitter. A non-positive capacity uses DefaultCap.
func NewEmitter(c clock.Clock, capacity int) *Emitter {
	if c == nil {
		c = clock.Real()
	}
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Emitter{
		clock:  c,
		cap:    capacity,
		timers: make(map[string]clock.Timer),
		subs:   make(map[int]chan domain.NotificationData),
	}
}

// Emit derives and records the notice for e, schedules its auto-removal and
// publishes it to subscribers. Slow subscribers miss notices rather than
// blocking the simulation.
func (em *Emitter) Emit(e domain.SimulationEvent) domain.NotificationData {
	n := FromEvent(e)

	em.mu.Lock()
	defer em.mu.Unlock()
	if em.closed {
		return n
	}

	em.items = append([]domain.NotificationData{n}, em.items...)
	if len(em.items) > em.cap {
		for _, dropped := range em.items[em.cap:] {
			em.stopTimerLocked(dropped.ID)
		}
		em.items = em.items[:em.cap]
	}

	if n.AutoHide && n.DurationMs > 0 {
		id := n.ID
		em.stopTimerLocked(id)
		em.timers[id] = em.clock.AfterFunc(time.Duration(n.DurationMs)*time.Millisecond, func() {
			em.expire(id)
		})
	}

	for _, ch := range em.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n
}

func (em *Emitter) expire(id string) {
	em.mu.Lock()
	defer em.mu.Unlock()
	delete(em.timers, id)
	em.removeLocked(id)
}

// List returns the current notices, newest first.
func (em *Emitter) List() []domain.NotificationData {
	em.mu.Lock()
	defer em.mu.Unlock()
	return append([]domain.NotificationData(nil), em.items...)
}

// Dismiss removes one notice. It reports whether the notice was present.
func (em *Emitter) Dismiss(id string) bool {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.stopTimerLocked(id)
	return em.removeLocked(id)
}

// Clear removes every notice.
func (em *Emitter) Clear() {
	em.mu.Lock()
	defer em.mu.Unlock()
	for id := range em.timers {
		em.stopTimerLocked(id)
	}
	em.items = nil
}

// Subscribe returns a channel receiving each new notice and a function that
// ends the subscription.
func (em *Emitter) Subscribe(buffer int) (<-chan domain.NotificationData, func()) {
	em.mu.Lock()
	defer em.mu.Unlock()

	ch := make(chan domain.NotificationData, buffer)
	if em.closed {
		close(ch)
		return ch, func() {}
	}

	id := em.nextSub
	em.nextSub++
	em.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			em.mu.Lock()
			defer em.mu.Unlock()
			if c, ok := em.subs[id]; ok {
				delete(em.subs, id)
				close(c)
			}
		})
	}
}

// Close stops every timer and ends all subscriptions.
func (em *Emitter) Close() {
	em.mu.Lock()
	defer em.mu.Unlock()
	if em.closed {
		return
	}
	em.closed = true
	for id := range em.timers {
		em.stopTimerLocked(id)
	}
	for id, ch := range em.subs {
		delete(em.subs, id)
		close(ch)
	}
}

func (em *Emitter) stopTimerLocked(id string) {
	if t, ok := em.timers[id]; ok {
		t.Stop()
		delete(em.timers, id)
	}
}

func (em *Emitter) removeLocked(id string) bool {
	for i, n := range em.items {
		if n.ID == id {
			em.items = append(em.items[:i:i], em.items[i+1:]...)
			return true
		}
	}
	return false
}
