package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/metrics"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/notification"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/scheduler"
)

var tickKey = scheduler.Key{Chain: "tick", Stage: "tick"}

// Engine owns one simulation: its state aggregate, the scheduler holding
// every in-flight chain stage and the notification emitter.
//
// All state mutation happens under mu, either in a command or in a
// scheduled callback that has re-checked the live status.
type Engine struct {
	cfg       Config
	id        string
	clock     clock.Clock
	catalogue *catalogue.Catalogue
	log       *logging.Logger
	seed      uint64
	seeded    bool
	src       rand.Source

	eventHooks []func(domain.SimulationEvent)
	chainHooks []func(string)

	sched   *scheduler.Scheduler
	emitter *notification.Emitter

	mu          sync.Mutex
	rng         *rand.Rand
	state       domain.SimulationState
	index       map[string]int // event id -> position in state.Events
	eventSeq    int
	chainSeq    int
	launchSeq   int
	started     bool
	closed      bool
	resumedAt   time.Time
	ranFor      time.Duration // running time before the current run
	firedEvents []domain.SimulationEvent
	firedChains []string
}

// New builds an engine in the preparing state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.Real()
	}
	if e.catalogue == nil {
		e.catalogue = catalogue.Default()
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	if !e.seeded {
		e.seed = rand.Uint64()
	}
	if e.src == nil {
		e.src = rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15)
	}
	e.rng = rand.New(e.src)

	now := e.clock.Now()
	if e.id == "" {
		e.id = fmt.Sprintf("sim-%d", now.UnixMilli())
	}
	name := cfg.Name
	if name == "" {
		name = "APT Simulation - " + now.Format("2006-01-02")
	}

	e.sched = scheduler.New(e.clock)
	e.emitter = notification.NewEmitter(e.clock, cfg.NotificationCap)
	e.state = initialState(e.id, name, cfg.DurationMinutes, now)
	e.index = make(map[string]int)

	e.log.LogDebugf("new", "simulation_id=%s seed=%d scenarios=%d", e.id, e.seed, e.catalogue.Len())
	return e, nil
}

func (e *Engine) ID() string { return e.id }

// Seed returns the seed of the engine's random source.
func (e *Engine) Seed() uint64 { return e.seed }

// Start moves a preparing or paused simulation to running, arms the tick and
// launches the initial chains. It reports whether the status changed.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	switch e.state.Status {
	case domain.SimPreparing, domain.SimPaused:
	default:
		return false
	}

	now := e.clock.Now()
	if !e.started {
		e.state.StartTime = now
		e.started = true
	}
	e.state.Status = domain.SimRunning
	e.resumedAt = now

	e.armTickLocked()
	for _, d := range e.cfg.InitialChainDelays {
		e.launchSeq++
		key := scheduler.Key{Chain: fmt.Sprintf("launch-%d", e.launchSeq), Stage: "launch"}
		e.scheduleLocked(key, d, e.launchChainLocked)
	}

	e.log.LogInfof("start", "simulation_id=%s events=%d", e.id, len(e.state.Events))
	return true
}

// Pause cancels the tick and every outstanding chain stage. Only valid
// while running.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state.Status != domain.SimRunning {
		return false
	}
	e.sched.CancelAll()
	e.ranFor += e.clock.Now().Sub(e.resumedAt)
	e.state.Status = domain.SimPaused

	e.log.LogInfof("pause", "simulation_id=%s events=%d", e.id, len(e.state.Events))
	return true
}

// Stop completes a running or paused simulation. Completed is terminal.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	switch e.state.Status {
	case domain.SimRunning, domain.SimPaused:
	default:
		return false
	}
	e.sched.CancelAll()
	end := e.clock.Now()
	if e.state.Status == domain.SimRunning {
		e.ranFor += end.Sub(e.resumedAt)
	}
	e.state.Status = domain.SimCompleted
	e.state.EndTime = &end

	e.log.LogInfof("stop", "simulation_id=%s events=%d", e.id, len(e.state.Events))
	return true
}

// Close disposes the engine: pending stages and notification timers are
// stopped and subscriptions end. The last state stays readable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.sched.CancelAll()
	e.emitter.Close()
}

// State returns a deep copy of the aggregate. Events, metrics and status
// are always mutually consistent.
func (e *Engine) State() domain.SimulationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneState(e.state)
}

func (e *Engine) Status() domain.SimulationStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Status
}

// RunningTime is the time spent running; pauses do not count.
func (e *Engine) RunningTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Status == domain.SimRunning {
		return e.ranFor + e.clock.Now().Sub(e.resumedAt)
	}
	return e.ranFor
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Pending returns the number of scheduled actions, tick included.
func (e *Engine) Pending() int {
	return e.sched.Pending()
}

func (e *Engine) Notifications() []domain.NotificationData {
	return e.emitter.List()
}

// DismissNotification removes one notice and reports whether it existed.
func (e *Engine) DismissNotification(id string) bool {
	return e.emitter.Dismiss(id)
}

func (e *Engine) ClearNotifications() {
	e.emitter.Clear()
}

// SubscribeNotifications streams new notices until cancel is called or the
// engine is closed.
func (e *Engine) SubscribeNotifications(buffer int) (<-chan domain.NotificationData, func()) {
	return e.emitter.Subscribe(buffer)
}

func (e *Engine) armTickLocked() {
	if e.cfg.TickInterval <= 0 {
		return
	}
	e.scheduleLocked(tickKey, e.cfg.TickInterval, func() {
		if e.rng.Float64() < e.cfg.TickChance {
			e.launchChainLocked()
		}
		e.armTickLocked()
	})
}

// scheduleLocked registers fn with the scheduler behind the running guard.
// e.mu must be held so the captured generation is current.
func (e *Engine) scheduleLocked(key scheduler.Key, delay time.Duration, fn func()) {
	gen := e.sched.Generation()
	e.sched.Schedule(key, delay, func() {
		e.mu.Lock()
		if e.closed || e.state.Status != domain.SimRunning || e.sched.Generation() != gen {
			status := e.state.Status
			e.mu.Unlock()
			e.log.LogDebugf("fire", "simulation_id=%s key=%s skipped status=%s", e.id, key, status)
			return
		}
		fn()
		events, chains := e.firedEvents, e.firedChains
		e.firedEvents, e.firedChains = nil, nil
		e.mu.Unlock()

		e.runHooks(events, chains)
	})
}

func (e *Engine) runHooks(events []domain.SimulationEvent, chains []string) {
	for _, name := range chains {
		for _, h := range e.chainHooks {
			h(name)
		}
	}
	for _, ev := range events {
		for _, h := range e.eventHooks {
			h(ev)
		}
	}
}

// appendLocked adds ev to the log, recomputes metrics over the whole log and
// emits its notification.
func (e *Engine) appendLocked(ev domain.SimulationEvent) {
	e.index[ev.ID] = len(e.state.Events)
	e.state.Events = append(e.state.Events, ev)
	e.recomputeLocked()
	e.emitter.Emit(ev)
	if len(e.eventHooks) > 0 {
		e.firedEvents = append(e.firedEvents, ev.Clone())
	}
}

func (e *Engine) recomputeLocked() {
	e.state.Metrics = metrics.Compute(e.state.Events, func() int {
		return e.cfg.ResponseOffset.sample(e.rng)
	})
}
