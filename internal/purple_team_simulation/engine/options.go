package engine

import (
	"math/rand/v2"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// Option customises an Engine.
type Option func(*Engine)

// WithClock sets the time source. Tests use clock.NewFake.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSeed makes every random draw of the engine reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithRandSource replaces the seeded PCG source. It takes precedence over
// WithSeed.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.src = src }
}

// WithCatalogue replaces the built-in scenario catalogue.
func WithCatalogue(c *catalogue.Catalogue) Option {
	return func(e *Engine) { e.catalogue = c }
}

func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithID sets the simulation id instead of the time based default.
func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// WithEventHook registers fn to be called once per appended event. Hooks run
// after the engine lock is released, so they may call back into the engine.
func WithEventHook(fn func(domain.SimulationEvent)) Option {
	return func(e *Engine) { e.eventHooks = append(e.eventHooks, fn) }
}

// WithChainHook registers fn to be called with the scenario name of every
// launched chain.
func WithChainHook(fn func(scenario string)) Option {
	return func(e *Engine) { e.chainHooks = append(e.chainHooks, fn) }
}
