package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/notification"
)

var ErrInvalidConfig = errors.New("invalid engine config")

// DelayRange is a half-open range [Min, Max) sampled at millisecond
// granularity.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

func (r DelayRange) sample(rng *rand.Rand) time.Duration {
	span := (r.Max - r.Min).Milliseconds()
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(rng.Int64N(span))*time.Millisecond
}

// IntRange is a half-open range [Min, Max) of whole seconds.
type IntRange struct {
	Min int
	Max int
}

func (r IntRange) sample(rng *rand.Rand) int {
	span := r.Max - r.Min
	if span <= 0 {
		return r.Min
	}
	return r.Min + rng.IntN(span)
}

// Config holds the timing and probability knobs of a simulation.
type Config struct {
	Name            string
	DurationMinutes int

	// TickInterval is the period of the chain-launch tick. Zero disables it.
	TickInterval       time.Duration
	TickChance         float64
	InitialChainDelays []time.Duration

	DetectionDelay  DelayRange
	MitigationDelay DelayRange
	ResponseOffset  IntRange

	NotificationCap int
}

// DefaultConfig returns the standard exercise settings.
func DefaultConfig() Config {
	return Config{
		DurationMinutes:    60,
		TickInterval:       3500 * time.Millisecond,
		TickChance:         0.6,
		InitialChainDelays: []time.Duration{1 * time.Second, 3 * time.Second, 6 * time.Second},
		DetectionDelay:     DelayRange{Min: 2 * time.Second, Max: 17 * time.Second},
		MitigationDelay:    DelayRange{Min: 10 * time.Second, Max: 45 * time.Second},
		ResponseOffset:     IntRange{Min: 20, Max: 140},
		NotificationCap:    notification.DefaultCap,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidConfig)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("%w: tick interval must not be negative", ErrInvalidConfig)
	}
	if c.TickChance < 0 || c.TickChance > 1 {
		return fmt.Errorf("%w: tick chance %v outside [0,1]", ErrInvalidConfig, c.TickChance)
	}
	for _, d := range c.InitialChainDelays {
		if d < 0 {
			return fmt.Errorf("%w: initial chain delay %s is negative", ErrInvalidConfig, d)
		}
	}
	if c.DetectionDelay.Min < 0 || c.MitigationDelay.Min < 0 {
		return fmt.Errorf("%w: stage delays must not be negative", ErrInvalidConfig)
	}
	if c.ResponseOffset.Min < 0 {
		return fmt.Errorf("%w: response offset must not be negative", ErrInvalidConfig)
	}
	if c.NotificationCap < 0 {
		return fmt.Errorf("%w: notification cap must not be negative", ErrInvalidConfig)
	}
	return nil
}
