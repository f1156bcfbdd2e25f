package catalogue

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// Phase is the template for one attack event and its possible companions.
type Phase struct {
	Title                string
	Description          string
	AttackVector         string
	MitreTechnique       string
	Severity             domain.Severity
	TargetSystem         string
	Delay                time.Duration // relative to chain start
	DetectionProbability float64
}

// Scenario is a named, ordered list of phases.
type Scenario struct {
	Name   string
	Phases []Phase
}

// Catalogue is an immutable set of scenarios.
type Catalogue struct {
	scenarios []Scenario
}

var ErrEmptyCatalogue = errors.New("catalogue has no scenarios")

// New validates scenarios and returns a Catalogue holding a copy of them.
func New(scenarios ...Scenario) (*Catalogue, error) {
	if len(scenarios) == 0 {
		return nil, ErrEmptyCatalogue
	}
	out := make([]Scenario, 0, len(scenarios))
	for i, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		out = append(out, Scenario{Name: s.Name, Phases: append([]Phase(nil), s.Phases...)})
	}
	return &Catalogue{scenarios: out}, nil
}

// MustNew is New for package-level data known to be valid.
func MustNew(scenarios ...Scenario) *Catalogue {
	c, err := New(scenarios...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks a scenario's shape. Phase delays are not required to be
// increasing; array order is authoritative.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Phases) == 0 {
		return fmt.Errorf("%q has no phases", s.Name)
	}
	for i, p := range s.Phases {
		if p.Title == "" {
			return fmt.Errorf("%q phase %d: title is required", s.Name, i)
		}
		if !p.Severity.Valid() {
			return fmt.Errorf("%q phase %d: invalid severity %q", s.Name, i, p.Severity)
		}
		if p.DetectionProbability < 0 || p.DetectionProbability > 1 {
			return fmt.Errorf("%q phase %d: detection probability %v out of [0,1]", s.Name, i, p.DetectionProbability)
		}
		if p.Delay < 0 {
			return fmt.Errorf("%q phase %d: negative delay", s.Name, i)
		}
	}
	return nil
}

// PickRandom returns a scenario chosen uniformly with rng.
func (c *Catalogue) PickRandom(rng *rand.Rand) Scenario {
	return c.scenarios[rng.IntN(len(c.scenarios))]
}

func (c *Catalogue) Len() int { return len(c.scenarios) }

// Scenarios returns a copy of the scenario list.
func (c *Catalogue) Scenarios() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	for i, s := range c.scenarios {
		out[i] = Scenario{Name: s.Name, Phases: append([]Phase(nil), s.Phases...)}
	}
	return out
}

// Names returns scenario names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		names[i] = s.Name
	}
	return names
}
