package catalogue

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValidAndVaried(t *testing.T) {
	c := Default()
	require.GreaterOrEqual(t, c.Len(), 15)

	seen := map[string]bool{}
	for _, s := range c.Scenarios() {
		require.NoError(t, s.Validate())
		assert.False(t, seen[s.Name], "duplicate scenario %q", s.Name)
		seen[s.Name] = true
	}
}

func TestPickRandom_Uniform(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewPCG(1, 2))

	counts := map[string]int{}
	draws := c.Len() * 500
	for i := 0; i < draws; i++ {
		counts[c.PickRandom(rng).Name]++
	}

	assert.Len(t, counts, c.Len(), "every scenario is reachable")
	for name, n := range counts {
		assert.InDelta(t, 500, n, 150, "scenario %q drawn %d times", name, n)
	}
}

func TestNew_Validation(t *testing.T) {
	valid := Phase{Title: "p", Severity: domain.SeverityLow, DetectionProbability: 0.5}

	tests := []struct {
		name     string
		scenario Scenario
	}{
		{"missing name", Scenario{Phases: []Phase{valid}}},
		{"no phases", Scenario{Name: "s"}},
		{"bad severity", Scenario{Name: "s", Phases: []Phase{{Title: "p", Severity: "extreme"}}}},
		{"probability above one", Scenario{Name: "s", Phases: []Phase{{Title: "p", Severity: domain.SeverityLow, DetectionProbability: 1.2}}}},
		{"negative delay", Scenario{Name: "s", Phases: []Phase{{Title: "p", Severity: domain.SeverityLow, Delay: -time.Second}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.scenario)
			assert.Error(t, err)
		})
	}

	_, err := New()
	assert.ErrorIs(t, err, ErrEmptyCatalogue)
}

func TestNew_DelaysNeedNotIncrease(t *testing.T) {
	c, err := New(Scenario{Name: "s", Phases: []Phase{
		{Title: "late", Severity: domain.SeverityLow, Delay: 20 * time.Second},
		{Title: "early", Severity: domain.SeverityHigh, Delay: 0},
	}})
	require.NoError(t, err)
	assert.Equal(t, "late", c.Scenarios()[0].Phases[0].Title)
}

func TestParse(t *testing.T) {
	doc := []byte(`
scenarios:
  - name: Container Escape Attack
    phases:
      - title: Container Vulnerability Scan
        description: Scanning containerized applications
        attack_vector: Exploitation for Privilege Escalation
        mitre_technique: T1068
        severity: medium
        target_system: Container Platform
        delay: 0s
        detection_probability: 0.75
      - title: Container Breakout
        severity: critical
        target_system: Container Platform
        delay: 22s
        detection_probability: 0.9
`)
	c, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	s := c.Scenarios()[0]
	assert.Equal(t, "Container Escape Attack", s.Name)
	require.Len(t, s.Phases, 2)
	assert.Equal(t, domain.SeverityCritical, s.Phases[1].Severity)
	assert.Equal(t, 22*time.Second, s.Phases[1].Delay)
	assert.Equal(t, "T1068", s.Phases[0].MitreTechnique)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("scenarios: ["))
	assert.Error(t, err)

	_, err = Parse([]byte(`
scenarios:
  - name: s
    phases:
      - title: p
        severity: low
        delay: soon
`))
	assert.Error(t, err)

	_, err = Parse([]byte("scenarios: []"))
	assert.ErrorIs(t, err, ErrEmptyCatalogue)
}
