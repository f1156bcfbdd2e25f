package metrics

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/stretchr/testify/assert"
)

func attack(id string, status domain.EventStatus) domain.SimulationEvent {
	return domain.SimulationEvent{ID: id, Type: domain.EventAttack, Status: status, Severity: domain.SeverityHigh}
}

func detection(id string, responseTime int) domain.SimulationEvent {
	return domain.SimulationEvent{
		ID:               id,
		Type:             domain.EventDetection,
		Status:           domain.StatusDetected,
		Severity:         domain.SeverityHigh,
		BlueTeamResponse: &domain.BlueTeamResponse{ResponseTime: responseTime},
	}
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, domain.ThreatMetrics{}, Compute(nil, nil))
	assert.Equal(t, domain.ThreatMetrics{}, Compute([]domain.SimulationEvent{}, func() int { return 50 }))
}

func TestCompute_Counts(t *testing.T) {
	events := []domain.SimulationEvent{
		attack("event-1", domain.StatusActive),
		attack("event-2", domain.StatusDetected),
		attack("event-3", domain.StatusMitigated),
		attack("event-4", domain.StatusMitigated),
		detection("response-event-2", 20),
		detection("response-event-3", 40),
		detection("response-event-4", 60),
		{ID: "mitigation-event-3", Type: domain.EventMitigation, Status: domain.StatusMitigated},
		{ID: "mitigation-event-4", Type: domain.EventMitigation, Status: domain.StatusMitigated},
	}

	m := Compute(events, func() int { return 100 })

	assert.Equal(t, 4, m.TotalThreats)
	assert.Equal(t, 1, m.ActiveThreats)
	assert.Equal(t, 1, m.DetectedThreats)
	assert.Equal(t, 2, m.MitigatedThreats)
	assert.InDelta(t, 40.0, m.AverageDetectionTime, 1e-9)
	assert.InDelta(t, 140.0, m.AverageResponseTime, 1e-9)
	assert.InDelta(t, 75.0, m.DetectionRate, 1e-9)
	assert.InDelta(t, 200.0/3.0, m.MitigationRate, 1e-9)
}

func TestCompute_NoDetectionsYieldsZeroRates(t *testing.T) {
	m := Compute([]domain.SimulationEvent{attack("event-1", domain.StatusActive)}, nil)
	assert.Equal(t, 1, m.TotalThreats)
	assert.Zero(t, m.DetectionRate)
	assert.Zero(t, m.MitigationRate)
	assert.Zero(t, m.AverageDetectionTime)
}

func TestCompute_NilOffsetEqualsDetectionTime(t *testing.T) {
	m := Compute([]domain.SimulationEvent{detection("d", 30), detection("e", 50)}, nil)
	assert.Equal(t, m.AverageDetectionTime, m.AverageResponseTime)
	assert.Zero(t, m.TotalThreats, "detection events are not threats")
}

func TestCompute_StatusPartition(t *testing.T) {
	statuses := []domain.EventStatus{domain.StatusActive, domain.StatusDetected, domain.StatusMitigated}
	types := []domain.EventType{domain.EventAttack, domain.EventDetection, domain.EventMitigation, domain.EventSystem}
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 200; round++ {
		n := rng.IntN(60)
		events := make([]domain.SimulationEvent, 0, n)
		attacks := 0
		for i := 0; i < n; i++ {
			typ := types[rng.IntN(len(types))]
			if typ == domain.EventAttack {
				attacks++
			}
			events = append(events, domain.SimulationEvent{
				ID:     fmt.Sprintf("e-%d", i),
				Type:   typ,
				Status: statuses[rng.IntN(len(statuses))],
			})
		}

		m := Compute(events, nil)
		assert.Equal(t, attacks, m.TotalThreats)
		assert.Equal(t, attacks, m.ActiveThreats+m.DetectedThreats+m.MitigatedThreats)
		assert.GreaterOrEqual(t, m.DetectionRate, 0.0)
		assert.LessOrEqual(t, m.DetectionRate, 100.0)
		assert.GreaterOrEqual(t, m.MitigationRate, 0.0)
		assert.LessOrEqual(t, m.MitigationRate, 100.0)
	}
}

func TestSummarize(t *testing.T) {
	events := []domain.SimulationEvent{
		{Type: domain.EventAttack, Severity: domain.SeverityCritical},
		{Type: domain.EventDetection, Severity: domain.SeverityCritical},
		{Type: domain.EventMitigation, Severity: domain.SeverityLow},
		{Type: domain.EventAttack, Severity: domain.SeverityMedium},
	}

	c := Summarize(events)
	assert.Equal(t, Counts{
		TotalEvents:      4,
		AttackEvents:     2,
		DetectionEvents:  1,
		MitigationEvents: 1,
		CriticalEvents:   2,
		MediumEvents:     1,
		LowEvents:        1,
	}, c)
}
