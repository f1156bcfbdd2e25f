package metrics

import "github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"

// ResponseOffset returns the synthetic seconds added to a detection time to
// produce a response time. A nil ResponseOffset adds nothing.
type ResponseOffset func() int

// Compute derives a ThreatMetrics snapshot from the whole event log.
// Only attack events are counted as threats; timings come from the
// BlueTeamResponse of detection events. Rates are 0 when undefined.
func Compute(events []domain.SimulationEvent, offset ResponseOffset) domain.ThreatMetrics {
	var m domain.ThreatMetrics
	var detectionSum, responseSum float64
	var timed int

	for _, e := range events {
		switch e.Type {
		case domain.EventAttack:
			m.TotalThreats++
			switch e.Status {
			case domain.StatusActive:
				m.ActiveThreats++
			case domain.StatusDetected:
				m.DetectedThreats++
			case domain.StatusMitigated:
				m.MitigatedThreats++
			}
		case domain.EventDetection:
			if e.BlueTeamResponse == nil {
				continue
			}
			rt := float64(e.BlueTeamResponse.ResponseTime)
			detectionSum += rt
			if offset != nil {
				rt += float64(offset())
			}
			responseSum += rt
			timed++
		}
	}

	if timed > 0 {
		m.AverageDetectionTime = detectionSum / float64(timed)
		m.AverageResponseTime = responseSum / float64(timed)
	}
	m.DetectionRate = percent(m.DetectedThreats+m.MitigatedThreats, m.TotalThreats)
	m.MitigationRate = percent(m.MitigatedThreats, m.DetectedThreats+m.MitigatedThreats)
	return m
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Counts is a breakdown of an event list by type and severity.
type Counts struct {
	TotalEvents      int `json:"total_events"`
	AttackEvents     int `json:"attack_events"`
	DetectionEvents  int `json:"detection_events"`
	MitigationEvents int `json:"mitigation_events"`
	CriticalEvents   int `json:"critical_events"`
	HighEvents       int `json:"high_events"`
	MediumEvents     int `json:"medium_events"`
	LowEvents        int `json:"low_events"`
}

// Summarize counts events by type and severity.
func Summarize(events []domain.SimulationEvent) Counts {
	c := Counts{TotalEvents: len(events)}
	for _, e := range events {
		switch e.Type {
		case domain.EventAttack:
			c.AttackEvents++
		case domain.EventDetection:
			c.DetectionEvents++
		case domain.EventMitigation:
			c.MitigationEvents++
		}
		switch e.Severity {
		case domain.SeverityCritical:
			c.CriticalEvents++
		case domain.SeverityHigh:
			c.HighEvents++
		case domain.SeverityMedium:
			c.MediumEvents++
		case domain.SeverityLow:
			c.LowEvents++
		}
	}
	return c
}
