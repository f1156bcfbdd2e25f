package report

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/metrics"
	"github.com/google/uuid"
)

// Options selects which events a report covers and how it is labelled.
type Options struct {
	Severities     []domain.Severity  `json:"severities"`
	EventTypes     []domain.EventType `json:"event_types"`
	Classification Classification     `json:"classification"`
}

// DefaultOptions covers every severity and the three narrative event types.
func DefaultOptions() Options {
	return Options{
		Severities:     append([]domain.Severity(nil), domain.AllSeverities...),
		EventTypes:     []domain.EventType{domain.EventAttack, domain.EventDetection, domain.EventMitigation},
		Classification: Internal,
	}
}

// Normalize fills empty fields with defaults and validates the rest.
func (o Options) Normalize() (Options, error) {
	def := DefaultOptions()
	if len(o.Severities) == 0 {
		o.Severities = def.Severities
	}
	if len(o.EventTypes) == 0 {
		o.EventTypes = def.EventTypes
	}
	if o.Classification == "" {
		o.Classification = def.Classification
	}
	for _, s := range o.Severities {
		if !s.Valid() {
			return o, fmt.Errorf("%w: severity %q", domain.ErrInvalidFilter, s)
		}
	}
	for _, t := range o.EventTypes {
		if !t.Valid() {
			return o, fmt.Errorf("%w: event type %q", domain.ErrInvalidFilter, t)
		}
	}
	c, err := ParseClassification(string(o.Classification))
	if err != nil {
		return o, err
	}
	o.Classification = c
	return o, nil
}

type Metadata struct {
	ReportID        string                  `json:"report_id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	SimulationID    string                  `json:"simulation_id"`
	SimulationName  string                  `json:"simulation_name"`
	StartTime       time.Time               `json:"start_time"`
	EndTime         time.Time               `json:"end_time"`
	DurationMinutes int                     `json:"duration_minutes"`
	Status          domain.SimulationStatus `json:"status"`
	Classification  ClassificationInfo      `json:"classification"`
	Filters         Filters                 `json:"filters"`
}

type Filters struct {
	Severities []domain.Severity  `json:"severities"`
	EventTypes []domain.EventType `json:"event_types"`
}

// ExecutiveSummary is the whole-simulation metrics, rounded for display.
type ExecutiveSummary struct {
	TotalThreats         int     `json:"total_threats"`
	ActiveThreats        int     `json:"active_threats"`
	DetectedThreats      int     `json:"detected_threats"`
	MitigatedThreats     int     `json:"mitigated_threats"`
	DetectionRate        float64 `json:"detection_rate"`
	MitigationRate       float64 `json:"mitigation_rate"`
	AverageDetectionTime int     `json:"average_detection_time"`
	AverageResponseTime  int     `json:"average_response_time"`
}

type SystemSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	CompromiseLevel int    `json:"compromise_level"`
	ActiveThreats   int    `json:"active_threats"`
}

type Objectives struct {
	RedTeam  []domain.Objective `json:"red_team"`
	BlueTeam []domain.Objective `json:"blue_team"`
}

// Report is a read-only projection of a simulation state.
type Report struct {
	Metadata         Metadata                 `json:"metadata"`
	ExecutiveSummary ExecutiveSummary         `json:"executive_summary"`
	FilteredCounts   metrics.Counts           `json:"filtered_counts"`
	FilteredMetrics  domain.ThreatMetrics     `json:"filtered_metrics"`
	Events           []domain.SimulationEvent `json:"events"`
	Systems          []SystemSummary          `json:"systems"`
	Objectives       Objectives               `json:"objectives"`
	Recommendations  []Recommendation         `json:"recommendations"`
}

// Build projects state through opts. It does not modify state; running or
// paused simulations are reported up to now.
func Build(state domain.SimulationState, opts Options, now time.Time) (*Report, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	end := now
	if state.EndTime != nil {
		end = *state.EndTime
	}

	events := Filter(state.Events, opts)
	m := state.Metrics

	r := &Report{
		Metadata: Metadata{
			ReportID:        fmt.Sprintf("RPT-%d-%s", now.UnixMilli(), uuid.New().String()),
			GeneratedAt:     now,
			SimulationID:    state.ID,
			SimulationName:  state.Name,
			StartTime:       state.StartTime,
			EndTime:         end,
			DurationMinutes: int(math.Round(end.Sub(state.StartTime).Minutes())),
			Status:          state.Status,
			Classification:  opts.Classification.Info(),
			Filters: Filters{
				Severities: append([]domain.Severity(nil), opts.Severities...),
				EventTypes: append([]domain.EventType(nil), opts.EventTypes...),
			},
		},
		ExecutiveSummary: ExecutiveSummary{
			TotalThreats:         m.TotalThreats,
			ActiveThreats:        m.ActiveThreats,
			DetectedThreats:      m.DetectedThreats,
			MitigatedThreats:     m.MitigatedThreats,
			DetectionRate:        math.Round(m.DetectionRate*100) / 100,
			MitigationRate:       math.Round(m.MitigationRate*100) / 100,
			AverageDetectionTime: int(math.Round(m.AverageDetectionTime)),
			AverageResponseTime:  int(math.Round(m.AverageResponseTime)),
		},
		FilteredCounts:  metrics.Summarize(events),
		FilteredMetrics: metrics.Compute(events, nil),
		Events:          events,
		Systems:         make([]SystemSummary, 0, len(state.Systems)),
		Objectives: Objectives{
			RedTeam:  append([]domain.Objective{}, state.RedTeamObjectives...),
			BlueTeam: append([]domain.Objective{}, state.BlueTeamObjectives...),
		},
		Recommendations: Recommend(events, m),
	}
	for _, s := range state.Systems {
		r.Systems = append(r.Systems, SystemSummary{
			ID:              s.ID,
			Name:            s.Name,
			Type:            s.Type,
			Status:          s.Status,
			CompromiseLevel: s.CompromiseLevel,
			ActiveThreats:   len(s.ActiveThreats),
		})
	}
	return r, nil
}

// Filter returns copies of the events matching both the severity and the
// type selection, in log order.
func Filter(events []domain.SimulationEvent, opts Options) []domain.SimulationEvent {
	out := make([]domain.SimulationEvent, 0, len(events))
	for _, e := range events {
		if slices.Contains(opts.Severities, e.Severity) && slices.Contains(opts.EventTypes, e.Type) {
			out = append(out, e.Clone())
		}
	}
	return out
}

func vectorContains(e domain.SimulationEvent, needle string) bool {
	return strings.Contains(strings.ToLower(e.AttackVector), needle)
}
