package domain

import (
	"encoding/json"
	"time"
)

// SimulationEvent is one fact in the event log. Everything except Status is
// immutable once the event is appended.
type SimulationEvent struct {
	ID               string            `json:"id"`
	Timestamp        time.Time         `json:"timestamp"`
	Type             EventType         `json:"type"`
	Severity         Severity          `json:"severity"`
	Status           EventStatus       `json:"status"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	AttackVector     string            `json:"attack_vector,omitempty"`
	TargetSystem     string            `json:"target_system"`
	SourceIP         string            `json:"source_ip,omitempty"`
	DestinationIP    string            `json:"destination_ip,omitempty"`
	MitreTechnique   string            `json:"mitre_technique,omitempty"`
	PhaseInstanceID  string            `json:"phase_instance_id,omitempty"` // links companions to their attack event
	RedTeamAction    *RedTeamAction    `json:"red_team_action,omitempty"`
	BlueTeamResponse *BlueTeamResponse `json:"blue_team_response,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// Clone returns a copy that shares no mutable memory with e.
func (e SimulationEvent) Clone() SimulationEvent {
	out := e
	if e.RedTeamAction != nil {
		a := *e.RedTeamAction
		a.NextActions = append([]string(nil), e.RedTeamAction.NextActions...)
		out.RedTeamAction = &a
	}
	if e.BlueTeamResponse != nil {
		r := *e.BlueTeamResponse
		r.ContainmentActions = append([]string(nil), e.BlueTeamResponse.ContainmentActions...)
		out.BlueTeamResponse = &r
	}
	if e.Metadata != nil {
		out.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// RedTeamAction is the offensive detail attached to attack events.
type RedTeamAction struct {
	ID                   string   `json:"id"`
	Technique            string   `json:"technique"`
	Tool                 string   `json:"tool"`
	Target               string   `json:"target"`
	Payload              string   `json:"payload,omitempty"`
	Success              bool     `json:"success"`
	DetectionProbability float64  `json:"detection_probability"`
	Impact               Severity `json:"impact"`
	NextActions          []string `json:"next_actions,omitempty"`
}

// BlueTeamResponse is the defensive detail attached to detection events.
type BlueTeamResponse struct {
	ID                 string   `json:"id"`
	DetectionMethod    string   `json:"detection_method"`
	ResponseTime       int      `json:"response_time"` // seconds
	Analyst            string   `json:"analyst"`
	ContainmentActions []string `json:"containment_actions"`
	Effectiveness      int      `json:"effectiveness"` // 0-100
	FalsePositive      bool     `json:"false_positive"`
}

// ThreatMetrics is always recomputed from the whole event log.
type ThreatMetrics struct {
	TotalThreats         int     `json:"total_threats"`
	ActiveThreats        int     `json:"active_threats"`
	DetectedThreats      int     `json:"detected_threats"`
	MitigatedThreats     int     `json:"mitigated_threats"`
	AverageDetectionTime float64 `json:"average_detection_time"`
	AverageResponseTime  float64 `json:"average_response_time"`
	DetectionRate        float64 `json:"detection_rate"`  // percentage
	MitigationRate       float64 `json:"mitigation_rate"` // percentage
}

// SystemStatus is one virtual system in the roster.
type SystemStatus struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"` // server, workstation, network, database, application
	Status          string    `json:"status"`
	CompromiseLevel int       `json:"compromise_level"`
	LastActivity    time.Time `json:"last_activity"`
	ActiveThreats   []string  `json:"active_threats"`
}

// Objective is a team goal. The engine seeds these but does not score them.
type Objective struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"` // pending, in-progress, completed, failed
	Points       int      `json:"points"`
	TimeLimit    int      `json:"time_limit,omitempty"`
	Requirements []string `json:"requirements"`
}

// SimulationPhase describes the exercise phase presented to the teams.
type SimulationPhase struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Duration          int      `json:"duration"` // minutes
	Objectives        []string `json:"objectives"`
	AllowedTechniques []string `json:"allowed_techniques"`
}

// SimulationState is the top-level aggregate. Events and Metrics are always
// updated together.
type SimulationState struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Status             SimulationStatus  `json:"status"`
	StartTime          time.Time         `json:"start_time"`
	EndTime            *time.Time        `json:"end_time,omitempty"`
	Duration           int               `json:"duration"` // minutes
	Events             []SimulationEvent `json:"events"`
	Metrics            ThreatMetrics     `json:"metrics"`
	Systems            []SystemStatus    `json:"systems"`
	RedTeamObjectives  []Objective       `json:"red_team_objectives"`
	BlueTeamObjectives []Objective       `json:"blue_team_objectives"`
	CurrentPhase       SimulationPhase   `json:"current_phase"`
}

// NotificationData is an ephemeral notice derived from one new event.
type NotificationData struct {
	ID         string               `json:"id"`
	Type       NotificationType     `json:"type"`
	Severity   NotificationSeverity `json:"severity"`
	Title      string               `json:"title"`
	Message    string               `json:"message"`
	Timestamp  time.Time            `json:"timestamp"`
	AutoHide   bool                 `json:"auto_hide"`
	DurationMs int64                `json:"duration_ms,omitempty"`
	EventID    string               `json:"event_id,omitempty"`
}

// Session maps a user-facing session to the engine that serves it.
type Session struct {
	SessionID    string                 `json:"session_id"`
	UserID       string                 `json:"user_id"`
	SimulationID string                 `json:"simulation_id"`
	Status       SimulationStatus       `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// CreateSessionRequest represents data needed to create a new session
type CreateSessionRequest struct {
	UserID   string
	Name     string
	Seed     *uint64
	Metadata map[string]interface{}
}

// ReportRecord is an archived report. Payload holds the report JSON.
type ReportRecord struct {
	ID             string          `json:"id"`
	ReportID       string          `json:"report_id"`
	SessionID      string          `json:"session_id"`
	SimulationID   string          `json:"simulation_id"`
	Classification string          `json:"classification"`
	TotalEvents    int             `json:"total_events"`
	DetectionRate  float64         `json:"detection_rate"`
	MitigationRate float64         `json:"mitigation_rate"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MetricPoint is one sampled ThreatMetrics field of a session.
type MetricPoint struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Time        time.Time `json:"time"`
	MetricType  string    `json:"metric_type"`
	MetricValue float64   `json:"metric_value"`
}

// Points flattens m into one MetricPoint per field.
func (m ThreatMetrics) Points(sessionID string, at time.Time) []MetricPoint {
	fields := []struct {
		name  string
		value float64
	}{
		{"total_threats", float64(m.TotalThreats)},
		{"active_threats", float64(m.ActiveThreats)},
		{"detected_threats", float64(m.DetectedThreats)},
		{"mitigated_threats", float64(m.MitigatedThreats)},
		{"average_detection_time", m.AverageDetectionTime},
		{"average_response_time", m.AverageResponseTime},
		{"detection_rate", m.DetectionRate},
		{"mitigation_rate", m.MitigationRate},
	}
	points := make([]MetricPoint, 0, len(fields))
	for _, f := range fields {
		points = append(points, MetricPoint{SessionID: sessionID, Time: at, MetricType: f.name, MetricValue: f.value})
	}
	return points
}
