package domain

// EventType classifies a simulation event.
type EventType string

const (
	EventAttack     EventType = "attack"
	EventDetection  EventType = "detection"
	EventMitigation EventType = "mitigation"
	EventSystem     EventType = "system"
)

func (t EventType) Valid() bool {
	switch t {
	case EventAttack, EventDetection, EventMitigation, EventSystem:
		return true
	}
	return false
}

// Severity is fixed at scenario-authoring time and drives timing ranges
// and mitigation probability.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AllSeverities lists severities from least to most critical.
var AllSeverities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Rank orders severities, 0 for unknown values.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// MitigationChance is the probability that a detected attack of this
// severity is later mitigated.
func (s Severity) MitigationChance() float64 {
	switch s {
	case SeverityCritical:
		return 0.98
	case SeverityHigh:
		return 0.95
	case SeverityMedium:
		return 0.92
	default:
		return 0.88
	}
}

// EventStatus is the lifecycle position of an attack event.
// Transitions only move forward: active -> detected -> mitigated.
type EventStatus string

const (
	StatusActive    EventStatus = "active"
	StatusDetected  EventStatus = "detected"
	StatusMitigated EventStatus = "mitigated"
	// StatusResolved is part of the vocabulary but no transition reaches it yet.
	StatusResolved EventStatus = "resolved"
)

// Rank orders statuses along the lifecycle, 0 for unknown values.
func (s EventStatus) Rank() int {
	switch s {
	case StatusActive:
		return 1
	case StatusDetected:
		return 2
	case StatusMitigated:
		return 3
	case StatusResolved:
		return 4
	}
	return 0
}

// SimulationStatus is the overall run state.
type SimulationStatus string

const (
	SimPreparing SimulationStatus = "preparing"
	SimRunning   SimulationStatus = "running"
	SimPaused    SimulationStatus = "paused"
	SimCompleted SimulationStatus = "completed"
)

// Stage is one step of a phase's execution.
type Stage string

const (
	StageAttack     Stage = "attack"
	StageDetection  Stage = "detection"
	StageMitigation Stage = "mitigation"
)

// NotificationType identifies which side produced a notice.
type NotificationType string

const (
	NotifyRedAttack      NotificationType = "red-attack"
	NotifyBlueDetection  NotificationType = "blue-detection"
	NotifyBlueMitigation NotificationType = "blue-mitigation"
	NotifySystemAlert    NotificationType = "system-alert"
)

// NotificationSeverity is the presentation class of a notice.
type NotificationSeverity string

const (
	NoticeInfo    NotificationSeverity = "info"
	NoticeWarning NotificationSeverity = "warning"
	NoticeError   NotificationSeverity = "error"
	NoticeSuccess NotificationSeverity = "success"
)
