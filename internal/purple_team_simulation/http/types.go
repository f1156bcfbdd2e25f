package http

import (
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
)

const userIDHeader = "X-User-Id"

// Handler handles HTTP requests for simulation sessions
type Handler struct {
	svc     *service.SessionService
	limiter *RateLimiter
	log     *logging.Logger

	snapshotEvery  time.Duration
	keepAliveEvery time.Duration
}

type Option func(*Handler)

// WithStreamIntervals sets how often the event stream sends state snapshots
// and keep-alive comments.
func WithStreamIntervals(snapshot, keepAlive time.Duration) Option {
	return func(h *Handler) {
		h.snapshotEvery = snapshot
		h.keepAliveEvery = keepAlive
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// New creates a new Handler. A nil limiter leaves command routes unlimited.
func New(svc *service.SessionService, limiter *RateLimiter, opts ...Option) *Handler {
	h := &Handler{
		svc:            svc,
		limiter:        limiter,
		log:            logging.Discard(),
		snapshotEvery:  2 * time.Second,
		keepAliveEvery: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type createSessionBody struct {
	Name     string                 `json:"name,omitempty"`
	Seed     *uint64                `json:"seed,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type commandResponse struct {
	Session *domain.Session `json:"session"`
	Applied bool            `json:"applied"`
}

type reportBody struct {
	Severities     []domain.Severity  `json:"severities,omitempty"`
	EventTypes     []domain.EventType `json:"event_types,omitempty"`
	Classification string             `json:"classification,omitempty"`
	Archive        bool               `json:"archive,omitempty"`
}

type phaseDTO struct {
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	AttackVector         string          `json:"attack_vector"`
	MitreTechnique       string          `json:"mitre_technique"`
	Severity             domain.Severity `json:"severity"`
	TargetSystem         string          `json:"target_system"`
	DelayMs              int64           `json:"delay_ms"`
	DetectionProbability float64         `json:"detection_probability"`
}

type scenarioDTO struct {
	Name   string     `json:"name"`
	Phases []phaseDTO `json:"phases"`
}

func toScenarioDTOs(scenarios []catalogue.Scenario) []scenarioDTO {
	out := make([]scenarioDTO, 0, len(scenarios))
	for _, s := range scenarios {
		dto := scenarioDTO{Name: s.Name, Phases: make([]phaseDTO, 0, len(s.Phases))}
		for _, p := range s.Phases {
			dto.Phases = append(dto.Phases, phaseDTO{
				Title:                p.Title,
				Description:          p.Description,
				AttackVector:         p.AttackVector,
				MitreTechnique:       p.MitreTechnique,
				Severity:             p.Severity,
				TargetSystem:         p.TargetSystem,
				DelayMs:              p.Delay.Milliseconds(),
				DetectionProbability: p.DetectionProbability,
			})
		}
		out = append(out, dto)
	}
	return out
}
