package engine

import (
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

type systemSeed struct {
	id, name, kind string
}

var seedSystems = []systemSeed{
	{"web-server-01", "Web Server 01", "server"},
	{"db-server-01", "Database Server", "database"},
	{"workstation-01", "Admin Workstation", "workstation"},
	{"domain-controller", "Domain Controller", "server"},
	{"email-server", "Email Server", "server"},
	{"file-server", "File Server", "server"},
	{"backup-server", "Backup Server", "server"},
	{"vpn-gateway", "VPN Gateway", "network"},
}

// initialState builds the preparing-status aggregate. The systems roster is
// seeded here and not updated by events.
func initialState(id, name string, duration int, now time.Time) domain.SimulationState {
	systems := make([]domain.SystemStatus, 0, len(seedSystems))
	for _, s := range seedSystems {
		systems = append(systems, domain.SystemStatus{
			ID:            s.id,
			Name:          s.name,
			Type:          s.kind,
			Status:        "healthy",
			LastActivity:  now,
			ActiveThreats: []string{},
		})
	}

	return domain.SimulationState{
		ID:        id,
		Name:      name,
		Status:    domain.SimPreparing,
		StartTime: now,
		Duration:  duration,
		Events:    []domain.SimulationEvent{},
		Systems:   systems,
		RedTeamObjectives: []domain.Objective{
			{
				ID:           "obj-1",
				Title:        "Initial Access",
				Description:  "Gain initial foothold in the network",
				Status:       "pending",
				Points:       100,
				Requirements: []string{"Compromise at least one system"},
			},
			{
				ID:           "obj-2",
				Title:        "Lateral Movement",
				Description:  "Move laterally through the network",
				Status:       "pending",
				Points:       200,
				Requirements: []string{"Compromise multiple systems"},
			},
		},
		BlueTeamObjectives: []domain.Objective{
			{
				ID:           "obj-blue-1",
				Title:        "Threat Detection",
				Description:  "Detect and alert on malicious activities",
				Status:       "pending",
				Points:       150,
				Requirements: []string{"Detect 80% of attacks within 5 minutes"},
			},
		},
		CurrentPhase: domain.SimulationPhase{
			ID:                "phase-1",
			Name:              "Initial Reconnaissance",
			Description:       "Red team gathers information about the target environment",
			Duration:          15,
			Objectives:        []string{"obj-1"},
			AllowedTechniques: []string{"T1595", "T1590", "T1589"},
		},
	}
}

func cloneState(s domain.SimulationState) domain.SimulationState {
	out := s
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	out.Events = make([]domain.SimulationEvent, len(s.Events))
	for i, e := range s.Events {
		out.Events[i] = e.Clone()
	}
	out.Systems = make([]domain.SystemStatus, len(s.Systems))
	for i, sys := range s.Systems {
		sys.ActiveThreats = append([]string{}, sys.ActiveThreats...)
		out.Systems[i] = sys
	}
	out.RedTeamObjectives = cloneObjectives(s.RedTeamObjectives)
	out.BlueTeamObjectives = cloneObjectives(s.BlueTeamObjectives)
	out.CurrentPhase.Objectives = append([]string(nil), s.CurrentPhase.Objectives...)
	out.CurrentPhase.AllowedTechniques = append([]string(nil), s.CurrentPhase.AllowedTechniques...)
	return out
}

func cloneObjectives(in []domain.Objective) []domain.Objective {
	out := make([]domain.Objective, len(in))
	for i, o := range in {
		o.Requirements = append([]string(nil), o.Requirements...)
		out[i] = o
	}
	return out
}
