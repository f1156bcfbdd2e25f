package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simulateOutput struct {
	Seed   uint64 `json:"seed"`
	Report struct {
		Metadata struct {
			DurationMinutes int                     `json:"duration_minutes"`
			Status          domain.SimulationStatus `json:"status"`
		} `json:"metadata"`
		ExecutiveSummary struct {
			TotalThreats int `json:"total_threats"`
		} `json:"executive_summary"`
		Events []domain.SimulationEvent `json:"events"`
	} `json:"report"`
}

func simulate(t *testing.T, opts simulateOptions) simulateOutput {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, runSimulate(&buf, opts))
	var out simulateOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRunSimulate(t *testing.T) {
	out := simulate(t, simulateOptions{seed: 11, minutes: 5, classification: "internal", logLevel: "error"})

	assert.EqualValues(t, 11, out.Seed)
	assert.Equal(t, domain.SimCompleted, out.Report.Metadata.Status)
	assert.Equal(t, 5, out.Report.Metadata.DurationMinutes)
	assert.Positive(t, out.Report.ExecutiveSummary.TotalThreats)
}

func TestRunSimulate_SameSeedSameReport(t *testing.T) {
	opts := simulateOptions{seed: 99, minutes: 3, classification: "public", logLevel: "error"}
	a := simulate(t, opts)
	b := simulate(t, opts)

	require.Equal(t, len(a.Report.Events), len(b.Report.Events))
	for i := range a.Report.Events {
		assert.Equal(t, a.Report.Events[i].ID, b.Report.Events[i].ID)
		assert.Equal(t, a.Report.Events[i].Title, b.Report.Events[i].Title)
		assert.Equal(t, a.Report.Events[i].Status, b.Report.Events[i].Status)
	}
}

func TestRunSimulate_Filters(t *testing.T) {
	out := simulate(t, simulateOptions{seed: 5, minutes: 5, classification: "secret", eventTypes: []string{"attack"}, logLevel: "error"})
	for _, e := range out.Report.Events {
		assert.Equal(t, domain.EventAttack, e.Type)
	}
}

func TestRunSimulate_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`scenarios:
  - name: Web Shell
    phases:
      - title: Upload
        description: Web shell dropped through a vulnerable upload form
        attack_vector: Exploit Public-Facing Application
        mitre_technique: T1190
        severity: critical
        target_system: Web Server
        delay: 0s
        detection_probability: 0.5
`), 0o600))

	out := simulate(t, simulateOptions{seed: 1, minutes: 2, classification: "internal", scenarios: path, eventTypes: []string{"attack"}, logLevel: "error"})
	require.NotEmpty(t, out.Report.Events)
	for _, e := range out.Report.Events {
		assert.Equal(t, "T1190", e.MitreTechnique)
	}
}

func TestRunSimulate_InvalidInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, runSimulate(&buf, simulateOptions{minutes: 0}))
	assert.ErrorIs(t, runSimulate(&buf, simulateOptions{minutes: 1, classification: "cosmic"}), domain.ErrInvalidClassification)
	assert.ErrorIs(t, runSimulate(&buf, simulateOptions{minutes: 1, severities: []string{"extreme"}}), domain.ErrInvalidFilter)
	assert.Error(t, runSimulate(&buf, simulateOptions{minutes: 1, scenarios: "/does/not/exist.yaml"}))
	assert.Zero(t, buf.Len())
}
