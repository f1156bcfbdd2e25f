package catalogue

import (
	"fmt"
	"os"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Scenarios []yamlScenario `yaml:"scenarios"`
}

type yamlScenario struct {
	Name   string      `yaml:"name"`
	Phases []yamlPhase `yaml:"phases"`
}

type yamlPhase struct {
	Title                string  `yaml:"title"`
	Description          string  `yaml:"description"`
	AttackVector         string  `yaml:"attack_vector"`
	MitreTechnique       string  `yaml:"mitre_technique"`
	Severity             string  `yaml:"severity"`
	TargetSystem         string  `yaml:"target_system"`
	Delay                string  `yaml:"delay"` // Go duration, e.g. "12s"
	DetectionProbability float64 `yaml:"detection_probability"`
}

// LoadFile reads a YAML scenario file.
func LoadFile(path string) (*Catalogue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML document of the form
//
//	scenarios:
//	  - name: Ransomware Deployment
//	    phases:
//	      - title: Initial Compromise
//	        severity: high
//	        delay: 0s
//	        detection_probability: 0.88
func Parse(b []byte) (*Catalogue, error) {
	var f yamlFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios yaml: %w", err)
	}

	scenarios := make([]Scenario, 0, len(f.Scenarios))
	for _, ys := range f.Scenarios {
		s := Scenario{Name: ys.Name}
		for i, yp := range ys.Phases {
			var delay time.Duration
			if yp.Delay != "" {
				d, err := time.ParseDuration(yp.Delay)
				if err != nil {
					return nil, fmt.Errorf("scenario %q phase %d: delay: %w", ys.Name, i, err)
				}
				delay = d
			}
			s.Phases = append(s.Phases, Phase{
				Title:                yp.Title,
				Description:          yp.Description,
				AttackVector:         yp.AttackVector,
				MitreTechnique:       yp.MitreTechnique,
				Severity:             domain.Severity(yp.Severity),
				TargetSystem:         yp.TargetSystem,
				Delay:                delay,
				DetectionProbability: yp.DetectionProbability,
			})
		}
		scenarios = append(scenarios, s)
	}
	return New(scenarios...)
}
