package report

import "github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"

type Recommendation struct {
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

const (
	minDetectionRate    = 80.0
	maxDetectionSeconds = 300.0
	minMitigationRate   = 90.0
	phishingThreshold   = 3
)

// Recommend applies the fixed rule set. Rate and timing rules read the
// whole-simulation metrics; vector rules read the filtered events.
func Recommend(events []domain.SimulationEvent, m domain.ThreatMetrics) []Recommendation {
	recs := []Recommendation{}

	if m.DetectionRate < minDetectionRate {
		recs = append(recs, Recommendation{
			Priority:    "High",
			Category:    "Detection",
			Title:       "Improve Threat Detection Capabilities",
			Description: "Detection rate is below 80%. Consider enhancing SIEM rules, deploying additional sensors, and improving threat intelligence integration.",
			Impact:      "Critical",
		})
	}

	if m.AverageDetectionTime > maxDetectionSeconds {
		recs = append(recs, Recommendation{
			Priority:    "Medium",
			Category:    "Response Time",
			Title:       "Reduce Detection Time",
			Description: "Average detection time exceeds 5 minutes. Implement automated detection rules and enhance monitoring coverage.",
			Impact:      "High",
		})
	}

	if m.MitigationRate < minMitigationRate {
		recs = append(recs, Recommendation{
			Priority:    "High",
			Category:    "Mitigation",
			Title:       "Enhance Incident Response Procedures",
			Description: "Mitigation rate is below 90%. Review and improve incident response playbooks and automation capabilities.",
			Impact:      "High",
		})
	}

	phishing, lateral := 0, 0
	for _, e := range events {
		if vectorContains(e, "phishing") {
			phishing++
		}
		if vectorContains(e, "lateral") {
			lateral++
		}
	}

	if phishing > phishingThreshold {
		recs = append(recs, Recommendation{
			Priority:    "Medium",
			Category:    "Training",
			Title:       "Strengthen Security Awareness Training",
			Description: "Multiple phishing attempts detected. Implement regular security awareness training and phishing simulation exercises.",
			Impact:      "Medium",
		})
	}

	if lateral > 0 {
		recs = append(recs, Recommendation{
			Priority:    "High",
			Category:    "Network Security",
			Title:       "Implement Network Segmentation",
			Description: "Lateral movement detected. Deploy network segmentation and zero-trust architecture to limit attack spread.",
			Impact:      "Critical",
		})
	}

	return recs
}
