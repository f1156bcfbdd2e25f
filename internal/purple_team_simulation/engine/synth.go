package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

var sourceIPs = []string{
	"203.0.113.45", "198.51.100.23", "192.0.2.156", "203.0.113.78",
	"185.220.101.42", "89.248.171.34", "45.142.214.123", "194.147.85.67",
	"91.240.118.92", "178.128.83.165", "159.89.214.31", "167.172.44.89",
}

var redTeamTools = []string{
	"Metasploit", "Cobalt Strike", "PowerShell Empire", "Custom Malware",
	"Mimikatz", "BloodHound", "Nmap", "Burp Suite", "Responder", "Impacket",
	"Rubeus", "SharpHound", "CrackMapExec", "Evil-WinRM", "Chisel", "Ligolo",
}

var nextActions = []string{
	"Establish Persistence", "Escalate Privileges", "Lateral Movement",
	"Data Exfiltration", "Deploy Backdoor", "Credential Harvesting",
	"Network Reconnaissance", "Defense Evasion",
}

var detectionMethods = []string{
	"SIEM Correlation Engine", "EDR Behavioral Analysis", "Network Traffic Monitoring",
	"User Behavior Analytics", "Threat Intelligence Feed", "Anomaly Detection System",
	"Signature-based Detection", "Machine Learning Model", "Honeypot Alert",
	"DNS Monitoring", "Email Security Gateway", "Web Application Firewall",
	"Deception Technology", "File Integrity Monitoring", "Process Monitoring",
	"Memory Analysis", "Network Segmentation Alert", "Zero Trust Architecture",
	"Threat Hunting Platform", "Security Orchestration", "Incident Response Platform",
}

var analysts = []string{
	"Alice Johnson (Senior SOC Analyst)", "Bob Smith (Incident Response Lead)",
	"Carol Davis (Threat Hunter)", "David Wilson (Security Engineer)",
	"Emma Brown (SOC Manager)", "Frank Miller (Forensics Specialist)",
	"Grace Lee (Malware Analyst)", "Henry Chen (Network Security Analyst)",
	"Isabella Rodriguez (Cyber Threat Intelligence)", "Jack Thompson (Security Architect)",
	"Kate Williams (Digital Forensics)", "Liam O'Connor (Penetration Tester)",
	"Maya Patel (Security Operations)", "Nathan Kim (Incident Commander)",
}

var containmentActions = []string{
	"Automatically isolated affected endpoint", "Blocked malicious IP at perimeter firewall",
	"Disabled compromised user account", "Updated security signatures",
	"Deployed additional monitoring agents", "Initiated automated incident response",
	"Collected forensic artifacts", "Notified security team via SOAR platform",
	"Applied security patches", "Quarantined suspicious files",
	"Reset user credentials", "Updated threat intelligence feeds",
	"Activated network segmentation", "Deployed honeypots in affected area",
	"Initiated threat hunting procedures", "Escalated to incident response team",
	"Implemented additional access controls", "Enhanced monitoring on critical assets",
	"Coordinated with external threat intelligence", "Activated backup systems",
}

var mitigationActions = []string{
	"Threat successfully contained and neutralized by automated response",
	"Malicious processes terminated and system restored to clean state",
	"Network access revoked and security policies updated",
	"Affected systems isolated and restored from verified clean backups",
	"Security patches applied and vulnerability remediated",
	"Enhanced monitoring deployed and threat signatures updated",
	"Incident fully documented and lessons learned captured",
	"User security awareness training scheduled for affected department",
	"Security controls strengthened based on attack vector",
	"Threat intelligence updated with new indicators of compromise",
	"Multi-factor authentication enforced on compromised accounts",
	"Network segmentation rules updated to prevent lateral movement",
	"Endpoint detection and response capabilities enhanced",
	"Threat hunting rules deployed to detect similar attacks",
	"Security incident response playbook updated with new procedures",
	"Vulnerability assessment scheduled for affected systems",
	"Security awareness campaign launched organization-wide",
	"Third-party security vendor engaged for additional analysis",
}

var mitigationTools = []string{
	"SOAR Playbook", "EDR Auto-Response", "SIEM Correlation", "Firewall Rules",
	"Endpoint Isolation", "Patch Management", "Backup Restoration", "Account Lockout",
	"DNS Blocking", "Email Quarantine", "Network Segmentation", "Threat Intelligence",
	"Deception Technology", "Zero Trust Controls", "Incident Response Platform",
	"Security Orchestration", "Automated Remediation", "Threat Hunting Platform",
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}

// responseSeconds draws an analyst response time; critical is fastest.
func responseSeconds(rng *rand.Rand, s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return rng.IntN(45) + 10
	case domain.SeverityHigh:
		return rng.IntN(90) + 20
	case domain.SeverityMedium:
		return rng.IntN(150) + 30
	case domain.SeverityLow:
		return rng.IntN(240) + 45
	default:
		return rng.IntN(90) + 20
	}
}

func newAttackEvent(rng *rand.Rand, id string, now time.Time, run *phaseRun) domain.SimulationEvent {
	p := run.phase
	return domain.SimulationEvent{
		ID:              id,
		Timestamp:       now,
		Type:            domain.EventAttack,
		Severity:        p.Severity,
		Status:          domain.StatusActive,
		Title:           run.scenario + ": " + p.Title,
		Description:     p.Description,
		AttackVector:    p.AttackVector,
		TargetSystem:    p.TargetSystem,
		SourceIP:        pick(rng, sourceIPs),
		DestinationIP:   fmt.Sprintf("10.0.%d.%d", rng.IntN(255), rng.IntN(255)),
		MitreTechnique:  p.MitreTechnique,
		PhaseInstanceID: run.instanceID(),
		RedTeamAction: &domain.RedTeamAction{
			ID:                   "red-" + id,
			Technique:            p.MitreTechnique,
			Tool:                 pick(rng, redTeamTools),
			Target:               p.TargetSystem,
			Success:              rng.Float64() > 0.25,
			DetectionProbability: p.DetectionProbability,
			Impact:               p.Severity,
			NextActions:          append([]string(nil), nextActions...),
		},
		Metadata: map[string]string{
			"scenario": run.scenario,
			"chain":    run.chain,
		},
	}
}

// companion copies the narrative fields of an attack event for a detection
// or mitigation event. Offensive detail stays on the attack.
func companion(attack domain.SimulationEvent, now time.Time) domain.SimulationEvent {
	c := attack.Clone()
	c.Timestamp = now
	c.RedTeamAction = nil
	c.BlueTeamResponse = nil
	return c
}

func newDetectionEvent(rng *rand.Rand, attack domain.SimulationEvent, now time.Time) domain.SimulationEvent {
	d := companion(attack, now)
	d.ID = "response-" + attack.ID
	d.Type = domain.EventDetection
	d.Status = domain.StatusDetected
	d.Title = "DETECTED: " + attack.Title
	d.Description = "SOC automated detection: " + attack.Description
	d.BlueTeamResponse = &domain.BlueTeamResponse{
		ID:                 "blue-" + attack.ID,
		DetectionMethod:    pick(rng, detectionMethods),
		ResponseTime:       responseSeconds(rng, attack.Severity),
		Analyst:            pick(rng, analysts),
		ContainmentActions: append([]string(nil), containmentActions[:rng.IntN(4)+2]...),
		Effectiveness:      rng.IntN(25) + 75,
		FalsePositive:      rng.Float64() < 0.02,
	}
	return d
}

func newMitigationEvent(rng *rand.Rand, attack domain.SimulationEvent, now time.Time) domain.SimulationEvent {
	m := companion(attack, now)
	m.ID = "mitigation-" + attack.ID
	m.Type = domain.EventMitigation
	m.Status = domain.StatusMitigated
	m.Title = "MITIGATED: " + attack.Title
	m.Description = fmt.Sprintf("%s using %s.", pick(rng, mitigationActions), pick(rng, mitigationTools))
	return m
}
