package catalogue

import (
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// Default returns the built-in scenario catalogue.
func Default() *Catalogue {
	return defaultCatalogue
}

var defaultCatalogue = MustNew(
	Scenario{
		Name: "Advanced Spear Phishing Campaign",
		Phases: []Phase{
			{
				Title:                "OSINT Reconnaissance",
				Description:          "Red team gathering employee information from social media and public sources",
				AttackVector:         "Open Source Intelligence",
				MitreTechnique:       "T1589.002",
				Severity:             domain.SeverityLow,
				TargetSystem:         "External Infrastructure",
				Delay:                0,
				DetectionProbability: 0.2,
			},
			{
				Title:                "Targeted Phishing Email",
				Description:          "Highly personalized phishing email sent to C-level executives",
				AttackVector:         "Spear Phishing Link",
				MitreTechnique:       "T1566.002",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Email Server",
				Delay:                12 * time.Second,
				DetectionProbability: 0.75,
			},
			{
				Title:                "Credential Harvesting",
				Description:          "Fake login page capturing executive credentials",
				AttackVector:         "Credential Harvesting",
				MitreTechnique:       "T1056.003",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Web Application",
				Delay:                25 * time.Second,
				DetectionProbability: 0.85,
			},
		},
	},
	Scenario{
		Name: "Ransomware Deployment",
		Phases: []Phase{
			{
				Title:                "Initial Compromise",
				Description:          "Malicious macro-enabled document executed by user",
				AttackVector:         "Malicious File",
				MitreTechnique:       "T1204.002",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Admin Workstation",
				Delay:                0,
				DetectionProbability: 0.88,
			},
			{
				Title:                "Ransomware Encryption",
				Description:          "Files being encrypted across network shares",
				AttackVector:         "Data Encrypted for Impact",
				MitreTechnique:       "T1486",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "File Server",
				Delay:                18 * time.Second,
				DetectionProbability: 0.98,
			},
			{
				Title:                "Ransom Note Deployment",
				Description:          "Ransom notes deployed across compromised systems",
				AttackVector:         "Defacement",
				MitreTechnique:       "T1491.001",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Multiple Systems",
				Delay:                30 * time.Second,
				DetectionProbability: 1.0,
			},
		},
	},
	Scenario{
		Name: "Supply Chain Attack",
		Phases: []Phase{
			{
				Title:                "Third-Party Software Compromise",
				Description:          "Malicious update pushed through compromised software vendor",
				AttackVector:         "Supply Chain Compromise",
				MitreTechnique:       "T1195.002",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Software Distribution",
				Delay:                0,
				DetectionProbability: 0.65,
			},
			{
				Title:                "Backdoor Installation",
				Description:          "Persistent backdoor installed via compromised update",
				AttackVector:         "Server Software Component",
				MitreTechnique:       "T1505.003",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Web Server",
				Delay:                20 * time.Second,
				DetectionProbability: 0.7,
			},
		},
	},
	Scenario{
		Name: "Insider Threat Activity",
		Phases: []Phase{
			{
				Title:                "Privilege Abuse",
				Description:          "Authorized user accessing files outside normal scope",
				AttackVector:         "Valid Accounts",
				MitreTechnique:       "T1078.002",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "File Server",
				Delay:                0,
				DetectionProbability: 0.6,
			},
			{
				Title:                "Data Staging",
				Description:          "Large amounts of sensitive data being copied to external drive",
				AttackVector:         "Data Staged",
				MitreTechnique:       "T1074.001",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Workstation",
				Delay:                15 * time.Second,
				DetectionProbability: 0.85,
			},
		},
	},
	Scenario{
		Name: "Advanced Persistent Threat",
		Phases: []Phase{
			{
				Title:                "Watering Hole Attack",
				Description:          "Legitimate website compromised to serve malware to visitors",
				AttackVector:         "Drive-by Compromise",
				MitreTechnique:       "T1189",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Web Browser",
				Delay:                0,
				DetectionProbability: 0.7,
			},
			{
				Title:                "Living off the Land",
				Description:          "PowerShell used for reconnaissance and lateral movement",
				AttackVector:         "PowerShell",
				MitreTechnique:       "T1059.001",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Domain Controller",
				Delay:                22 * time.Second,
				DetectionProbability: 0.8,
			},
			{
				Title:                "Golden Ticket Attack",
				Description:          "Forged Kerberos tickets used for domain persistence",
				AttackVector:         "Golden Ticket",
				MitreTechnique:       "T1558.001",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Domain Controller",
				Delay:                35 * time.Second,
				DetectionProbability: 0.9,
			},
		},
	},
	Scenario{
		Name: "Cloud Infrastructure Attack",
		Phases: []Phase{
			{
				Title:                "Cloud Enumeration",
				Description:          "Automated scanning of cloud resources and permissions",
				AttackVector:         "Cloud Service Discovery",
				MitreTechnique:       "T1526",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Cloud Services",
				Delay:                0,
				DetectionProbability: 0.75,
			},
			{
				Title:                "IAM Privilege Escalation",
				Description:          "Exploiting misconfigured IAM policies for privilege escalation",
				AttackVector:         "Cloud Administration Command",
				MitreTechnique:       "T1580",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Cloud Services",
				Delay:                18 * time.Second,
				DetectionProbability: 0.85,
			},
		},
	},
	Scenario{
		Name: "Network Lateral Movement",
		Phases: []Phase{
			{
				Title:                "Network Discovery",
				Description:          "Automated port scanning across internal network segments",
				AttackVector:         "Network Service Scanning",
				MitreTechnique:       "T1046",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Internal Network",
				Delay:                0,
				DetectionProbability: 0.9,
			},
			{
				Title:                "SMB Exploitation",
				Description:          "Exploiting SMB vulnerabilities for lateral movement",
				AttackVector:         "Exploitation of Remote Services",
				MitreTechnique:       "T1210",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "File Server",
				Delay:                16 * time.Second,
				DetectionProbability: 0.85,
			},
			{
				Title:                "Pass-the-Hash Attack",
				Description:          "Using stolen password hashes for authentication",
				AttackVector:         "Pass the Hash",
				MitreTechnique:       "T1550.002",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Multiple Systems",
				Delay:                28 * time.Second,
				DetectionProbability: 0.88,
			},
		},
	},
	Scenario{
		Name: "Database Compromise",
		Phases: []Phase{
			{
				Title:                "SQL Injection Attack",
				Description:          "Malicious SQL queries attempting to extract sensitive data",
				AttackVector:         "Exploit Public-Facing Application",
				MitreTechnique:       "T1190",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Database Server",
				Delay:                0,
				DetectionProbability: 0.92,
			},
			{
				Title:                "Database Enumeration",
				Description:          "Systematic enumeration of database schemas and tables",
				AttackVector:         "Data from Information Repositories",
				MitreTechnique:       "T1213.002",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Database Server",
				Delay:                14 * time.Second,
				DetectionProbability: 0.8,
			},
		},
	},
	Scenario{
		Name: "Email Security Breach",
		Phases: []Phase{
			{
				Title:                "Email Account Takeover",
				Description:          "Compromised email account used for internal phishing",
				AttackVector:         "Email Account",
				MitreTechnique:       "T1078.003",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Email Server",
				Delay:                0,
				DetectionProbability: 0.75,
			},
			{
				Title:                "Business Email Compromise",
				Description:          "Fraudulent wire transfer request sent from compromised executive account",
				AttackVector:         "Phishing",
				MitreTechnique:       "T1566.001",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Email Server",
				Delay:                20 * time.Second,
				DetectionProbability: 0.7,
			},
		},
	},
	Scenario{
		Name: "Cryptocurrency Mining Attack",
		Phases: []Phase{
			{
				Title:                "Cryptojacking Deployment",
				Description:          "Unauthorized cryptocurrency mining software installed",
				AttackVector:         "Resource Hijacking",
				MitreTechnique:       "T1496",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Web Server",
				Delay:                0,
				DetectionProbability: 0.85,
			},
		},
	},
	Scenario{
		Name: "VPN Infrastructure Attack",
		Phases: []Phase{
			{
				Title:                "VPN Credential Stuffing",
				Description:          "Automated login attempts using leaked credential databases",
				AttackVector:         "Brute Force",
				MitreTechnique:       "T1110.004",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "VPN Gateway",
				Delay:                0,
				DetectionProbability: 0.9,
			},
			{
				Title:                "VPN Tunnel Hijacking",
				Description:          "Successful compromise of VPN session for remote access",
				AttackVector:         "Remote Services",
				MitreTechnique:       "T1021.005",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "VPN Gateway",
				Delay:                25 * time.Second,
				DetectionProbability: 0.95,
			},
		},
	},
	Scenario{
		Name: "Backup System Compromise",
		Phases: []Phase{
			{
				Title:                "Backup Enumeration",
				Description:          "Scanning for accessible backup files and repositories",
				AttackVector:         "Data from Network Shared Drive",
				MitreTechnique:       "T1039",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Backup Server",
				Delay:                0,
				DetectionProbability: 0.7,
			},
			{
				Title:                "Backup Deletion",
				Description:          "Critical backup files being deleted to prevent recovery",
				AttackVector:         "Inhibit System Recovery",
				MitreTechnique:       "T1490",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Backup Server",
				Delay:                18 * time.Second,
				DetectionProbability: 0.98,
			},
		},
	},
	Scenario{
		Name: "Mobile Device Attack",
		Phases: []Phase{
			{
				Title:                "Mobile Malware Installation",
				Description:          "Malicious app installed on corporate mobile device",
				AttackVector:         "Drive-by Compromise",
				MitreTechnique:       "T1189",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Mobile Device",
				Delay:                0,
				DetectionProbability: 0.6,
			},
			{
				Title:                "Corporate Data Access",
				Description:          "Malware accessing corporate email and documents on mobile device",
				AttackVector:         "Data from Local System",
				MitreTechnique:       "T1005",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Mobile Device",
				Delay:                15 * time.Second,
				DetectionProbability: 0.8,
			},
		},
	},
	Scenario{
		Name: "IoT Device Compromise",
		Phases: []Phase{
			{
				Title:                "IoT Device Scanning",
				Description:          "Scanning for vulnerable IoT devices on corporate network",
				AttackVector:         "Network Service Scanning",
				MitreTechnique:       "T1046",
				Severity:             domain.SeverityLow,
				TargetSystem:         "IoT Devices",
				Delay:                0,
				DetectionProbability: 0.5,
			},
			{
				Title:                "IoT Botnet Formation",
				Description:          "Compromised IoT devices being recruited into botnet",
				AttackVector:         "Exploitation for Client Execution",
				MitreTechnique:       "T1203",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "IoT Devices",
				Delay:                20 * time.Second,
				DetectionProbability: 0.75,
			},
		},
	},
	Scenario{
		Name: "DNS Hijacking Attack",
		Phases: []Phase{
			{
				Title:                "DNS Cache Poisoning",
				Description:          "Malicious DNS responses injected to redirect traffic",
				AttackVector:         "Domain Generation Algorithms",
				MitreTechnique:       "T1568.002",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "DNS Server",
				Delay:                0,
				DetectionProbability: 0.85,
			},
			{
				Title:                "Traffic Redirection",
				Description:          "Corporate traffic being redirected to malicious servers",
				AttackVector:         "Traffic Signaling",
				MitreTechnique:       "T1205.001",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Network Infrastructure",
				Delay:                12 * time.Second,
				DetectionProbability: 0.9,
			},
		},
	},
	Scenario{
		Name: "Zero-Day Exploitation",
		Phases: []Phase{
			{
				Title:                "Zero-Day Discovery",
				Description:          "Previously unknown vulnerability being exploited",
				AttackVector:         "Exploitation for Client Execution",
				MitreTechnique:       "T1203",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Web Application",
				Delay:                0,
				DetectionProbability: 0.4,
			},
			{
				Title:                "Payload Deployment",
				Description:          "Advanced persistent threat payload deployed via zero-day",
				AttackVector:         "User Execution",
				MitreTechnique:       "T1204.002",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Multiple Systems",
				Delay:                15 * time.Second,
				DetectionProbability: 0.7,
			},
		},
	},
	Scenario{
		Name: "Social Engineering Campaign",
		Phases: []Phase{
			{
				Title:                "Pretexting Phone Call",
				Description:          "Attacker impersonating IT support to gather credentials",
				AttackVector:         "Phishing for Information",
				MitreTechnique:       "T1598.004",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Human Factor",
				Delay:                0,
				DetectionProbability: 0.3,
			},
			{
				Title:                "Physical Badge Cloning",
				Description:          "Employee access badge cloned for unauthorized physical access",
				AttackVector:         "Hardware Additions",
				MitreTechnique:       "T1200",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "Physical Security",
				Delay:                30 * time.Second,
				DetectionProbability: 0.8,
			},
		},
	},
	Scenario{
		Name: "API Security Breach",
		Phases: []Phase{
			{
				Title:                "API Enumeration",
				Description:          "Automated scanning of API endpoints for vulnerabilities",
				AttackVector:         "Network Service Scanning",
				MitreTechnique:       "T1046",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "API Gateway",
				Delay:                0,
				DetectionProbability: 0.8,
			},
			{
				Title:                "API Key Theft",
				Description:          "Sensitive API keys extracted from exposed configuration",
				AttackVector:         "Unsecured Credentials",
				MitreTechnique:       "T1552.001",
				Severity:             domain.SeverityHigh,
				TargetSystem:         "API Gateway",
				Delay:                16 * time.Second,
				DetectionProbability: 0.85,
			},
		},
	},
	Scenario{
		Name: "Container Escape Attack",
		Phases: []Phase{
			{
				Title:                "Container Vulnerability Scan",
				Description:          "Scanning containerized applications for escape vulnerabilities",
				AttackVector:         "Exploitation for Privilege Escalation",
				MitreTechnique:       "T1068",
				Severity:             domain.SeverityMedium,
				TargetSystem:         "Container Platform",
				Delay:                0,
				DetectionProbability: 0.75,
			},
			{
				Title:                "Container Breakout",
				Description:          "Successful escape from container to host system",
				AttackVector:         "Escape to Host",
				MitreTechnique:       "T1611",
				Severity:             domain.SeverityCritical,
				TargetSystem:         "Container Platform",
				Delay:                22 * time.Second,
				DetectionProbability: 0.9,
			},
		},
	},
)
