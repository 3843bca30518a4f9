package security

import (
	"fmt"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// suspiciousPorts filters a scan's port list down to flagged entries.
func suspiciousPorts(sample *metrics.SecuritySample) []metrics.PortInfo {
	flagged := []metrics.PortInfo{}
	for _, p := range sample.OpenPorts {
		if p.Suspicious {
			flagged = append(flagged, p)
		}
	}
	return flagged
}

// calculateScore folds scan findings into a 0-100 posture score.
// Penalties: 30 for no firewall, 20 per suspicious port, 15 per
// suspicious process, 10 for more than ten open ports.
func calculateScore(sample *metrics.SecuritySample) int {
	score := 100

	if !sample.Firewall.Enabled {
		score -= 30
	}
	score -= 20 * len(suspiciousPorts(sample))
	score -= 15 * len(sample.SuspiciousProcesses)
	if len(sample.OpenPorts) > 10 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func generateWarnings(sample *metrics.SecuritySample) []string {
	warnings := []string{}

	if !sample.Firewall.Enabled {
		warnings = append(warnings, "Firewall is not enabled or not detected")
	}

	for _, p := range suspiciousPorts(sample) {
		warnings = append(warnings, fmt.Sprintf("Suspicious port %d is open (%s)", p.Port, p.Process))
	}

	for _, proc := range sample.SuspiciousProcesses {
		warnings = append(warnings, fmt.Sprintf("Suspicious process: %s - %s", proc.Name, proc.Reason))
	}

	if len(sample.OpenPorts) > 15 {
		warnings = append(warnings, fmt.Sprintf("High number of open ports detected (%d)", len(sample.OpenPorts)))
	}

	return warnings
}

func generateRecommendations(sample *metrics.SecuritySample) []string {
	recs := []string{}

	if !sample.Firewall.Enabled {
		recs = append(recs, "Enable firewall protection")
	}
	if len(suspiciousPorts(sample)) > 0 {
		recs = append(recs, "Close suspicious ports and investigate associated processes")
	}
	if len(sample.SuspiciousProcesses) > 0 {
		recs = append(recs, "Review and terminate suspicious processes")
	}
	if sample.Score < 70 {
		recs = append(recs,
			"Perform a comprehensive security audit",
			"Update system and software to latest versions",
			"Enable SSH key-only authentication")
	}

	if len(recs) == 0 {
		recs = append(recs, "System security appears to be in good condition")
	}
	return recs
}
