package security

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// probeTimeout bounds each external firewall tool invocation.
const probeTimeout = 5 * time.Second

// checkFirewall probes the platform firewall tool. The tools are
// treated as opaque: only whether they report an active firewall
// matters, not their output format.
func (s *Scanner) checkFirewall() metrics.FirewallStatus {
	switch runtime.GOOS {
	case "linux":
		return checkLinuxFirewall()
	case "darwin":
		return checkMacOSFirewall()
	case "windows":
		return checkWindowsFirewall()
	}
	return metrics.FirewallStatus{Status: "Unknown"}
}

// runProbe executes a firewall tool and returns its lowercased output.
func runProbe(name string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", false
	}
	return strings.ToLower(string(out)), true
}

func checkLinuxFirewall() metrics.FirewallStatus {
	if out, ok := runProbe("ufw", "status"); ok {
		enabled := strings.Contains(out, "active")
		status := "Inactive"
		if enabled {
			status = "Active"
		}
		return metrics.FirewallStatus{
			Enabled: enabled,
			Status:  status,
			Details: "UFW (Uncomplicated Firewall)",
		}
	}

	if out, ok := runProbe("iptables", "-L"); ok {
		// A ruleset longer than the empty-table boilerplate means
		// something is configured.
		enabled := len(strings.TrimSpace(out)) > 100
		status := "Inactive"
		if enabled {
			status = "Active"
		}
		return metrics.FirewallStatus{
			Enabled: enabled,
			Status:  status,
			Details: "iptables",
		}
	}

	return metrics.FirewallStatus{Status: "Not detected"}
}

func checkMacOSFirewall() metrics.FirewallStatus {
	out, ok := runProbe("/usr/libexec/ApplicationFirewall/socketfilterfw", "--getglobalstate")
	if !ok {
		return metrics.FirewallStatus{Status: "Unable to check (requires admin)"}
	}

	enabled := strings.Contains(out, "enabled")
	status := "Disabled"
	if enabled {
		status = "Enabled"
	}
	return metrics.FirewallStatus{
		Enabled: enabled,
		Status:  status,
		Details: "macOS Application Firewall",
	}
}

func checkWindowsFirewall() metrics.FirewallStatus {
	out, ok := runProbe("netsh", "advfirewall", "show", "allprofiles", "state")
	if !ok {
		return metrics.FirewallStatus{Status: "Unable to check"}
	}

	enabled := strings.Contains(out, "on")
	status := "OFF"
	if enabled {
		status = "ON"
	}
	return metrics.FirewallStatus{
		Enabled: enabled,
		Status:  status,
		Details: "Windows Defender Firewall",
	}
}
