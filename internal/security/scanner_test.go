package security

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

func sampleWith(firewall bool, ports []metrics.PortInfo, procs []metrics.SuspiciousProcess) *metrics.SecuritySample {
	return &metrics.SecuritySample{
		Firewall:            metrics.FirewallStatus{Enabled: firewall},
		OpenPorts:           ports,
		SuspiciousProcesses: procs,
	}
}

func TestCalculateScore_Clean(t *testing.T) {
	s := sampleWith(true, nil, nil)
	assert.Equal(t, 100, calculateScore(s))
}

func TestCalculateScore_NoFirewall(t *testing.T) {
	s := sampleWith(false, nil, nil)
	assert.Equal(t, 70, calculateScore(s))
}

func TestCalculateScore_SuspiciousFindings(t *testing.T) {
	ports := []metrics.PortInfo{
		{Port: 31337, Suspicious: true},
		{Port: 8080},
	}
	procs := []metrics.SuspiciousProcess{
		{Name: "xmrig", Reason: "Suspicious process name"},
	}
	s := sampleWith(true, ports, procs)
	// 100 - 20 (one suspicious port) - 15 (one suspicious process)
	assert.Equal(t, 65, calculateScore(s))
}

func TestCalculateScore_ManyOpenPorts(t *testing.T) {
	ports := make([]metrics.PortInfo, 11)
	for i := range ports {
		ports[i] = metrics.PortInfo{Port: 8000 + i}
	}
	s := sampleWith(true, ports, nil)
	assert.Equal(t, 90, calculateScore(s))
}

func TestCalculateScore_ClampedAtZero(t *testing.T) {
	procs := make([]metrics.SuspiciousProcess, 10)
	s := sampleWith(false, nil, procs)
	assert.Equal(t, 0, calculateScore(s))
}

func TestSuspicionReason(t *testing.T) {
	tests := []struct {
		name     string
		proc     string
		cpu, mem float64
		want     string
		flagged  bool
	}{
		{"netcat by name", "netcat", 0, 0, "Suspicious process name", true},
		{"miner substring", "hidden-xmrig-worker", 1, 1, "Suspicious process name", true},
		{"resource hog", "photoprocessor", 95, 60, "High resource usage", true},
		{"busy but lean", "compiler", 99, 10, "", false},
		{"ordinary", "nginx", 2, 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, flagged := suspicionReason(tt.proc, tt.cpu, tt.mem)
			assert.Equal(t, tt.flagged, flagged)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestGenerateWarnings(t *testing.T) {
	ports := []metrics.PortInfo{{Port: 1337, Process: "nc", Suspicious: true}}
	procs := []metrics.SuspiciousProcess{{Name: "nc", Reason: "Suspicious process name"}}
	s := sampleWith(false, ports, procs)

	warnings := generateWarnings(s)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "Firewall")
	assert.Contains(t, warnings[1], "port 1337")
	assert.Contains(t, warnings[2], "Suspicious process: nc")
}

func TestGenerateRecommendations_Clean(t *testing.T) {
	s := sampleWith(true, nil, nil)
	s.Score = 100
	recs := generateRecommendations(s)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "good condition")
}

func TestGenerateRecommendations_LowScore(t *testing.T) {
	s := sampleWith(false, nil, nil)
	s.Score = 40
	recs := generateRecommendations(s)
	assert.Contains(t, recs, "Enable firewall protection")
	assert.Contains(t, recs, "Perform a comprehensive security audit")
}

func TestScan_ProducesScoredSample(t *testing.T) {
	s := NewScanner()
	// Pin the firewall result so the scan doesn't shell out in tests.
	s.firewall = func() metrics.FirewallStatus {
		return metrics.FirewallStatus{Enabled: true, Status: "Active"}
	}

	sample, err := s.Scan()
	require.NoError(t, err)
	assert.NotEmpty(t, sample.Timestamp)
	assert.GreaterOrEqual(t, sample.Score, 0)
	assert.LessOrEqual(t, sample.Score, 100)
	assert.NotEmpty(t, sample.Recommendations)
}

func TestLog_BoundedAndLimited(t *testing.T) {
	s := NewScanner()
	for i := 0; i < 1100; i++ {
		s.record("security_scan", fmt.Sprintf("scan %d", i))
	}

	all := s.Log(0)
	require.Len(t, all, 1000)
	assert.Equal(t, "scan 100", all[0].Details)

	recent := s.Log(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "scan 1099", recent[4].Details)
}
