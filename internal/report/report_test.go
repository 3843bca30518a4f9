package report

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/insight"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func sampleSnapshot(t time.Time) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Timestamp:  t,
		CPU:        &metrics.CPUSample{Percent: 35.5},
		CPUPerCore: []float64{30.0, 41.0},
		Memory: &metrics.MemorySample{
			TotalBytes:     16 << 30,
			UsedBytes:      8 << 30,
			AvailableBytes: 8 << 30,
			Percent:        50.0,
		},
		Disk: []metrics.DiskSample{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4", TotalBytes: 500 << 30, UsedBytes: 100 << 30, FreeBytes: 400 << 30, Percent: 20.0},
		},
		Network:   &metrics.NetworkSample{BytesSent: 1000, BytesRecv: 2000, UploadBps: 128, DownloadBps: 256},
		Processes: []metrics.ProcessSample{{PID: 1, Name: "systemd", CPUPercent: 0.1, MemPercent: 0.2, Status: "sleeping"}},
		System: &metrics.SystemInfoSample{
			OS: "Linux", Version: "6.1", Arch: "x86_64", Hostname: "web-01",
			BootTime: "2026-08-01 09:00:00", CPUCountPhysical: 4, CPUCountLogical: 8,
		},
		Battery: &metrics.BatterySample{Present: true, Percent: 90, PowerPlugged: true, TimeLeft: "N/A"},
		Security: &metrics.SecuritySample{
			Score:    85,
			Firewall: metrics.FirewallStatus{Enabled: true, Status: "Active"},
		},
	}
}

func TestRenderSnapshot_AllSections(t *testing.T) {
	out := NewRenderer().RenderSnapshot(sampleSnapshot(time.Now()))

	assert.Contains(t, out, "SYSTEM INFORMATION")
	assert.Contains(t, out, "web-01")
	assert.Contains(t, out, "CPU & MEMORY")
	assert.Contains(t, out, "35.5%")
	assert.Contains(t, out, "DISK USAGE")
	assert.Contains(t, out, "ext4")
	assert.Contains(t, out, "NETWORK")
	assert.Contains(t, out, "TOP PROCESSES")
	assert.Contains(t, out, "systemd")
	assert.Contains(t, out, "SECURITY OVERVIEW")
	assert.Contains(t, out, "85/100")
	assert.Contains(t, out, "EXCELLENT SECURITY")
}

func TestRenderSnapshot_SkipsAbsentSections(t *testing.T) {
	s := &snapshot.Snapshot{
		Timestamp: time.Now(),
		CPU:       &metrics.CPUSample{Percent: 10},
	}
	out := NewRenderer().RenderSnapshot(s)

	assert.Contains(t, out, "CPU & MEMORY")
	assert.NotContains(t, out, "DISK USAGE")
	assert.NotContains(t, out, "SECURITY OVERVIEW")
}

func TestRenderSnapshot_Nil(t *testing.T) {
	assert.Empty(t, NewRenderer().RenderSnapshot(nil))
}

func TestRenderComparison_NoChanges(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-24 * time.Hour))
	cur := sampleSnapshot(time.Now())

	out := NewRenderer().RenderComparison(old, cur, snapshot.Compare(old, cur))
	assert.Contains(t, out, "No significant changes detected since last snapshot.")
}

func TestRenderComparison_CPUAndMemory(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-48 * time.Hour))
	cur := sampleSnapshot(time.Now())
	cur.CPU = &metrics.CPUSample{Percent: 85.5}
	cur.Memory = &metrics.MemorySample{TotalBytes: 16 << 30, UsedBytes: 14 << 30, AvailableBytes: 2 << 30, Percent: 87.5}

	diff := snapshot.Compare(old, cur)
	require.True(t, diff.Has(snapshot.KeyCPU))

	out := NewRenderer().RenderComparison(old, cur, diff)
	assert.Contains(t, out, "2 days apart")
	assert.Contains(t, out, "CPU Usage Changes")
	assert.Contains(t, out, "35.5% → 85.5%")
	assert.Contains(t, out, "50.0% (increased)")
	assert.Contains(t, out, "Memory Usage Changes")
	assert.Contains(t, out, "8.00 GB → 14.00 GB")
	assert.Contains(t, out, "6.00 GB (increased)")
}

func TestRenderComparison_DiskAndSecurity(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-time.Hour))
	cur := sampleSnapshot(time.Now())
	cur.Disk = []metrics.DiskSample{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4", TotalBytes: 500 << 30, UsedBytes: 110 << 30, FreeBytes: 390 << 30, Percent: 22.0},
	}
	cur.Security = &metrics.SecuritySample{Score: 65, Firewall: metrics.FirewallStatus{Status: "Not detected"}}

	out := NewRenderer().RenderComparison(old, cur, snapshot.Compare(old, cur))
	assert.Contains(t, out, "Disk Usage Changes")
	assert.Contains(t, out, "10.00 GB (more used)")
	assert.Contains(t, out, "Security Status Changes")
	assert.Contains(t, out, "85/100 → 65/100")
	assert.Contains(t, out, "20 points (declined)")
}

func TestRenderExecutiveSummary_Stable(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-time.Hour))
	cur := sampleSnapshot(time.Now())

	out := NewRenderer().RenderExecutiveSummary(old, cur, snapshot.Compare(old, cur))
	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "System status remains stable with no significant changes.")
}

func TestRenderExecutiveSummary_KeyChanges(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-time.Hour))
	cur := sampleSnapshot(time.Now())
	cur.CPU = &metrics.CPUSample{Percent: 75.5}
	cur.Battery = &metrics.BatterySample{Present: true, Percent: 45, PowerPlugged: false, TimeLeft: "2:30"}

	out := NewRenderer().RenderExecutiveSummary(old, cur, snapshot.Compare(old, cur))
	assert.Contains(t, out, "Key Changes:")
	assert.Contains(t, out, "1. CPU usage increased by 40.0%")
	assert.Contains(t, out, "2. Battery discharged by 45.0%")
}

func TestRenderExecutiveSummary_SmallChangesFilteredOut(t *testing.T) {
	old := sampleSnapshot(time.Now().Add(-time.Hour))
	cur := sampleSnapshot(time.Now())
	cur.CPU = &metrics.CPUSample{Percent: 37.0} // below the 5% reporting floor

	out := NewRenderer().RenderExecutiveSummary(old, cur, snapshot.Compare(old, cur))
	assert.Contains(t, out, "System status remains stable")
}

func TestRenderInsights(t *testing.T) {
	in := insight.Insights{
		Warnings:        []string{"High CPU usage (90.0%)"},
		Recommendations: []string{"High CPU usage detected. Consider closing unnecessary applications."},
		Positives:       []string{"Security score improved by 5 points"},
	}

	out := NewRenderer().RenderInsights(in)
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "High CPU usage (90.0%)")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "POSITIVE CHANGES")
	assert.Contains(t, out, "Security score improved by 5 points")
}

func TestRenderInsights_Empty(t *testing.T) {
	assert.Empty(t, NewRenderer().RenderInsights(insight.Insights{}))
}

func TestRenderBaseline(t *testing.T) {
	out := NewRenderer().RenderBaseline()
	assert.Contains(t, out, "Baseline snapshot recorded.")
	assert.Contains(t, out, "Run again later to see changes.")
}
