package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

// RenderComparison formats the per-section changes between two snapshots.
// Sections that compare as equal are omitted; an empty diff collapses to a
// single stability line.
func (r *Renderer) RenderComparison(old, new *snapshot.Snapshot, diff snapshot.Diff) string {
	var sb strings.Builder
	r.title(&sb, "COMPARISON SUMMARY")

	if len(diff) == 0 {
		sb.WriteString("  " + r.successStyle.Render(ui.SymbolSuccess+" No significant changes detected since last snapshot.") + "\n")
		return sb.String()
	}

	days := int(new.Timestamp.Sub(old.Timestamp).Hours() / 24)
	r.field(&sb, "Snapshots Taken", fmt.Sprintf("%d days apart", days))
	r.field(&sb, "Previous", old.Timestamp.Format("2006-01-02 15:04:05"))
	r.field(&sb, "Current", new.Timestamp.Format("2006-01-02 15:04:05"))

	if diff.Has(snapshot.KeyCPU) && old.CPU != nil && new.CPU != nil {
		r.compareCPU(&sb, old, new, diff)
	}
	if diff.Has(snapshot.KeyMemory) && old.Memory != nil && new.Memory != nil {
		r.compareMemory(&sb, old, new)
	}
	if diff.Has(snapshot.KeyDisk) && old.Disk != nil && new.Disk != nil {
		r.compareDisks(&sb, old, new)
	}
	if diff.Has(snapshot.KeyNetwork) && old.Network != nil && new.Network != nil {
		r.compareNetwork(&sb, old, new)
	}
	if diff.Has(snapshot.KeyBattery) && old.Battery != nil && new.Battery != nil {
		r.compareBattery(&sb, old, new)
	}
	if diff.Has(snapshot.KeySecurity) && old.Security != nil && new.Security != nil {
		r.compareSecurity(&sb, old, new)
	}

	return sb.String()
}

func (r *Renderer) compareCPU(sb *strings.Builder, old, new *snapshot.Snapshot, diff snapshot.Diff) {
	r.subtitle(sb, "CPU Usage Changes")

	delta := new.CPU.Percent - old.CPU.Percent
	r.field(sb, "Overall CPU Usage", arrow(fmtPct(old.CPU.Percent), fmtPct(new.CPU.Percent)))
	r.field(sb, "Change", fmt.Sprintf("%.1f%% (%s)", math.Abs(delta), trend(delta)))

	if diff.Has(snapshot.KeyCPUPerCore) {
		for i := 0; i < len(old.CPUPerCore) && i < len(new.CPUPerCore); i++ {
			coreDelta := new.CPUPerCore[i] - old.CPUPerCore[i]
			if math.Abs(coreDelta) > 1.0 {
				direction := "up"
				if coreDelta < 0 {
					direction = "down"
				}
				r.field(sb, fmt.Sprintf("Core %d", i),
					fmt.Sprintf("%s (%s %.1f%%)", arrow(fmtPct(old.CPUPerCore[i]), fmtPct(new.CPUPerCore[i])), direction, math.Abs(coreDelta)))
			}
		}
	}
}

func (r *Renderer) compareMemory(sb *strings.Builder, old, new *snapshot.Snapshot) {
	r.subtitle(sb, "Memory Usage Changes")

	o, n := old.Memory, new.Memory
	r.field(sb, "Total Memory", arrow(fmtGB(o.TotalGB()), fmtGB(n.TotalGB())))
	r.field(sb, "Used Memory", arrow(fmtGB(o.UsedGB()), fmtGB(n.UsedGB())))

	usedDelta := n.UsedGB() - o.UsedGB()
	r.field(sb, "Change", fmt.Sprintf("%.2f GB (%s)", math.Abs(usedDelta), trend(usedDelta)))
	r.field(sb, "Available Memory", arrow(fmtGB(o.AvailableGB()), fmtGB(n.AvailableGB())))
	r.field(sb, "Usage Percentage", arrow(fmtPct(o.Percent), fmtPct(n.Percent)))
}

func (r *Renderer) compareDisks(sb *strings.Builder, old, new *snapshot.Snapshot) {
	r.subtitle(sb, "Disk Usage Changes")

	for i := 0; i < len(old.Disk) && i < len(new.Disk); i++ {
		o, n := old.Disk[i], new.Disk[i]
		r.field(sb, "Drive", n.Mountpoint)
		r.field(sb, "  Used", arrow(fmtGB(o.UsedGB()), fmtGB(n.UsedGB())))

		usedDelta := n.UsedGB() - o.UsedGB()
		direction := "more"
		if usedDelta < 0 {
			direction = "less"
		}
		r.field(sb, "  Change", fmt.Sprintf("%.2f GB (%s used)", math.Abs(usedDelta), direction))
		r.field(sb, "  Free", arrow(fmtGB(o.FreeGB()), fmtGB(n.FreeGB())))
		r.field(sb, "  Usage", arrow(fmtPct(o.Percent), fmtPct(n.Percent)))
	}
}

func (r *Renderer) compareNetwork(sb *strings.Builder, old, new *snapshot.Snapshot) {
	r.subtitle(sb, "Network Activity Changes")

	o, n := old.Network, new.Network
	r.field(sb, "Upload Speed", arrow(fmt.Sprintf("%.0f B/s", o.UploadBps), fmt.Sprintf("%.0f B/s", n.UploadBps)))
	r.field(sb, "Download Speed", arrow(fmt.Sprintf("%.0f B/s", o.DownloadBps), fmt.Sprintf("%.0f B/s", n.DownloadBps)))
}

func (r *Renderer) compareBattery(sb *strings.Builder, old, new *snapshot.Snapshot) {
	r.subtitle(sb, "Battery Status Changes")

	o, n := old.Battery, new.Battery
	r.field(sb, "Battery Level", arrow(fmtPct(o.Percent), fmtPct(n.Percent)))

	delta := n.Percent - o.Percent
	if math.Abs(delta) > 5 {
		status := "charged"
		if delta < 0 {
			status = "discharged"
		}
		r.field(sb, "Change", fmt.Sprintf("%.1f%% (%s)", math.Abs(delta), status))
	}
	r.field(sb, "Power Plugged", arrow(yesNo(o.PowerPlugged), yesNo(n.PowerPlugged)))
}

func (r *Renderer) compareSecurity(sb *strings.Builder, old, new *snapshot.Snapshot) {
	r.subtitle(sb, "Security Status Changes")

	o, n := old.Security, new.Security
	r.field(sb, "Security Score", arrow(fmt.Sprintf("%d/100", o.Score), fmt.Sprintf("%d/100", n.Score)))

	if delta := n.Score - o.Score; delta != 0 {
		status := "improved"
		if delta < 0 {
			status = "declined"
		}
		r.field(sb, "Change", fmt.Sprintf("%d points (%s)", abs(delta), status))
	}
	r.field(sb, "Open Ports", arrow(fmt.Sprintf("%d", len(o.OpenPorts)), fmt.Sprintf("%d", len(n.OpenPorts))))
}

// RenderExecutiveSummary condenses the diff into a short numbered list of
// key changes.
func (r *Renderer) RenderExecutiveSummary(old, new *snapshot.Snapshot, diff snapshot.Diff) string {
	var sb strings.Builder
	r.title(&sb, "EXECUTIVE SUMMARY")

	points := keyChanges(old, new, diff)
	if len(diff) == 0 || len(points) == 0 {
		sb.WriteString("  System status remains stable with no significant changes.\n")
		return sb.String()
	}

	sb.WriteString("  Key Changes:\n")
	for i, point := range points {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, point))
	}
	return sb.String()
}

// keyChanges extracts headline movements, filtering out noise below the
// reporting thresholds.
func keyChanges(old, new *snapshot.Snapshot, diff snapshot.Diff) []string {
	var points []string

	if diff.Has(snapshot.KeyCPU) && old.CPU != nil && new.CPU != nil {
		delta := new.CPU.Percent - old.CPU.Percent
		if math.Abs(delta) > 5 {
			points = append(points, fmt.Sprintf("CPU usage %s by %.1f%%", trend(delta), math.Abs(delta)))
		}
	}

	if diff.Has(snapshot.KeyMemory) && old.Memory != nil && new.Memory != nil {
		deltaUsed := new.Memory.UsedGB() - old.Memory.UsedGB()
		deltaPercent := new.Memory.Percent - old.Memory.Percent
		if math.Abs(deltaPercent) > 5 {
			points = append(points, fmt.Sprintf("Memory usage %s by %.2f GB (%.1f%%)",
				trend(deltaPercent), math.Abs(deltaUsed), math.Abs(deltaPercent)))
		}
	}

	if diff.Has(snapshot.KeyDisk) && old.Disk != nil && new.Disk != nil {
		var totalDelta float64
		for _, d := range new.Disk {
			totalDelta += d.UsedGB()
		}
		for _, d := range old.Disk {
			totalDelta -= d.UsedGB()
		}
		if math.Abs(totalDelta) > 1 {
			points = append(points, fmt.Sprintf("Total disk usage %s by %.2f GB", trend(totalDelta), math.Abs(totalDelta)))
		}
	}

	if diff.Has(snapshot.KeyBattery) && old.Battery != nil && new.Battery != nil {
		delta := new.Battery.Percent - old.Battery.Percent
		if math.Abs(delta) > 10 {
			status := "charged"
			if delta < 0 {
				status = "discharged"
			}
			points = append(points, fmt.Sprintf("Battery %s by %.1f%%", status, math.Abs(delta)))
		}
	}

	if diff.Has(snapshot.KeySecurity) && old.Security != nil && new.Security != nil {
		if delta := new.Security.Score - old.Security.Score; delta != 0 {
			status := "improved"
			if delta < 0 {
				status = "declined"
			}
			points = append(points, fmt.Sprintf("Security score %s by %d points", status, abs(delta)))
		}
	}

	return points
}

// arrow joins an old and new value with the change arrow.
func arrow(old, new string) string {
	return old + " " + ui.SymbolArrow + " " + new
}

func trend(delta float64) string {
	if delta > 0 {
		return "increased"
	}
	if delta < 0 {
		return "decreased"
	}
	return "unchanged"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
