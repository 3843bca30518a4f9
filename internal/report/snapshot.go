package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

// maxProcessRows caps the process table in the rendered report.
const maxProcessRows = 10

// RenderSnapshot formats the current state of every section present in
// the snapshot. Absent sections are skipped.
func (r *Renderer) RenderSnapshot(s *snapshot.Snapshot) string {
	if s == nil {
		return ""
	}

	var sb strings.Builder

	if s.System != nil {
		r.renderSystem(&sb, s.System)
	}
	if s.CPU != nil || s.Memory != nil {
		r.renderCPUMemory(&sb, s)
	}
	if s.Disk != nil {
		r.renderDisks(&sb, s.Disk)
	}
	if s.Network != nil {
		r.renderNetwork(&sb, s.Network)
	}
	if s.Processes != nil {
		r.renderProcesses(&sb, s.Processes)
	}
	if s.Devices != nil {
		r.renderDevices(&sb, s.Devices)
	}
	if s.GPU != nil || s.Battery != nil || s.Temperature != nil {
		r.renderResources(&sb, s)
	}
	if s.Security != nil {
		r.renderSecurity(&sb, s.Security)
	}

	return sb.String()
}

func (r *Renderer) renderSystem(sb *strings.Builder, sys *metrics.SystemInfoSample) {
	r.title(sb, "SYSTEM INFORMATION")
	r.field(sb, "OS", strings.TrimSpace(sys.OS+" "+sys.Version))
	r.field(sb, "Architecture", sys.Arch)
	r.field(sb, "Hostname", sys.Hostname)
	r.field(sb, "Boot Time", sys.BootTime)
	r.field(sb, "CPU Cores", fmt.Sprintf("%d physical, %d logical", sys.CPUCountPhysical, sys.CPUCountLogical))
}

func (r *Renderer) renderCPUMemory(sb *strings.Builder, s *snapshot.Snapshot) {
	r.title(sb, "CPU & MEMORY")
	if s.CPU != nil {
		r.field(sb, "CPU Usage", r.coloredPercent(s.CPU.Percent, 80))
	}
	if len(s.CPUPerCore) > 0 {
		cores := make([]string, len(s.CPUPerCore))
		for i, c := range s.CPUPerCore {
			cores[i] = fmtPct(c)
		}
		r.field(sb, "Per Core", strings.Join(cores, "  "))
	}
	if m := s.Memory; m != nil {
		r.field(sb, "Memory Usage", r.coloredPercent(m.Percent, 85))
		r.field(sb, "Memory", fmt.Sprintf("%s used of %s (%s available)",
			fmtGB(m.UsedGB()), fmtGB(m.TotalGB()), fmtGB(m.AvailableGB())))
	}
}

func (r *Renderer) renderDisks(sb *strings.Builder, disks []metrics.DiskSample) {
	r.title(sb, "DISK USAGE")
	if len(disks) == 0 {
		sb.WriteString("  " + r.mutedStyle.Render("No disks detected") + "\n")
		return
	}

	cols := []ui.TableColumn{
		{Title: "MOUNT", Width: 18},
		{Title: "TYPE", Width: 8},
		{Title: "USED", Width: 12},
		{Title: "FREE", Width: 12},
		{Title: "USAGE", Width: 7},
	}
	rows := make([][]string, len(disks))
	for i, d := range disks {
		rows[i] = []string{
			d.Mountpoint,
			d.Fstype,
			fmtGB(d.UsedGB()),
			fmtGB(d.FreeGB()),
			fmtPct(d.Percent),
		}
	}
	sb.WriteString(indent(ui.RenderSimpleTable(cols, rows)))
}

func (r *Renderer) renderNetwork(sb *strings.Builder, n *metrics.NetworkSample) {
	r.title(sb, "NETWORK")
	r.field(sb, "Bytes Sent", strconv.FormatUint(n.BytesSent, 10))
	r.field(sb, "Bytes Received", strconv.FormatUint(n.BytesRecv, 10))
	r.field(sb, "Upload Speed", fmt.Sprintf("%.0f B/s", n.UploadBps))
	r.field(sb, "Download Speed", fmt.Sprintf("%.0f B/s", n.DownloadBps))
}

func (r *Renderer) renderProcesses(sb *strings.Builder, procs []metrics.ProcessSample) {
	r.title(sb, "TOP PROCESSES")
	if len(procs) == 0 {
		sb.WriteString("  " + r.mutedStyle.Render("No processes reported") + "\n")
		return
	}

	sorted := make([]metrics.ProcessSample, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CPUPercent > sorted[j].CPUPercent
	})
	if len(sorted) > maxProcessRows {
		sorted = sorted[:maxProcessRows]
	}

	cols := []ui.TableColumn{
		{Title: "PID", Width: 7},
		{Title: "NAME", Width: 22},
		{Title: "CPU", Width: 7},
		{Title: "MEM", Width: 7},
		{Title: "STATUS", Width: 10},
	}
	rows := make([][]string, len(sorted))
	for i, p := range sorted {
		rows[i] = []string{
			strconv.Itoa(p.PID),
			p.Name,
			fmtPct(p.CPUPercent),
			fmtPct(p.MemPercent),
			p.Status,
		}
	}
	sb.WriteString(indent(ui.RenderSimpleTable(cols, rows)))
}

func (r *Renderer) renderDevices(sb *strings.Builder, devices []metrics.DeviceSample) {
	r.title(sb, "CONNECTED DEVICES")
	if len(devices) == 0 {
		sb.WriteString("  " + r.mutedStyle.Render("No devices detected") + "\n")
		return
	}
	for _, d := range devices {
		r.field(sb, "Device", d.Device)
		r.field(sb, "  Mount Point", d.Mountpoint)
		r.field(sb, "  Type", d.Fstype)
		r.field(sb, "  Used", fmt.Sprintf("%s of %s (%s)",
			fmtGB(float64(d.UsedBytes)/(1<<30)), fmtGB(float64(d.TotalBytes)/(1<<30)), fmtPct(d.Percent)))
		r.field(sb, "  Removable", yesNo(d.Removable))
	}
}

func (r *Renderer) renderResources(sb *strings.Builder, s *snapshot.Snapshot) {
	r.title(sb, "ADVANCED RESOURCES")

	for _, g := range s.GPU {
		r.field(sb, fmt.Sprintf("GPU #%d", g.ID), g.Name)
		if g.MemoryTotalMB > 0 {
			r.field(sb, "  Load", fmtPct(g.LoadPercent))
			r.field(sb, "  Memory", fmt.Sprintf("%.0f MB / %.0f MB (%s)",
				g.MemoryUsedMB, g.MemoryTotalMB, fmtPct(g.MemoryPercent)))
			r.field(sb, "  Temperature", fmt.Sprintf("%.1f C", g.Temperature))
		}
	}

	if b := s.Battery; b != nil {
		if b.Present {
			status := "On Battery"
			if b.PowerPlugged {
				status = "Plugged In"
			}
			r.field(sb, "Battery Level", fmtPct(b.Percent))
			r.field(sb, "Power Status", status)
			r.field(sb, "Time Remaining", b.TimeLeft)
		} else {
			r.field(sb, "Battery", "No battery detected (Desktop system)")
		}
	}

	for _, t := range s.Temperature {
		label := t.Sensor
		if t.Label != "" {
			label += " - " + t.Label
		}
		value := fmt.Sprintf("%.1f C", t.Current)
		if t.High > 0 {
			value += fmt.Sprintf(" (High: %.1f C, Critical: %.1f C)", t.High, t.Critical)
		}
		r.field(sb, label, value)
	}
}

func (r *Renderer) renderSecurity(sb *strings.Builder, sec *metrics.SecuritySample) {
	r.title(sb, "SECURITY OVERVIEW")

	r.field(sb, "Security Score", r.coloredScore(sec.Score))
	switch {
	case sec.Score >= 80:
		r.field(sb, "Status", r.successStyle.Render("EXCELLENT SECURITY"))
	case sec.Score >= 60:
		r.field(sb, "Status", r.warnStyle.Render("GOOD SECURITY (Some improvements needed)"))
	default:
		r.field(sb, "Status", r.errorStyle.Render("POOR SECURITY (Immediate action required)"))
	}

	suspicious := 0
	for _, p := range sec.OpenPorts {
		if p.Suspicious {
			suspicious++
		}
	}
	r.field(sb, "Open Ports", strconv.Itoa(len(sec.OpenPorts)))
	if suspicious > 0 {
		r.field(sb, "Suspicious Ports", r.errorStyle.Render(strconv.Itoa(suspicious)))
	}
	r.field(sb, "Firewall", sec.Firewall.Status)
	if sec.Firewall.Details != "" {
		r.field(sb, "Firewall Details", sec.Firewall.Details)
	}

	if len(sec.Warnings) > 0 {
		r.subtitle(sb, "Warnings")
		for _, w := range sec.Warnings {
			sb.WriteString("  " + r.warnStyle.Render(ui.SymbolWarning+" "+w) + "\n")
		}
	}
	if len(sec.Recommendations) > 0 {
		r.subtitle(sb, "Recommendations")
		for _, rec := range sec.Recommendations {
			sb.WriteString("  " + ui.SymbolBullet + " " + rec + "\n")
		}
	}
}

// coloredPercent renders a percentage, highlighting values above the
// threshold in the error color.
func (r *Renderer) coloredPercent(v, threshold float64) string {
	if v > threshold {
		return r.errorStyle.Render(fmtPct(v))
	}
	return fmtPct(v)
}

func (r *Renderer) coloredScore(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return r.successStyle.Render(text)
	case score >= 60:
		return r.warnStyle.Render(text)
	default:
		return r.errorStyle.Render(text)
	}
}

// indent prefixes every non-empty line with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
