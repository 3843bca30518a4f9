// Package insight classifies snapshot diffs into operator-facing
// warnings, recommendations, and positive changes using fixed
// thresholds.
package insight

import (
	"fmt"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
)

// Insights is the classification result. Warnings flag degradations and
// concerning absolute levels, recommendations suggest follow-up actions,
// and positives call out improvements.
type Insights struct {
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
	Positives       []string `json:"positives"`
}

// Empty reports whether classification found nothing noteworthy.
func (in Insights) Empty() bool {
	return len(in.Warnings) == 0 && len(in.Recommendations) == 0 && len(in.Positives) == 0
}

// Classify walks a diff and applies the per-metric thresholds.
func Classify(diff snapshot.Diff) Insights {
	var in Insights

	classifyCPU(diff, &in)
	classifyMemory(diff, &in)
	classifyDisk(diff, &in)
	classifyBattery(diff, &in)
	classifySecurity(diff, &in)

	in.Recommendations = dedupe(in.Recommendations)
	return in
}

func classifyCPU(diff snapshot.Diff, in *Insights) {
	change, ok := diff[snapshot.KeyCPU]
	if !ok {
		return
	}
	newCPU, ok := change.New.(metrics.CPUSample)
	if !ok {
		return
	}

	if oldCPU, ok := change.Old.(metrics.CPUSample); ok {
		delta := newCPU.Percent - oldCPU.Percent
		if delta > 10 {
			in.Warnings = append(in.Warnings,
				fmt.Sprintf("CPU usage increased by %.1f%%", delta))
		} else if delta < -10 {
			in.Positives = append(in.Positives,
				fmt.Sprintf("CPU usage decreased by %.1f%%", -delta))
		}
	}

	if newCPU.Percent > 80 {
		in.Warnings = append(in.Warnings,
			fmt.Sprintf("High CPU usage (%.1f%%)", newCPU.Percent))
		in.Recommendations = append(in.Recommendations,
			"High CPU usage detected. Consider closing unnecessary applications.")
	}
}

func classifyMemory(diff snapshot.Diff, in *Insights) {
	change, ok := diff[snapshot.KeyMemory]
	if !ok {
		return
	}
	newMem, ok := change.New.(metrics.MemorySample)
	if !ok {
		return
	}

	if oldMem, ok := change.Old.(metrics.MemorySample); ok {
		delta := newMem.Percent - oldMem.Percent
		if delta > 10 {
			in.Warnings = append(in.Warnings,
				fmt.Sprintf("Memory usage increased by %.1f%%", delta))
		} else if delta < -10 {
			in.Positives = append(in.Positives,
				fmt.Sprintf("Memory usage decreased by %.1f%%", -delta))
		}
	}

	if newMem.Percent > 85 {
		in.Warnings = append(in.Warnings,
			fmt.Sprintf("Critical memory usage (%.1f%%)", newMem.Percent))
		in.Recommendations = append(in.Recommendations,
			"Memory usage is high. Consider upgrading RAM or closing applications.")
	}
}

// classifyDisk compares mounts positionally by list index, so a changed
// mount order between snapshots misattributes deltas. Kept as-is for
// behavioral parity with existing reports; keying by mountpoint would
// change observable output.
func classifyDisk(diff snapshot.Diff, in *Insights) {
	change, ok := diff[snapshot.KeyDisk]
	if !ok {
		return
	}
	newDisks, ok := change.New.([]metrics.DiskSample)
	if !ok {
		return
	}
	oldDisks, _ := change.Old.([]metrics.DiskSample)

	for i, d := range newDisks {
		if i < len(oldDisks) {
			deltaGB := d.UsedGB() - oldDisks[i].UsedGB()
			if deltaGB > 5 {
				in.Warnings = append(in.Warnings,
					fmt.Sprintf("Disk %s used space grew by %.2f GB", d.Mountpoint, deltaGB))
			}
		}

		if d.Percent > 85 {
			in.Warnings = append(in.Warnings,
				fmt.Sprintf("Disk %s is nearly full (%.1f%%)", d.Mountpoint, d.Percent))
			in.Recommendations = append(in.Recommendations,
				fmt.Sprintf("Disk %s is running low on space. Clean up files.", d.Mountpoint))
		}
	}
}

func classifyBattery(diff snapshot.Diff, in *Insights) {
	change, ok := diff[snapshot.KeyBattery]
	if !ok {
		return
	}
	newBat, ok := change.New.(metrics.BatterySample)
	if !ok {
		return
	}

	if oldBat, ok := change.Old.(metrics.BatterySample); ok {
		delta := newBat.Percent - oldBat.Percent
		if delta > 10 {
			in.Positives = append(in.Positives,
				fmt.Sprintf("Battery charged by %.1f%%", delta))
		} else if delta < -10 {
			in.Warnings = append(in.Warnings,
				fmt.Sprintf("Battery discharged by %.1f%%", -delta))
		}
	}

	if newBat.Present && newBat.Percent < 20 {
		in.Warnings = append(in.Warnings,
			fmt.Sprintf("Battery level is low (%.1f%%)", newBat.Percent))
		in.Recommendations = append(in.Recommendations,
			"Connect to a power source soon.")
	}
}

// classifySecurity reports any score movement; there is no magnitude
// threshold for security.
func classifySecurity(diff snapshot.Diff, in *Insights) {
	change, ok := diff[snapshot.KeySecurity]
	if !ok {
		return
	}
	newSec, ok := change.New.(metrics.SecuritySample)
	if !ok {
		return
	}
	oldSec, ok := change.Old.(metrics.SecuritySample)
	if !ok {
		return
	}

	delta := newSec.Score - oldSec.Score
	switch {
	case delta > 0:
		in.Positives = append(in.Positives,
			fmt.Sprintf("Security score improved by %d points", delta))
	case delta < 0:
		in.Warnings = append(in.Warnings,
			fmt.Sprintf("Security score declined by %d points", -delta))
	}
}

// dedupe removes repeated strings, keeping first occurrences in order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
