package remote

import (
	"strconv"
	"strings"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Parsers are tolerant by contract: malformed lines and fields are
// skipped, and output that parses to nothing yields a zero sample.
// Partial telemetry never aborts a snapshot.

// ParseCPU extracts the overall CPU percentage from probe output.
func ParseCPU(raw string) metrics.CPUSample {
	percent, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return metrics.CPUSample{}
	}
	return metrics.CPUSample{Percent: percent}
}

// ParseMemory reads up to four whitespace-separated byte counts
// (total, used, available, extra). Missing trailing fields fall back
// the same way on every platform: used defaults to 0, available to
// total minus used.
func ParseMemory(raw string) metrics.MemorySample {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return metrics.MemorySample{}
	}

	total, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return metrics.MemorySample{}
	}

	var used uint64
	if len(fields) > 1 {
		used, _ = strconv.ParseUint(fields[1], 10, 64)
	}

	var available uint64
	if total >= used {
		available = total - used
	}
	if len(fields) > 2 {
		if v, err := strconv.ParseUint(fields[2], 10, 64); err == nil {
			available = v
		}
	}

	var percent float64
	if total > 0 {
		percent = float64(used) / float64(total) * 100
	}

	return metrics.MemorySample{
		TotalBytes:     total,
		UsedBytes:      used,
		AvailableBytes: available,
		Percent:        percent,
	}
}

// ParseDisks reads one filesystem per line: device, mountpoint, total,
// used, free, percent (with optional % suffix). Short or malformed
// lines are skipped. The probe doesn't report filesystem types.
func ParseDisks(raw string) []metrics.DiskSample {
	disks := []metrics.DiskSample{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}

		total, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			continue
		}
		used, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			continue
		}
		free, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[5], "%"), 64)
		if err != nil {
			continue
		}

		disks = append(disks, metrics.DiskSample{
			Device:     fields[0],
			Mountpoint: fields[1],
			Fstype:     "unknown",
			TotalBytes: total,
			UsedBytes:  used,
			FreeBytes:  free,
			Percent:    percent,
		})
	}
	return disks
}

// ParseNetworkCounters reads two cumulative byte counters, received
// then sent. ok is false when the output doesn't carry both.
func ParseNetworkCounters(raw string) (recv, sent uint64, ok bool) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return 0, 0, false
	}
	recv, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	sent, err = strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return recv, sent, true
}

// ParseProcesses reads one process per line: pid, name, cpu%, mem%,
// status. Non-numeric cpu/mem tokens coerce to zero rather than
// dropping the line; a missing status defaults to "unknown". Length is
// already capped at 100 lines by the probe itself.
func ParseProcesses(raw string) []metrics.ProcessSample {
	procs := []metrics.ProcessSample{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			cpu = 0
		}
		mem, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			mem = 0
		}

		status := "unknown"
		if len(fields) > 4 {
			status = fields[4]
		}

		procs = append(procs, metrics.ProcessSample{
			PID:        pid,
			Name:       fields[1],
			CPUPercent: cpu,
			MemPercent: mem,
			Status:     status,
		})
	}
	return procs
}

// parseText returns the trimmed probe output, or fallback when it was
// empty.
func parseText(raw, fallback string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return fallback
}

// parseCount converts a core-count probe to an int, defaulting to 0.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
