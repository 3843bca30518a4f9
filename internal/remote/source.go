package remote

import (
	"time"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/rate"
)

// Source collects metrics from the host behind an executor's session.
// It satisfies metrics.Source, so everything downstream of collection
// is oblivious to whether samples came over the wire or from local
// syscalls.
//
// Probes run sequentially over the single session. Connection errors
// propagate; empty or garbled probe output degrades to zero samples via
// the parsers.
type Source struct {
	exec  *Executor
	rates *rate.Tracker
}

// NewSource creates a remote metric source over exec.
func NewSource(exec *Executor) *Source {
	return &Source{
		exec:  exec,
		rates: rate.NewTracker(),
	}
}

// ResetRates clears the throughput baseline. Call after reconnecting or
// switching hosts so the first sample against the new counters doesn't
// produce a bogus rate spike.
func (s *Source) ResetRates() {
	s.rates.Reset()
}

// CPU returns overall CPU usage.
func (s *Source) CPU() (metrics.CPUSample, error) {
	out, err := s.exec.Execute(cpuCommand)
	if err != nil {
		return metrics.CPUSample{}, err
	}
	return ParseCPU(out), nil
}

// Memory returns RAM usage.
func (s *Source) Memory() (metrics.MemorySample, error) {
	out, err := s.exec.Execute(memoryCommand)
	if err != nil {
		return metrics.MemorySample{}, err
	}
	return ParseMemory(out), nil
}

// Disks returns per-filesystem usage.
func (s *Source) Disks() ([]metrics.DiskSample, error) {
	out, err := s.exec.Execute(diskCommand)
	if err != nil {
		return nil, err
	}
	return ParseDisks(out), nil
}

// Network returns cumulative traffic counters plus throughput derived
// from the previous observation.
func (s *Source) Network() (metrics.NetworkSample, error) {
	out, err := s.exec.Execute(networkCommand)
	if err != nil {
		return metrics.NetworkSample{}, err
	}

	recv, sent, ok := ParseNetworkCounters(out)
	if !ok {
		return metrics.NetworkSample{}, nil
	}

	rates := s.rates.Observe(sent, recv, time.Now())
	return metrics.NetworkSample{
		BytesSent:   sent,
		BytesRecv:   recv,
		UploadBps:   rates.UploadBps,
		DownloadBps: rates.DownloadBps,
	}, nil
}

// Processes returns up to 100 running processes.
func (s *Source) Processes() ([]metrics.ProcessSample, error) {
	out, err := s.exec.Execute(processCommand)
	if err != nil {
		return nil, err
	}
	return ParseProcesses(out), nil
}

// SystemInfo identifies the remote host. Each field is its own probe
// and defaults independently, so one missing tool doesn't blank the
// whole section.
func (s *Source) SystemInfo() (metrics.SystemInfoSample, error) {
	info := metrics.SystemInfoSample{}

	probe := func(cmd, fallback string) (string, error) {
		out, err := s.exec.Execute(cmd)
		if err != nil {
			if errors.IsConnectionError(err) {
				return "", err
			}
			return fallback, nil
		}
		return parseText(out, fallback), nil
	}

	var err error
	if info.OS, err = probe(osCommand, "Unknown"); err != nil {
		return metrics.SystemInfoSample{}, err
	}
	if info.Version, err = probe(versionCommand, "Unknown"); err != nil {
		return metrics.SystemInfoSample{}, err
	}
	if info.Arch, err = probe(archCommand, "Unknown"); err != nil {
		return metrics.SystemInfoSample{}, err
	}
	if info.Hostname, err = probe(hostnameCommand, "Unknown"); err != nil {
		return metrics.SystemInfoSample{}, err
	}
	if info.BootTime, err = probe(bootTimeCommand, "Unknown"); err != nil {
		return metrics.SystemInfoSample{}, err
	}

	count, err := probe(cpuCountCommand, "")
	if err != nil {
		return metrics.SystemInfoSample{}, err
	}
	info.CPUCountPhysical = parseCount(count)
	info.CPUCountLogical = info.CPUCountPhysical

	return info, nil
}
