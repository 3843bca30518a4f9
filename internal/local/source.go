// Package local collects metrics from the machine the process runs on.
// It mirrors the remote collection path section for section, so snapshot
// consumers cannot tell the two apart.
package local

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/rate"
)

// sampleInterval is how long CPU usage probes observe before reporting.
const sampleInterval = 100 * time.Millisecond

// maxProcesses caps the process list, matching the remote probe's
// head-style truncation.
const maxProcesses = 100

// Source reads metrics from in-process syscalls. It satisfies
// metrics.Source plus the per-core and device capabilities.
type Source struct {
	rates *rate.Tracker
}

// NewSource creates a local metric source.
func NewSource() *Source {
	return &Source{rates: rate.NewTracker()}
}

// ResetRates clears the throughput baseline.
func (s *Source) ResetRates() {
	s.rates.Reset()
}

// CPU returns overall CPU usage.
func (s *Source) CPU() (metrics.CPUSample, error) {
	percents, err := cpu.Percent(sampleInterval, false)
	if err != nil {
		return metrics.CPUSample{}, err
	}
	if len(percents) == 0 {
		return metrics.CPUSample{}, nil
	}
	return metrics.CPUSample{Percent: percents[0]}, nil
}

// CPUPerCore returns usage per logical core.
func (s *Source) CPUPerCore() ([]float64, error) {
	return cpu.Percent(sampleInterval, true)
}

// Memory returns RAM usage.
func (s *Source) Memory() (metrics.MemorySample, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return metrics.MemorySample{}, err
	}
	return metrics.MemorySample{
		TotalBytes:     vm.Total,
		UsedBytes:      vm.Used,
		AvailableBytes: vm.Available,
		Percent:        vm.UsedPercent,
	}, nil
}

// Disks returns usage for every mounted partition. Partitions whose
// usage can't be read (permission, stale mounts) are skipped.
func (s *Source) Disks() ([]metrics.DiskSample, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	disks := []metrics.DiskSample{}
	for _, p := range partitions {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}
		disks = append(disks, metrics.DiskSample{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			TotalBytes: usage.Total,
			UsedBytes:  usage.Used,
			FreeBytes:  usage.Free,
			Percent:    usage.UsedPercent,
		})
	}
	return disks, nil
}

// Network returns cumulative traffic counters summed across interfaces,
// plus throughput derived from the previous observation.
func (s *Source) Network() (metrics.NetworkSample, error) {
	counters, err := gopsnet.IOCounters(false)
	if err != nil {
		return metrics.NetworkSample{}, err
	}

	var sent, recv uint64
	for _, c := range counters {
		sent += c.BytesSent
		recv += c.BytesRecv
	}

	rates := s.rates.Observe(sent, recv, time.Now())
	return metrics.NetworkSample{
		BytesSent:   sent,
		BytesRecv:   recv,
		UploadBps:   rates.UploadBps,
		DownloadBps: rates.DownloadBps,
	}, nil
}

// Processes returns up to 100 running processes. Processes that vanish
// or deny access mid-read are skipped.
func (s *Source) Processes() ([]metrics.ProcessSample, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	samples := []metrics.ProcessSample{}
	for _, p := range procs {
		if len(samples) >= maxProcesses {
			break
		}

		name, err := p.Name()
		if err != nil {
			continue
		}

		cpuPct, err := p.CPUPercent()
		if err != nil {
			cpuPct = 0
		}
		memPct, err := p.MemoryPercent()
		if err != nil {
			memPct = 0
		}

		status := "unknown"
		if st, err := p.Status(); err == nil && len(st) > 0 {
			status = st[0]
		}

		samples = append(samples, metrics.ProcessSample{
			PID:        int(p.Pid),
			Name:       name,
			CPUPercent: cpuPct,
			MemPercent: float64(memPct),
			Status:     status,
		})
	}
	return samples, nil
}

// SystemInfo identifies the local host.
func (s *Source) SystemInfo() (metrics.SystemInfoSample, error) {
	info, err := host.Info()
	if err != nil {
		return metrics.SystemInfoSample{}, err
	}

	physical, err := cpu.Counts(false)
	if err != nil {
		physical = 0
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		logical = 0
	}

	bootTime := time.Unix(int64(info.BootTime), 0).Format("2006-01-02 15:04:05")

	return metrics.SystemInfoSample{
		OS:               info.Platform,
		Version:          info.PlatformVersion,
		Arch:             info.KernelArch,
		Hostname:         info.Hostname,
		BootTime:         bootTime,
		CPUCountPhysical: physical,
		CPUCountLogical:  logical,
	}, nil
}

// KillProcess terminates a local process by PID.
func (s *Source) KillProcess(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Process %d not found", pid), "")
	}
	if err := p.Terminate(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Failed to terminate process %d", pid),
			"You may need elevated privileges to terminate this process.")
	}
	return nil
}
