// Package snapshot builds, persists, and compares point-in-time system
// snapshots. A snapshot is the unit the diff engine, insight classifier,
// and report renderer all consume.
package snapshot

import (
	"time"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Section keys. Consumers look diffs up by these names.
const (
	KeyCPU         = "cpu"
	KeyCPUPerCore  = "cpu_per_core"
	KeyMemory      = "memory"
	KeyDisk        = "disk"
	KeyNetwork     = "network"
	KeyProcesses   = "processes"
	KeySystem      = "system"
	KeyDevices     = "devices"
	KeyGPU         = "gpu"
	KeyBattery     = "battery"
	KeyTemperature = "temperature"
	KeySecurity    = "security"
)

// Snapshot is an immutable point-in-time record of all collected metric
// sections. Pointer and slice fields that are nil mark sections the
// producing collector did not supply (e.g. battery on the remote path);
// a non-nil zero value means "collected, but empty or unmeasurable".
type Snapshot struct {
	Timestamp   time.Time                   `json:"timestamp"`
	CPU         *metrics.CPUSample          `json:"cpu,omitempty"`
	CPUPerCore  []float64                   `json:"cpu_per_core,omitempty"`
	Memory      *metrics.MemorySample       `json:"memory,omitempty"`
	Disk        []metrics.DiskSample        `json:"disk,omitempty"`
	Network     *metrics.NetworkSample      `json:"network,omitempty"`
	Processes   []metrics.ProcessSample     `json:"processes,omitempty"`
	System      *metrics.SystemInfoSample   `json:"system,omitempty"`
	Devices     []metrics.DeviceSample      `json:"devices,omitempty"`
	GPU         []metrics.GPUSample         `json:"gpu,omitempty"`
	Battery     *metrics.BatterySample      `json:"battery,omitempty"`
	Temperature []metrics.TemperatureSample `json:"temperature,omitempty"`
	Security    *metrics.SecuritySample     `json:"security,omitempty"`
}

// Sections returns the present sections keyed by name. The timestamp is
// snapshot metadata, not a section, so two snapshots taken at different
// times but with identical values compare as equal.
func (s *Snapshot) Sections() map[string]interface{} {
	out := make(map[string]interface{})
	if s == nil {
		return out
	}
	if s.CPU != nil {
		out[KeyCPU] = *s.CPU
	}
	if s.CPUPerCore != nil {
		out[KeyCPUPerCore] = s.CPUPerCore
	}
	if s.Memory != nil {
		out[KeyMemory] = *s.Memory
	}
	if s.Disk != nil {
		out[KeyDisk] = s.Disk
	}
	if s.Network != nil {
		out[KeyNetwork] = *s.Network
	}
	if s.Processes != nil {
		out[KeyProcesses] = s.Processes
	}
	if s.System != nil {
		out[KeySystem] = *s.System
	}
	if s.Devices != nil {
		out[KeyDevices] = s.Devices
	}
	if s.GPU != nil {
		out[KeyGPU] = s.GPU
	}
	if s.Battery != nil {
		out[KeyBattery] = *s.Battery
	}
	if s.Temperature != nil {
		out[KeyTemperature] = s.Temperature
	}
	if s.Security != nil {
		out[KeySecurity] = *s.Security
	}
	return out
}
