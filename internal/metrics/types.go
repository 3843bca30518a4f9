// Package metrics defines the sample data model shared by the local and
// remote collection paths, and the capability interfaces consumers depend on.
package metrics

const bytesPerGB = 1024 * 1024 * 1024

// CPUSample holds an overall CPU usage observation.
type CPUSample struct {
	Percent float64 `json:"percent"`
}

// MemorySample holds RAM usage in bytes plus the derived percentage.
type MemorySample struct {
	TotalBytes     uint64  `json:"total"`
	UsedBytes      uint64  `json:"used"`
	AvailableBytes uint64  `json:"available"`
	Percent        float64 `json:"percent"`
}

// UsedGB returns used memory in gigabytes.
func (m MemorySample) UsedGB() float64 {
	return float64(m.UsedBytes) / bytesPerGB
}

// TotalGB returns total memory in gigabytes.
func (m MemorySample) TotalGB() float64 {
	return float64(m.TotalBytes) / bytesPerGB
}

// AvailableGB returns available memory in gigabytes.
func (m MemorySample) AvailableGB() float64 {
	return float64(m.AvailableBytes) / bytesPerGB
}

// DiskSample holds usage for a single partition/mount.
type DiskSample struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	TotalBytes uint64  `json:"total"`
	UsedBytes  uint64  `json:"used"`
	FreeBytes  uint64  `json:"free"`
	Percent    float64 `json:"percent"`
}

// UsedGB returns used disk space in gigabytes.
func (d DiskSample) UsedGB() float64 {
	return float64(d.UsedBytes) / bytesPerGB
}

// FreeGB returns free disk space in gigabytes.
func (d DiskSample) FreeGB() float64 {
	return float64(d.FreeBytes) / bytesPerGB
}

// TotalGB returns total disk space in gigabytes.
func (d DiskSample) TotalGB() float64 {
	return float64(d.TotalBytes) / bytesPerGB
}

// NetworkSample holds cumulative traffic counters plus the instantaneous
// rates derived from the previous observation.
type NetworkSample struct {
	BytesSent   uint64  `json:"bytes_sent"`
	BytesRecv   uint64  `json:"bytes_recv"`
	UploadBps   float64 `json:"upload_speed"`
	DownloadBps float64 `json:"download_speed"`
}

// ProcessSample holds one running process observation.
type ProcessSample struct {
	PID        int     `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"memory_percent"`
	Status     string  `json:"status"`
}

// SystemInfoSample holds general host identification.
type SystemInfoSample struct {
	OS               string `json:"os"`
	Version          string `json:"os_version"`
	Arch             string `json:"architecture"`
	Hostname         string `json:"hostname"`
	BootTime         string `json:"boot_time"`
	CPUCountPhysical int    `json:"cpu_count"`
	CPUCountLogical  int    `json:"cpu_count_logical"`
}

// GPUSample holds one GPU device observation.
type GPUSample struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LoadPercent   float64 `json:"load"`
	MemoryUsedMB  float64 `json:"memory_used"`
	MemoryTotalMB float64 `json:"memory_total"`
	MemoryPercent float64 `json:"memory_percent"`
	Temperature   float64 `json:"temperature"`
}

// BatterySample holds battery state. Present is false on hosts without one.
type BatterySample struct {
	Present      bool    `json:"present"`
	Percent      float64 `json:"percent"`
	PowerPlugged bool    `json:"power_plugged"`
	TimeLeft     string  `json:"time_left"`
}

// TemperatureSample holds one temperature sensor reading.
type TemperatureSample struct {
	Sensor   string  `json:"sensor"`
	Label    string  `json:"label"`
	Current  float64 `json:"current"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
}

// DeviceSample holds usage for a connected storage device, including
// whether it looks removable (USB stick, external drive).
type DeviceSample struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	TotalBytes uint64  `json:"total"`
	UsedBytes  uint64  `json:"used"`
	FreeBytes  uint64  `json:"free"`
	Percent    float64 `json:"percent"`
	Removable  bool    `json:"removable"`
}

// PortInfo describes one open listening port found by the security scan.
type PortInfo struct {
	Port       int    `json:"port"`
	Address    string `json:"address"`
	PID        int    `json:"pid"`
	Process    string `json:"process"`
	Suspicious bool   `json:"suspicious"`
}

// SuspiciousProcess describes a process flagged by the security scan.
type SuspiciousProcess struct {
	PID    int     `json:"pid"`
	Name   string  `json:"name"`
	User   string  `json:"user"`
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Reason string  `json:"reason"`
}

// FirewallStatus describes the detected firewall state.
type FirewallStatus struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

// SecuritySample holds one security scan result, treated downstream as an
// opaque extra snapshot section.
type SecuritySample struct {
	Timestamp           string              `json:"timestamp"`
	Score               int                 `json:"security_score"`
	OpenPorts           []PortInfo          `json:"open_ports"`
	SuspiciousProcesses []SuspiciousProcess `json:"suspicious_processes"`
	Firewall            FirewallStatus      `json:"firewall_status"`
	Warnings            []string            `json:"warnings"`
	Recommendations     []string            `json:"recommendations"`
}
