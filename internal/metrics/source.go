package metrics

// Source supplies the core metric set. The local (in-process) and remote
// (SSH) collection paths both implement it, so consumers are oblivious
// to which backend produced the data.
type Source interface {
	// CPU returns the overall CPU usage sample.
	CPU() (CPUSample, error)

	// Memory returns RAM usage.
	Memory() (MemorySample, error)

	// Disks returns usage for every visible partition.
	Disks() ([]DiskSample, error)

	// Network returns cumulative traffic counters and derived rates.
	Network() (NetworkSample, error)

	// Processes returns the running process list (at most 100 entries).
	Processes() ([]ProcessSample, error)

	// SystemInfo returns host identification details.
	SystemInfo() (SystemInfoSample, error)
}

// SecurityScanner supplies the security posture section. Injected into the
// snapshot builder; implementations own their probing strategy.
type SecurityScanner interface {
	Scan() (*SecuritySample, error)
}

// ResourceSampler supplies GPU, battery, and temperature sections. These
// are local-only probes; the remote path leaves them absent.
type ResourceSampler interface {
	GPUs() []GPUSample
	Battery() *BatterySample
	Temperatures() []TemperatureSample
}
