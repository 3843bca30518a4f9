package snapshot

import (
	"time"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// PerCoreSource is an optional capability: sources that can report
// per-core CPU usage (the in-process path) additionally implement it.
type PerCoreSource interface {
	CPUPerCore() ([]float64, error)
}

// DeviceSource is an optional capability for sources that can enumerate
// connected storage devices.
type DeviceSource interface {
	Devices() ([]metrics.DeviceSample, error)
}

// Builder aggregates a metric source plus the local-only collaborators
// into complete snapshots. Collection is synchronous and best-effort per
// metric: a collector that errors contributes a zero-valued section for
// its key rather than aborting the whole snapshot. The one exception is
// a lost or unauthenticated session, which aborts the build so the
// caller never mistakes a dead connection for a machine reporting zeros.
type Builder struct {
	source  metrics.Source
	scanner metrics.SecurityScanner
	sampler metrics.ResourceSampler
	log     logger.Logger
}

// NewBuilder creates a snapshot builder for the given source.
func NewBuilder(source metrics.Source) *Builder {
	return &Builder{
		source: source,
		log:    logger.Noop(),
	}
}

// WithSecurity injects a security scanner whose result becomes the
// security section.
func (b *Builder) WithSecurity(s metrics.SecurityScanner) *Builder {
	b.scanner = s
	return b
}

// WithResources injects a resource sampler supplying the GPU, battery,
// and temperature sections.
func (b *Builder) WithResources(r metrics.ResourceSampler) *Builder {
	b.sampler = r
	return b
}

// WithLogger sets the logger used for per-metric failure reporting.
func (b *Builder) WithLogger(l logger.Logger) *Builder {
	b.log = l
	return b
}

// absorb logs a per-metric failure and reports whether the build should
// abort instead. Connection-level failures abort; everything else is
// degraded to a zero-valued section.
func (b *Builder) absorb(metric string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsConnectionError(err) {
		return err
	}
	b.log.Debug("%s collection failed: %v", metric, err)
	return nil
}

// Build collects every section and returns the assembled snapshot.
// The timestamp is assigned once, after all collection has finished.
func (b *Builder) Build() (*Snapshot, error) {
	s := &Snapshot{}

	cpu, err := b.source.CPU()
	if err := b.absorb("cpu", err); err != nil {
		return nil, err
	}
	s.CPU = &cpu

	if pc, ok := b.source.(PerCoreSource); ok {
		cores, err := pc.CPUPerCore()
		if err != nil {
			b.log.Debug("per-core cpu collection failed: %v", err)
			cores = []float64{}
		}
		s.CPUPerCore = cores
	}

	mem, err := b.source.Memory()
	if err := b.absorb("memory", err); err != nil {
		return nil, err
	}
	s.Memory = &mem

	disks, err := b.source.Disks()
	if err := b.absorb("disk", err); err != nil {
		return nil, err
	}
	if disks == nil {
		disks = []metrics.DiskSample{}
	}
	s.Disk = disks

	net, err := b.source.Network()
	if err := b.absorb("network", err); err != nil {
		return nil, err
	}
	s.Network = &net

	procs, err := b.source.Processes()
	if err := b.absorb("processes", err); err != nil {
		return nil, err
	}
	if procs == nil {
		procs = []metrics.ProcessSample{}
	}
	s.Processes = procs

	info, err := b.source.SystemInfo()
	if err := b.absorb("system info", err); err != nil {
		return nil, err
	}
	s.System = &info

	if ds, ok := b.source.(DeviceSource); ok {
		devices, err := ds.Devices()
		if err != nil {
			b.log.Debug("device collection failed: %v", err)
			devices = []metrics.DeviceSample{}
		}
		s.Devices = devices
	}

	if b.sampler != nil {
		s.GPU = b.sampler.GPUs()
		s.Battery = b.sampler.Battery()
		s.Temperature = b.sampler.Temperatures()
	}

	if b.scanner != nil {
		sec, err := b.scanner.Scan()
		if err != nil {
			b.log.Debug("security scan failed: %v", err)
			sec = &metrics.SecuritySample{}
		}
		s.Security = sec
	}

	s.Timestamp = time.Now()
	return s, nil
}
