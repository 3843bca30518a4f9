package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// fakeSource returns canned samples, with selectable per-metric errors.
type fakeSource struct {
	cpuErr  error
	diskErr error
}

func (f *fakeSource) CPU() (metrics.CPUSample, error) {
	if f.cpuErr != nil {
		return metrics.CPUSample{}, f.cpuErr
	}
	return metrics.CPUSample{Percent: 30}, nil
}

func (f *fakeSource) Memory() (metrics.MemorySample, error) {
	return metrics.MemorySample{TotalBytes: 16 << 30, UsedBytes: 8 << 30, Percent: 50}, nil
}

func (f *fakeSource) Disks() ([]metrics.DiskSample, error) {
	if f.diskErr != nil {
		return nil, f.diskErr
	}
	return []metrics.DiskSample{{Mountpoint: "/", Percent: 40}}, nil
}

func (f *fakeSource) Network() (metrics.NetworkSample, error) {
	return metrics.NetworkSample{BytesSent: 100, BytesRecv: 200}, nil
}

func (f *fakeSource) Processes() ([]metrics.ProcessSample, error) {
	return []metrics.ProcessSample{{PID: 1, Name: "init"}}, nil
}

func (f *fakeSource) SystemInfo() (metrics.SystemInfoSample, error) {
	return metrics.SystemInfoSample{Hostname: "web-01"}, nil
}

// fakeFullSource additionally implements the optional capabilities.
type fakeFullSource struct {
	fakeSource
}

func (f *fakeFullSource) CPUPerCore() ([]float64, error) {
	return []float64{10, 50}, nil
}

func (f *fakeFullSource) Devices() ([]metrics.DeviceSample, error) {
	return []metrics.DeviceSample{{Mountpoint: "/media/usb", Removable: true}}, nil
}

type fakeScanner struct{ err error }

func (f *fakeScanner) Scan() (*metrics.SecuritySample, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &metrics.SecuritySample{Score: 85}, nil
}

type fakeSampler struct{}

func (f *fakeSampler) GPUs() []metrics.GPUSample {
	return []metrics.GPUSample{{Name: "No GPU detected"}}
}

func (f *fakeSampler) Battery() *metrics.BatterySample {
	return &metrics.BatterySample{Present: true, Percent: 75}
}

func (f *fakeSampler) Temperatures() []metrics.TemperatureSample {
	return []metrics.TemperatureSample{{Sensor: "coretemp", Current: 45}}
}

func TestBuild_AllCoreSections(t *testing.T) {
	s, err := NewBuilder(&fakeSource{}).Build()
	require.NoError(t, err)

	assert.Equal(t, 30.0, s.CPU.Percent)
	assert.Equal(t, 50.0, s.Memory.Percent)
	require.Len(t, s.Disk, 1)
	assert.Equal(t, uint64(100), s.Network.BytesSent)
	require.Len(t, s.Processes, 1)
	assert.Equal(t, "web-01", s.System.Hostname)

	// Optional sections stay absent without their capabilities.
	assert.Nil(t, s.CPUPerCore)
	assert.Nil(t, s.Devices)
	assert.Nil(t, s.Battery)
	assert.Nil(t, s.Security)
}

func TestBuild_MetricErrorDegradesToZeroSample(t *testing.T) {
	src := &fakeSource{cpuErr: fmt.Errorf("probe timed out")}

	s, err := NewBuilder(src).Build()
	require.NoError(t, err)
	require.NotNil(t, s.CPU)
	assert.Equal(t, 0.0, s.CPU.Percent)
}

func TestBuild_ConnectionErrorAborts(t *testing.T) {
	src := &fakeSource{
		cpuErr: errors.New(errors.ErrNotConnected, "Not connected to remote server", ""),
	}

	s, err := NewBuilder(src).Build()
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.IsCode(err, errors.ErrNotConnected))
}

func TestBuild_NilSliceBecomesEmptySection(t *testing.T) {
	src := &fakeSource{diskErr: fmt.Errorf("df unavailable")}

	s, err := NewBuilder(src).Build()
	require.NoError(t, err)
	require.NotNil(t, s.Disk)
	assert.Empty(t, s.Disk)
}

func TestBuild_OptionalCapabilities(t *testing.T) {
	s, err := NewBuilder(&fakeFullSource{}).Build()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 50}, s.CPUPerCore)
	require.Len(t, s.Devices, 1)
	assert.True(t, s.Devices[0].Removable)
}

func TestBuild_Collaborators(t *testing.T) {
	s, err := NewBuilder(&fakeSource{}).
		WithSecurity(&fakeScanner{}).
		WithResources(&fakeSampler{}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 85, s.Security.Score)
	assert.Equal(t, 75.0, s.Battery.Percent)
	require.Len(t, s.GPU, 1)
	require.Len(t, s.Temperature, 1)
}

func TestBuild_ScannerErrorDegrades(t *testing.T) {
	s, err := NewBuilder(&fakeSource{}).
		WithSecurity(&fakeScanner{err: fmt.Errorf("scan blew up")}).
		Build()
	require.NoError(t, err)
	require.NotNil(t, s.Security)
	assert.Equal(t, 0, s.Security.Score)
}

func TestBuild_TimestampAssignedAtEnd(t *testing.T) {
	before := time.Now()
	s, err := NewBuilder(&fakeSource{}).Build()
	require.NoError(t, err)
	after := time.Now()

	assert.False(t, s.Timestamp.Before(before))
	assert.False(t, s.Timestamp.After(after))
}
