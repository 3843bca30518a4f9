package local

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPU(t *testing.T) {
	src := NewSource()
	sample, err := src.CPU()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sample.Percent, 0.0)
}

func TestMemory(t *testing.T) {
	src := NewSource()
	sample, err := src.Memory()
	require.NoError(t, err)
	assert.Greater(t, sample.TotalBytes, uint64(0))
	assert.LessOrEqual(t, sample.UsedBytes, sample.TotalBytes)
}

func TestDisks(t *testing.T) {
	src := NewSource()
	disks, err := src.Disks()
	require.NoError(t, err)
	for _, d := range disks {
		assert.NotEmpty(t, d.Mountpoint)
	}
}

func TestNetwork_FirstObservationHasNoRates(t *testing.T) {
	src := NewSource()
	sample, err := src.Network()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sample.UploadBps)
	assert.Equal(t, 0.0, sample.DownloadBps)
}

func TestProcesses_Capped(t *testing.T) {
	src := NewSource()
	procs, err := src.Processes()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(procs), maxProcesses)
	for _, p := range procs {
		assert.NotZero(t, p.PID)
	}
}

func TestSystemInfo(t *testing.T) {
	src := NewSource()
	info, err := src.SystemInfo()
	require.NoError(t, err)
	assert.NotEmpty(t, info.Hostname)
	assert.Greater(t, info.CPUCountLogical, 0)
}

func TestIsRemovable_MountHeuristics(t *testing.T) {
	tests := []struct {
		name       string
		goos       string
		device     string
		mountpoint string
		want       bool
	}{
		{"linux media mount", "linux", "/dev/nonexistent0", "/media/usb0", true},
		{"linux mnt mount", "linux", "/dev/nonexistent0", "/mnt/backup", true},
		{"linux root", "linux", "/dev/nonexistent0", "/", false},
		{"darwin volume", "darwin", "/dev/disk2s1", "/Volumes/USB", true},
		{"darwin root", "darwin", "/dev/disk1s1", "/", false},
		{"windows", "windows", "E:", "E:\\", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRemovable(tt.goos, tt.device, tt.mountpoint))
		})
	}
}
