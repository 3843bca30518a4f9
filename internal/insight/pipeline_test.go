package insight

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
)

// staticSource serves fixed samples so the full
// collect-persist-compare-classify cycle is deterministic.
type staticSource struct {
	cpu float64
}

func (s *staticSource) CPU() (metrics.CPUSample, error) {
	return metrics.CPUSample{Percent: s.cpu}, nil
}

func (s *staticSource) Memory() (metrics.MemorySample, error) {
	return metrics.MemorySample{TotalBytes: 16 << 30, UsedBytes: 8 << 30, Percent: 50}, nil
}

func (s *staticSource) Disks() ([]metrics.DiskSample, error) {
	return []metrics.DiskSample{{Mountpoint: "/", Percent: 40}}, nil
}

func (s *staticSource) Network() (metrics.NetworkSample, error) {
	return metrics.NetworkSample{BytesSent: 100, BytesRecv: 200}, nil
}

func (s *staticSource) Processes() ([]metrics.ProcessSample, error) {
	return []metrics.ProcessSample{{PID: 1, Name: "init", Status: "Ss"}}, nil
}

func (s *staticSource) SystemInfo() (metrics.SystemInfoSample, error) {
	return metrics.SystemInfoSample{Hostname: "web-01"}, nil
}

func TestCollectCompareClassifyCycle(t *testing.T) {
	store := snapshot.NewStore(filepath.Join(t.TempDir(), "snap.json"))
	src := &staticSource{cpu: 30}

	baseline, err := snapshot.NewBuilder(src).Build()
	require.NoError(t, err)
	require.NoError(t, store.Save(baseline))

	src.cpu = 90
	current, err := snapshot.NewBuilder(src).Build()
	require.NoError(t, err)

	previous, err := store.LoadPrevious()
	require.NoError(t, err)
	require.NotNil(t, previous)

	diff := snapshot.Compare(previous, current)
	require.Len(t, diff, 1)
	require.True(t, diff.Has(snapshot.KeyCPU))

	in := Classify(diff)
	require.Len(t, in.Warnings, 2)
	assert.Contains(t, in.Warnings[0], "CPU usage increased by 60.0%")
	assert.Contains(t, in.Warnings[1], "High CPU usage")
	assert.Empty(t, in.Positives)
}

func TestFirstRunHasNoBaseline(t *testing.T) {
	store := snapshot.NewStore(filepath.Join(t.TempDir(), "snap.json"))

	previous, err := store.LoadPrevious()
	require.NoError(t, err)
	assert.Nil(t, previous)
}
