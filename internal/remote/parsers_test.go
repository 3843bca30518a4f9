package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPU(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain float", "42.5", 42.5},
		{"integer", "7", 7},
		{"padded", "  13.1\n", 13.1},
		{"garbage", "no such command", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCPU(tt.raw).Percent)
		})
	}
}

func TestParseMemory_HalfUsed(t *testing.T) {
	m := ParseMemory("16000000000 8000000000 8000000000 8000000000")
	assert.Equal(t, uint64(16000000000), m.TotalBytes)
	assert.Equal(t, uint64(8000000000), m.UsedBytes)
	assert.Equal(t, uint64(8000000000), m.AvailableBytes)
	assert.Equal(t, 50.0, m.Percent)
}

func TestParseMemory_ZeroTotal(t *testing.T) {
	m := ParseMemory("0 0 0 0")
	assert.Equal(t, 0.0, m.Percent)
}

func TestParseMemory_TwoFields(t *testing.T) {
	// Some platforms only report total and a second counter.
	m := ParseMemory("1000 400")
	assert.Equal(t, uint64(1000), m.TotalBytes)
	assert.Equal(t, uint64(400), m.UsedBytes)
	assert.Equal(t, uint64(600), m.AvailableBytes)
	assert.Equal(t, 40.0, m.Percent)
}

func TestParseMemory_Garbage(t *testing.T) {
	assert.Equal(t, uint64(0), ParseMemory("free: command not found").TotalBytes)
	assert.Equal(t, uint64(0), ParseMemory("").TotalBytes)
}

func TestParseDisks_WellFormed(t *testing.T) {
	disks := ParseDisks("/dev/sda1 /mnt 1000 500 500 50%")
	require.Len(t, disks, 1)
	d := disks[0]
	assert.Equal(t, "/dev/sda1", d.Device)
	assert.Equal(t, "/mnt", d.Mountpoint)
	assert.Equal(t, "unknown", d.Fstype)
	assert.Equal(t, uint64(1000), d.TotalBytes)
	assert.Equal(t, uint64(500), d.UsedBytes)
	assert.Equal(t, uint64(500), d.FreeBytes)
	assert.Equal(t, 50.0, d.Percent)
}

func TestParseDisks_ShortLineSkipped(t *testing.T) {
	raw := "/dev/sda1 /mnt 1000 500\n/dev/sdb1 /data 2000 1000 1000 50%"
	disks := ParseDisks(raw)
	require.Len(t, disks, 1)
	assert.Equal(t, "/dev/sdb1", disks[0].Device)
}

func TestParseDisks_NonNumericSkipped(t *testing.T) {
	raw := "tmpfs /run total used free pct\n/dev/sda1 / 100 60 40 60"
	disks := ParseDisks(raw)
	require.Len(t, disks, 1)
	assert.Equal(t, 60.0, disks[0].Percent)
}

func TestParseNetworkCounters(t *testing.T) {
	recv, sent, ok := ParseNetworkCounters("123456 78910")
	require.True(t, ok)
	assert.Equal(t, uint64(123456), recv)
	assert.Equal(t, uint64(78910), sent)
}

func TestParseNetworkCounters_Malformed(t *testing.T) {
	_, _, ok := ParseNetworkCounters("123456")
	assert.False(t, ok)

	_, _, ok = ParseNetworkCounters("abc def")
	assert.False(t, ok)

	_, _, ok = ParseNetworkCounters("")
	assert.False(t, ok)
}

func TestParseProcesses(t *testing.T) {
	raw := "1 systemd 0.1 0.2 Ss\n" +
		"4242 nginx 1.5 0.8 S\n" +
		"777 zombie - - Z\n" + // dashes coerce to zero
		"notapid bad 1 1 R\n" + // skipped
		"999 short 2.0 1.0" // no status token
	procs := ParseProcesses(raw)
	require.Len(t, procs, 4)

	assert.Equal(t, 1, procs[0].PID)
	assert.Equal(t, "systemd", procs[0].Name)
	assert.Equal(t, "Ss", procs[0].Status)

	assert.Equal(t, 0.0, procs[2].CPUPercent)
	assert.Equal(t, 0.0, procs[2].MemPercent)

	assert.Equal(t, 999, procs[3].PID)
	assert.Equal(t, "unknown", procs[3].Status)
}

func TestParseProcesses_EmptyOutput(t *testing.T) {
	assert.Empty(t, ParseProcesses(""))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 8, parseCount("8\n"))
	assert.Equal(t, 0, parseCount("eight"))
	assert.Equal(t, 0, parseCount(""))
}

func TestParseText(t *testing.T) {
	assert.Equal(t, "Linux", parseText(" Linux \n", "Unknown"))
	assert.Equal(t, "Unknown", parseText("  \n", "Unknown"))
}
