package local

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Devices enumerates mounted storage devices with a removable-media
// hint, so consumers can single out USB sticks and external drives.
func (s *Source) Devices() ([]metrics.DeviceSample, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	devices := []metrics.DeviceSample{}
	for _, p := range partitions {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}
		devices = append(devices, metrics.DeviceSample{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			TotalBytes: usage.Total,
			UsedBytes:  usage.Used,
			FreeBytes:  usage.Free,
			Percent:    usage.UsedPercent,
			Removable:  isRemovable(runtime.GOOS, p.Device, p.Mountpoint),
		})
	}
	return devices, nil
}

// isRemovable reports whether a partition looks like removable media.
// On Linux the kernel's removable flag under /sys/block is
// authoritative; mount location is the fallback heuristic there and the
// only signal on macOS.
func isRemovable(goos, device, mountpoint string) bool {
	switch goos {
	case "linux":
		name := strings.TrimPrefix(device, "/dev/")
		if strings.Contains(name, "sd") || strings.Contains(name, "mmc") {
			name = strings.TrimRight(name, "0123456789")
		}
		flagPath := filepath.Join("/sys/block", name, "removable")
		if data, err := os.ReadFile(flagPath); err == nil {
			return strings.TrimSpace(string(data)) == "1"
		}
		return strings.Contains(mountpoint, "/media/") || strings.Contains(mountpoint, "/mnt/")
	case "darwin":
		return strings.Contains(mountpoint, "/Volumes/") && mountpoint != "/"
	default:
		return false
	}
}
