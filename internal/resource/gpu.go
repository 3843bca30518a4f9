package resource

import (
	"errors"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// noGPU is the placeholder section for hosts without an NVIDIA GPU or
// without driver support.
func noGPU() []metrics.GPUSample {
	return []metrics.GPUSample{{Name: "No GPU detected"}}
}

// initNVML initializes the NVML library once per sampler lifetime.
func (s *Sampler) initNVML() bool {
	s.nvmlOnce.Do(func() {
		if ret := nvml.Init(); !errors.Is(ret, nvml.SUCCESS) {
			s.log.Debug("nvml init failed: %s", nvml.ErrorString(ret))
			return
		}
		s.nvmlOK = true
	})
	return s.nvmlOK
}

// GPUs returns load, memory, and temperature per NVIDIA device.
func (s *Sampler) GPUs() []metrics.GPUSample {
	if !s.initNVML() {
		return noGPU()
	}

	count, ret := nvml.DeviceGetCount()
	if !errors.Is(ret, nvml.SUCCESS) || count == 0 {
		return noGPU()
	}

	gpus := []metrics.GPUSample{}
	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if !errors.Is(ret, nvml.SUCCESS) {
			continue
		}

		sample := metrics.GPUSample{ID: i, Name: "Unknown"}

		if name, ret := device.GetName(); errors.Is(ret, nvml.SUCCESS) {
			sample.Name = name
		}
		if util, ret := device.GetUtilizationRates(); errors.Is(ret, nvml.SUCCESS) {
			sample.LoadPercent = float64(util.Gpu)
		}
		if memInfo, ret := device.GetMemoryInfo(); errors.Is(ret, nvml.SUCCESS) {
			sample.MemoryUsedMB = float64(memInfo.Used) / (1024 * 1024)
			sample.MemoryTotalMB = float64(memInfo.Total) / (1024 * 1024)
			if memInfo.Total > 0 {
				sample.MemoryPercent = float64(memInfo.Used) / float64(memInfo.Total) * 100
			}
		}
		if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); errors.Is(ret, nvml.SUCCESS) {
			sample.Temperature = float64(temp)
		}

		gpus = append(gpus, sample)
	}

	if len(gpus) == 0 {
		return noGPU()
	}
	return gpus
}
