package resource

import (
	"github.com/shirou/gopsutil/v3/host"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Temperatures returns every readable temperature sensor, or a labeled
// placeholder when the host exposes none.
func (s *Sampler) Temperatures() []metrics.TemperatureSample {
	noSensors := []metrics.TemperatureSample{{
		Sensor: "N/A",
		Label:  "No sensors detected",
	}}

	stats, err := host.SensorsTemperatures()
	if err != nil {
		// Partial reads still carry usable sensors on some platforms.
		if len(stats) == 0 {
			s.log.Debug("temperature probe failed: %v", err)
			return noSensors
		}
	}

	temps := []metrics.TemperatureSample{}
	for _, st := range stats {
		if st.SensorKey == "" {
			continue
		}
		temps = append(temps, metrics.TemperatureSample{
			Sensor:   st.SensorKey,
			Label:    st.SensorKey,
			Current:  st.Temperature,
			High:     st.High,
			Critical: st.Critical,
		})
	}

	if len(temps) == 0 {
		return noSensors
	}
	return temps
}
