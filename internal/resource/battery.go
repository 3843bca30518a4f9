package resource

import (
	"fmt"
	"time"

	"github.com/distatus/battery"

	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Battery returns the first battery's state, or a not-present sample on
// hosts without one (desktops, servers).
func (s *Sampler) Battery() *metrics.BatterySample {
	batteries, err := battery.GetAll()
	if err != nil {
		if _, partial := err.(battery.Errors); !partial {
			s.log.Debug("battery probe failed: %v", err)
			return &metrics.BatterySample{TimeLeft: "N/A"}
		}
	}
	if len(batteries) == 0 {
		return &metrics.BatterySample{TimeLeft: "N/A"}
	}

	b := batteries[0]

	var percent float64
	if b.Full > 0 {
		percent = b.Current / b.Full * 100
	}

	plugged := b.State.Raw == battery.Charging ||
		b.State.Raw == battery.Full ||
		b.State.Raw == battery.Idle

	return &metrics.BatterySample{
		Present:      true,
		Percent:      percent,
		PowerPlugged: plugged,
		TimeLeft:     timeLeft(b),
	}
}

// timeLeft estimates remaining runtime (discharging) or time to full
// (charging) from the battery's charge rate.
func timeLeft(b *battery.Battery) string {
	if b.ChargeRate <= 0 {
		return "N/A"
	}

	var hours float64
	switch b.State.Raw {
	case battery.Discharging:
		hours = b.Current / b.ChargeRate
	case battery.Charging:
		hours = (b.Full - b.Current) / b.ChargeRate
	default:
		return "N/A"
	}

	d := time.Duration(hours * float64(time.Hour))
	return fmt.Sprintf("%d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
