// Package rate converts cumulative network byte counters into
// instantaneous throughput. The local and remote collection paths share
// one implementation so their derived network sections behave identically.
package rate

import (
	"sync"
	"time"
)

// Rates holds the derived throughput of one observation in bytes/second.
type Rates struct {
	UploadBps   float64
	DownloadBps float64
}

// Tracker remembers the last cumulative counters and sample time. It is
// exclusively owned by one monitor instance; switching connection targets
// must Reset it so stale baselines cannot produce a bogus rate spike.
//
// Counter wraparound or a reset on the observed host is not handled: a
// decreasing counter yields a negative rate, and callers that need
// monotonic rates must clamp it themselves.
type Tracker struct {
	mu       sync.Mutex
	lastSent uint64
	lastRecv uint64
	lastTime time.Time
	primed   bool
}

// NewTracker returns an empty tracker with no baseline.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a new counter sample and returns the throughput since
// the previous one. The first call after construction or Reset returns
// zero rates and only stores the baseline. A non-positive elapsed time
// also returns zero rates, but the stored counters and timestamp still
// advance to the new values.
func (t *Tracker) Observe(cumulativeSent, cumulativeRecv uint64, now time.Time) Rates {
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Rates
	if t.primed {
		elapsed := now.Sub(t.lastTime).Seconds()
		if elapsed > 0 {
			r.UploadBps = (float64(cumulativeSent) - float64(t.lastSent)) / elapsed
			r.DownloadBps = (float64(cumulativeRecv) - float64(t.lastRecv)) / elapsed
		}
	}

	t.lastSent = cumulativeSent
	t.lastRecv = cumulativeRecv
	t.lastTime = now
	t.primed = true

	return r
}

// Reset discards the stored baseline. The next Observe returns zero rates.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSent = 0
	t.lastRecv = 0
	t.lastTime = time.Time{}
	t.primed = false
}
