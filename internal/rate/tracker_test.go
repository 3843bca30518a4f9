package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstObserveReturnsZero(t *testing.T) {
	tr := NewTracker()

	r := tr.Observe(1000, 2000, time.Now())

	assert.Equal(t, 0.0, r.UploadBps)
	assert.Equal(t, 0.0, r.DownloadBps)
}

func TestObserveComputesRates(t *testing.T) {
	tr := NewTracker()
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tr.Observe(1000, 2000, start)
	r := tr.Observe(1000+2048, 2000+4096, start.Add(2*time.Second))

	assert.Equal(t, 1024.0, r.UploadBps)
	assert.Equal(t, 2048.0, r.DownloadBps)
}

func TestObserveZeroElapsed(t *testing.T) {
	tr := NewTracker()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tr.Observe(1000, 2000, now)
	r := tr.Observe(5000, 9000, now)

	assert.Equal(t, 0.0, r.UploadBps)
	assert.Equal(t, 0.0, r.DownloadBps)

	// Baseline must still have advanced to the new counters.
	r = tr.Observe(5000+1024, 9000+1024, now.Add(time.Second))
	assert.Equal(t, 1024.0, r.UploadBps)
	assert.Equal(t, 1024.0, r.DownloadBps)
}

func TestObserveNegativeElapsed(t *testing.T) {
	tr := NewTracker()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tr.Observe(1000, 2000, now)
	r := tr.Observe(2000, 3000, now.Add(-time.Second))

	assert.Equal(t, 0.0, r.UploadBps)
	assert.Equal(t, 0.0, r.DownloadBps)
}

func TestObserveCounterDecrease(t *testing.T) {
	tr := NewTracker()
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tr.Observe(10000, 20000, start)
	r := tr.Observe(5000, 10000, start.Add(time.Second))

	// A counter reset on the observed host produces a negative rate;
	// clamping is the caller's responsibility.
	assert.Equal(t, -5000.0, r.UploadBps)
	assert.Equal(t, -10000.0, r.DownloadBps)
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tr.Observe(1000, 2000, start)
	tr.Reset()

	r := tr.Observe(9000, 9000, start.Add(time.Second))
	assert.Equal(t, 0.0, r.UploadBps)
	assert.Equal(t, 0.0, r.DownloadBps)
}
