package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hardware probes are environment dependent, so these tests pin the
// degradation contract: every section always yields a usable value.

func TestGPUs_AlwaysNonEmpty(t *testing.T) {
	s := NewSampler()
	gpus := s.GPUs()
	require.NotEmpty(t, gpus)
	for _, g := range gpus {
		assert.NotEmpty(t, g.Name)
	}
}

func TestBattery_AlwaysNonNil(t *testing.T) {
	s := NewSampler()
	b := s.Battery()
	require.NotNil(t, b)
	if !b.Present {
		assert.Equal(t, "N/A", b.TimeLeft)
		assert.Equal(t, 0.0, b.Percent)
	}
}

func TestTemperatures_AlwaysNonEmpty(t *testing.T) {
	s := NewSampler()
	temps := s.Temperatures()
	require.NotEmpty(t, temps)
	if temps[0].Sensor == "N/A" {
		assert.Equal(t, "No sensors detected", temps[0].Label)
	}
}
