// Package resource samples hardware that only exists on the local
// machine: GPUs, the battery, and temperature sensors. Sections degrade
// to labeled placeholders on hosts without the hardware, never errors.
package resource

import (
	"sync"

	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// Sampler satisfies metrics.ResourceSampler.
type Sampler struct {
	log logger.Logger

	nvmlOnce sync.Once
	nvmlOK   bool
}

// NewSampler creates a resource sampler.
func NewSampler() *Sampler {
	return &Sampler{log: logger.Noop()}
}

// WithLogger sets the logger used for probe failure reporting.
func (s *Sampler) WithLogger(l logger.Logger) *Sampler {
	s.log = l
	return s
}

var _ metrics.ResourceSampler = (*Sampler)(nil)
