package api

import (
	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/polar"
)

// Pipeline converts one axis pair. polar.Settings implements it.
type Pipeline interface {
	Compute(x, y float64) (polar.Result[float64], error)
}

type sampledPipeline struct {
	p       Pipeline
	samples log.SampleLogger
}

// WithSamples returns a Pipeline that records every successful conversion.
func WithSamples(p Pipeline, samples log.SampleLogger) Pipeline {
	if samples == nil {
		return p
	}
	return &sampledPipeline{p: p, samples: samples}
}

func (s *sampledPipeline) Compute(x, y float64) (polar.Result[float64], error) {
	r, err := s.p.Compute(x, y)
	if err == nil {
		s.samples.Log(x, y, r)
	}
	return r, err
}
