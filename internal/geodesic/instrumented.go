package geodesic

import (
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/metrics"
)

// Instrumented wraps a Solver and counts solves by outcome.
type Instrumented struct {
	inner Solver
}

var _ Solver = (*Instrumented)(nil)

// NewInstrumented wraps a solver with metrics.
func NewInstrumented(inner Solver) *Instrumented {
	return &Instrumented{inner: inner}
}

// Direct delegates to the inner solver and records the outcome.
func (s *Instrumented) Direct(start geo.Point, azimuthDeg, distanceM float64) (geo.Point, error) {
	p, err := s.inner.Direct(start, azimuthDeg, distanceM)
	record("direct", err)
	return p, err //nolint:wrapcheck // transparent decorator
}

// Inverse delegates to the inner solver and records the outcome.
func (s *Instrumented) Inverse(a, b geo.Point) (float64, float64, error) {
	d, azi, err := s.inner.Inverse(a, b)
	record("inverse", err)
	return d, azi, err //nolint:wrapcheck // transparent decorator
}

func record(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.GeodesicSolvesTotal.WithLabelValues(op, status).Inc()
}
