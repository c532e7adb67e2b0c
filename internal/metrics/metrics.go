package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "georegion"

// Geodesic and region Prometheus metrics.
var (
	GeodesicSolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geodesic_solves_total",
			Help:      "Total number of geodesic solves",
		},
		[]string{"op", "status"}, // op: direct/inverse, status: ok/error
	)

	RegionComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "region_compute_duration_seconds",
			Help:      "Region computation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"kind"}, // corners, bounds, batch
	)

	RegionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_errors_total",
			Help:      "Total region computations rejected or failed",
		},
		[]string{"kind", "error_type"},
	)
)

var registerOnce sync.Once

// Register registers all georegion collectors with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			GeodesicSolvesTotal,
			RegionComputeDuration,
			RegionErrorsTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
