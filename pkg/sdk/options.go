package georegion

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	maxRadiusKm float64
	concurrency int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMaxRadius sets the largest accepted radius in kilometers.
// Default: 5000.
func WithMaxRadius(km float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRadiusKm = km
	})
}

// WithConcurrency sets how many squares CornersBatch computes at once.
// Default: 8.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
