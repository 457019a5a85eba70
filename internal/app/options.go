package service

import (
	"time"

	"github.com/okian/flightstats/pkg/logger"
	"github.com/okian/flightstats/pkg/metrics"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics records pass metrics on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithIndexCapacity pre-sizes the city indices.
func WithIndexCapacity(cities int) Option {
	return func(p *Pipeline) {
		if cities > 0 {
			p.capacity = cities
		}
	}
}

// WithTopN sets how many destinations Summarize ranks.
func WithTopN(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.topN = n
		}
	}
}

// WithClock replaces time.Now for elapsed measurement.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}
