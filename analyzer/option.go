package analyzer

import (
	"log/slog"

	"github.com/viant/diffgate/inspector"
	"github.com/viant/diffgate/telemetry"
)

type Option func(*Analyzer)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConcurrency bounds the number of files processed at once
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.concurrency = n
	}
}

// WithMetrics records file, change and run metrics
func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(a *Analyzer) {
		a.metrics = metrics
	}
}

// WithFactory replaces the inspector factory, e.g. to change extraction settings
func WithFactory(factory *inspector.Factory) Option {
	return func(a *Analyzer) {
		if factory != nil {
			a.factory = factory
		}
	}
}
