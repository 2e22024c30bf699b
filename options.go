package knn

import (
	"log/slog"
	"runtime"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
}

// Option configures queries and models.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &knn.BasicMetricsCollector{}
//	m := knn.New[int](5, distance.MetricEuclidean, knn.ModeClassification, knn.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := knn.NewJSONLogger(slog.LevelDebug)
//	res, err := knn.Query(q, X, y, 5, distance.MetricEuclidean, knn.ModeRegression, knn.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithConcurrency bounds the number of goroutines used by Model.PredictBatch.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
