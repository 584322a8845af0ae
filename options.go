package soa

type options struct {
	defaults         Record
	initialCapacity  int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures StructureOfArrays and StructureOfSparseMaps constructors.
type Option func(*options)

// WithDefaults overrides the default value of individual fields.
//
// Defaults are used by AddWithDefaultValues/PushWithDefaultValues and for
// fields missing from a Record. Fields not named keep their zero value. The
// constructor fails with *ErrInvalidDefault if a name is not in the schema or
// a value does not fit its field.
func WithDefaults(defaults Record) Option {
	return func(o *options) {
		o.defaults = defaults.Clone()
	}
}

// WithInitialCapacity pre-sizes numeric columns for n records.
// Negative values are treated as zero.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = max(n, 0)
	}
}

// WithLogger configures the logger used for debug output.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for container operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &soa.BasicMetricsCollector{}
//	s, _ := soa.New(schema, soa.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("adds: %d, recycled: %d\n", stats.AddCount, stats.AddRecycled)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
