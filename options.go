package clusteval

import (
	"log/slog"
	"time"

	"github.com/hupe1980/clusteval/codec"
	"github.com/hupe1980/clusteval/evaluate"
	"github.com/hupe1980/clusteval/factorize"
	"github.com/hupe1980/clusteval/symnmf"
)

const (
	// DefaultSeed seeds the generator of the initial factor matrix.
	DefaultSeed int64 = 1234
	// DefaultMaxIterations caps K-means iterations in Run.
	DefaultMaxIterations = 300
	// DefaultEpsilon is the K-means convergence threshold.
	DefaultEpsilon = 0.001
)

var _ factorize.Primitives = (*symnmf.Kernel)(nil)

type options struct {
	seed             int64
	primitives       factorize.Primitives
	scorer           evaluate.Scorer
	maxIterations    int
	epsilon          float64
	workers          int
	progressInterval time.Duration
	metricsCollector MetricsCollector
	logger           *Logger
	codec            codec.Codec
}

// Option configures an Evaluator.
type Option func(*options)

// WithSeed sets the seed of the factor initialization.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithPrimitives replaces the SymNMF kernel.
func WithPrimitives(p factorize.Primitives) Option {
	return func(o *options) {
		o.primitives = p
	}
}

// WithScorer replaces the silhouette scorer.
func WithScorer(s evaluate.Scorer) Option {
	return func(o *options) {
		o.scorer = s
	}
}

// WithMaxIterations sets the K-means iteration cap used by Run.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithEpsilon sets the K-means convergence threshold.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithWorkers sets the number of goroutines for K-means assignment and
// silhouette scoring. Values <= 1 run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgressInterval throttles K-means progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &clusteval.BasicMetricsCollector{}
//	ev := clusteval.New(clusteval.WithMetricsCollector(metrics))
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel sets a text logger with the given level.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCodec sets the codec used by Report.Encode callers.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		seed:             DefaultSeed,
		maxIterations:    DefaultMaxIterations,
		epsilon:          DefaultEpsilon,
		workers:          1,
		progressInterval: time.Second,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.primitives == nil {
		o.primitives = symnmf.New()
	}
	if o.scorer == nil {
		o.scorer = evaluate.Silhouette{Workers: o.workers}
	}
	return o
}
