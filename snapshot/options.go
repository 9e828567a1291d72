package snapshot

import "github.com/hupe1980/dynbitset/compress"

const (
	// DefaultConcurrency bounds SaveAll/LoadAll fan-out.
	DefaultConcurrency = 8

	// Extension is appended to snapshot names to form blob names.
	Extension = ".dbs"
)

type options struct {
	compression      compress.Type
	logger           *Logger
	metricsCollector MetricsCollector
	ioBytesPerSec    int
	concurrency      int
	prefix           string
	maxWords         int
}

func defaultOptions() options {
	return options{
		compression:      compress.None,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		concurrency:      DefaultConcurrency,
	}
}

// Option configures a Store.
type Option func(*options)

// WithCompression sets the codec for new snapshots. Loading always honors
// the codec recorded in each snapshot.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics are discarded.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithIOLimit caps blob store traffic at bytesPerSec. Zero or negative disables the limit.
func WithIOLimit(bytesPerSec int) Option {
	return func(o *options) {
		o.ioBytesPerSec = bytesPerSec
	}
}

// WithConcurrency bounds the number of snapshots SaveAll and LoadAll
// process at once. Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithPrefix places every snapshot under prefix in the blob store (e.g. "tenant-a/").
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithMaxWords rejects snapshots holding more than n words with ErrTooLarge
// before any payload is decoded. Zero or negative disables the limit.
func WithMaxWords(n int) Option {
	return func(o *options) {
		o.maxWords = n
	}
}
