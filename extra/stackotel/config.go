package stackotel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumName = "github.com/redis/go-redis-stack/extra/stackotel"

type config struct {
	attrs []attribute.KeyValue

	tp     trace.TracerProvider
	tracer trace.Tracer

	dbStmtEnabled bool
}

// Option configures the tracing hook.
type Option func(conf *config)

func newConfig(opts ...Option) *config {
	conf := &config{
		attrs:         []attribute.KeyValue{semconv.DBSystemRedis},
		tp:            otel.GetTracerProvider(),
		dbStmtEnabled: true,
	}
	for _, opt := range opts {
		opt(conf)
	}
	conf.tracer = conf.tp.Tracer(instrumName)
	return conf
}

// WithAttributes specifies additional attributes to be added to the span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(conf *config) {
		conf.attrs = append(conf.attrs, attrs...)
	}
}

// WithTracerProvider specifies a tracer provider to use for creating a tracer.
// If none is specified, the global provider is used.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(conf *config) {
		conf.tp = provider
	}
}

// WithDBStatement tells the hook to record the command name and key as the
// db.statement attribute. Values are never recorded.
func WithDBStatement(on bool) Option {
	return func(conf *config) {
		conf.dbStmtEnabled = on
	}
}
