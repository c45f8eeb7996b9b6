// Package stackotel traces Redis Stack commands with OpenTelemetry.
package stackotel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	stack "github.com/redis/go-redis-stack"
)

// Number of leading arguments recorded in db.statement: the command and its key.
const stmtArgs = 2

// Number of distinct command names in a pipeline span name.
const summaryNames = 10

type tracingHook struct {
	conf *config

	spanOpts []trace.SpanStartOption
}

var _ stack.Hook = (*tracingHook)(nil)

// NewTracingHook returns a hook that starts a client span per command and
// one span per pipeline.
func NewTracingHook(opts ...Option) stack.Hook {
	conf := newConfig(opts...)
	return &tracingHook{
		conf: conf,
		spanOpts: []trace.SpanStartOption{
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(conf.attrs...),
		},
	}
}

// InstrumentTracing adds the tracing hook to client.
func InstrumentTracing(client interface{ AddHook(stack.Hook) }, opts ...Option) {
	client.AddHook(NewTracingHook(opts...))
}

func (th *tracingHook) ProcessHook(hook stack.ProcessHook) stack.ProcessHook {
	return func(ctx context.Context, cmd stack.Cmder) error {
		attrs := make([]attribute.KeyValue, 0, 2)
		if th.conf.dbStmtEnabled {
			attrs = append(attrs, semconv.DBStatement(cmdStatement(cmd)))
		}

		opts := make([]trace.SpanStartOption, 0, len(th.spanOpts)+1)
		opts = append(opts, th.spanOpts...)
		opts = append(opts, trace.WithAttributes(attrs...))

		ctx, span := th.conf.tracer.Start(ctx, cmd.FullName(), opts...)
		defer span.End()

		if err := hook(ctx, cmd); err != nil {
			recordError(span, err)
			return err
		}
		return nil
	}
}

func (th *tracingHook) ProcessPipelineHook(hook stack.ProcessPipelineHook) stack.ProcessPipelineHook {
	return func(ctx context.Context, cmds []stack.Cmder) error {
		attrs := make([]attribute.KeyValue, 0, 2)
		attrs = append(attrs, attribute.Int("db.redis.num_cmd", len(cmds)))

		summary := cmdsSummary(cmds)
		if th.conf.dbStmtEnabled {
			stmts := make([]string, 0, len(cmds))
			for _, cmd := range cmds {
				stmts = append(stmts, cmdStatement(cmd))
			}
			attrs = append(attrs, semconv.DBStatement(strings.Join(stmts, "\n")))
		}

		opts := make([]trace.SpanStartOption, 0, len(th.spanOpts)+1)
		opts = append(opts, th.spanOpts...)
		opts = append(opts, trace.WithAttributes(attrs...))

		ctx, span := th.conf.tracer.Start(ctx, "redis.pipeline "+summary, opts...)
		defer span.End()

		if err := hook(ctx, cmds); err != nil {
			recordError(span, err)
			return err
		}
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				recordError(span, err)
				break
			}
		}
		return nil
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func cmdStatement(cmd stack.Cmder) string {
	args := cmd.Args()
	if len(args) > stmtArgs {
		args = args[:stmtArgs]
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}
	return strings.Join(parts, " ")
}

func cmdsSummary(cmds []stack.Cmder) string {
	seen := make(map[string]struct{}, summaryNames)
	names := make([]string, 0, summaryNames)
	for _, cmd := range cmds {
		if len(names) >= summaryNames {
			break
		}
		name := cmd.FullName()
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}
