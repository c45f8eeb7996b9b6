// Package stackprom exports Prometheus metrics about Redis Stack commands.
package stackprom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	stack "github.com/redis/go-redis-stack"
)

// Hook observes command latency and failures. It implements both
// stack.Hook and prometheus.Collector.
type Hook struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

var (
	_ stack.Hook           = (*Hook)(nil)
	_ prometheus.Collector = (*Hook)(nil)
)

// NewHook returns a hook whose metrics are named
// "{namespace}_{subsystem}_{metric}":
//   - commands_duration_seconds{command}
//   - commands_errors_total{command}
//
// Pipelines are observed under the command "pipeline".
func NewHook(namespace, subsystem string, constLabels prometheus.Labels) *Hook {
	return &Hook{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "commands_duration_seconds",
			Help:        "Duration of Redis Stack commands",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"command"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "commands_errors_total",
			Help:        "Number of failed Redis Stack commands",
			ConstLabels: constLabels,
		}, []string{"command"}),
	}
}

// InstrumentMetrics registers a new hook with reg and adds it to client.
func InstrumentMetrics(
	client interface{ AddHook(stack.Hook) }, reg prometheus.Registerer, namespace string,
) (*Hook, error) {
	hook := NewHook(namespace, "", nil)
	if err := reg.Register(hook); err != nil {
		return nil, err
	}
	client.AddHook(hook)
	return hook, nil
}

// Describe implements the prometheus.Collector interface.
func (h *Hook) Describe(descs chan<- *prometheus.Desc) {
	h.duration.Describe(descs)
	h.errors.Describe(descs)
}

// Collect implements the prometheus.Collector interface.
func (h *Hook) Collect(metrics chan<- prometheus.Metric) {
	h.duration.Collect(metrics)
	h.errors.Collect(metrics)
}

func (h *Hook) ProcessHook(next stack.ProcessHook) stack.ProcessHook {
	return func(ctx context.Context, cmd stack.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.observe(cmd.FullName(), start, err)
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next stack.ProcessPipelineHook) stack.ProcessPipelineHook {
	return func(ctx context.Context, cmds []stack.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.observe("pipeline", start, err)
		if err == nil {
			for _, cmd := range cmds {
				if cmd.Err() != nil {
					h.errors.WithLabelValues(cmd.FullName()).Inc()
				}
			}
		}
		return err
	}
}

func (h *Hook) observe(command string, start time.Time, err error) {
	h.duration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	if err != nil {
		h.errors.WithLabelValues(command).Inc()
	}
}
