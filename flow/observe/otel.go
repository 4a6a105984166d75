package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/pushflow/flow/core"
)

// InstrumentConfig holds the settings used by Instrument.
type InstrumentConfig struct {
	Attributes []attribute.KeyValue
	Context    context.Context
}

// InstrumentOption configures Instrument.
type InstrumentOption func(*InstrumentConfig)

// WithAttributes adds attributes to every measurement.
func WithAttributes(attrs ...attribute.KeyValue) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// WithContext sets the context passed to the instruments. It defaults to
// context.Background().
func WithContext(ctx context.Context) InstrumentOption {
	return func(c *InstrumentConfig) {
		if ctx != nil {
			c.Context = ctx
		}
	}
}

// Instrument returns a stream that records every invocation of s with
// OpenTelemetry instruments created from meter:
//
//	<name>.items     Int64Counter     values delivered downstream
//	<name>.runs      Int64Counter     invocations
//	<name>.stops     Int64Counter     invocations stopped by the consumer
//	<name>.duration  Float64Histogram invocation duration in seconds
//
// Item counts are added once per invocation rather than per value.
func Instrument[T any](s core.Stream[T], meter metric.Meter, name string, opts ...InstrumentOption) (core.Stream[T], error) {
	cfg := InstrumentConfig{Context: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	items, err := meter.Int64Counter(name+".items",
		metric.WithDescription("values delivered downstream"), metric.WithUnit("{item}"))
	if err != nil {
		return nil, fmt.Errorf("create %s.items counter: %w", name, err)
	}
	runs, err := meter.Int64Counter(name+".runs",
		metric.WithDescription("stream invocations"), metric.WithUnit("{run}"))
	if err != nil {
		return nil, fmt.Errorf("create %s.runs counter: %w", name, err)
	}
	stops, err := meter.Int64Counter(name+".stops",
		metric.WithDescription("invocations stopped by the consumer"), metric.WithUnit("{run}"))
	if err != nil {
		return nil, fmt.Errorf("create %s.stops counter: %w", name, err)
	}
	duration, err := meter.Float64Histogram(name+".duration",
		metric.WithDescription("invocation duration"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create %s.duration histogram: %w", name, err)
	}

	attrs := metric.WithAttributes(cfg.Attributes...)
	ctx := cfg.Context

	return func(r core.Consumer[T]) bool {
		var count int64
		stopped := false
		start := time.Now()

		runs.Add(ctx, 1, attrs)
		done := core.Observe(s, core.Hooks[T]{
			OnValue: func(T) { count++ },
			OnStop:  func(T) { stopped = true },
		})(r)

		items.Add(ctx, count, attrs)
		if stopped {
			stops.Add(ctx, 1, attrs)
		}
		duration.Record(ctx, time.Since(start).Seconds(), attrs)
		return done
	}, nil
}
