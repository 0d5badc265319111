package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Instrument names registered by Meter.
const (
	MetricStages  = "chain.stages"
	MetricErrors  = "chain.errors"
	MetricRows    = "chain.rows"
	MetricElapsed = "chain.stage.duration"
)

// Meter returns hooks that record every stage on OpenTelemetry instruments
// created from meter. Each measurement carries an "op" attribute.
func Meter(meter metric.Meter) (core.Hooks, error) {
	stages, err := meter.Int64Counter(MetricStages,
		metric.WithDescription("pipeline operations run"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("create %s counter: %w", MetricStages, err)
	}
	failures, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("pipeline operations that failed"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("create %s counter: %w", MetricErrors, err)
	}
	rows, err := meter.Int64Histogram(MetricRows,
		metric.WithDescription("elements produced by an operation"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("create %s histogram: %w", MetricRows, err)
	}
	elapsed, err := meter.Float64Histogram(MetricElapsed,
		metric.WithDescription("time spent in an operation"),
		metric.WithUnit("ms"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("create %s histogram: %w", MetricElapsed, err)
	}

	ctx := context.Background()
	return core.Hooks{
		OnStage: func(ev core.StageEvent) {
			attrs := metric.WithAttributes(attribute.String("op", ev.Op))
			stages.Add(ctx, 1, attrs)
			rows.Record(ctx, int64(ev.Out), attrs)
			elapsed.Record(ctx, float64(ev.Elapsed.Microseconds())/1000, attrs)
		},
		OnError: func(op string, _ error) {
			failures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
		},
	}, nil
}
