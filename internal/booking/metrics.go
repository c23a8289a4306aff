package booking

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	AttemptsMetric = "booking.attempts"
	DurationMetric = "booking.duration"
)

// DurationBuckets are the histogram bounds, in seconds, for DurationMetric.
// They stay fine-grained below 100ms, where uncontended bookings land, and
// stop at the default booking timeout.
var DurationBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

type metrics struct {
	attempts metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(meter metric.Meter, logger *slog.Logger) *metrics {
	attempts, err := meter.Int64Counter(AttemptsMetric,
		metric.WithDescription("Booking attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		logger.Warn("failed to create booking.attempts counter", "error", err)
		attempts, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter(AttemptsMetric)
	}

	duration, err := meter.Float64Histogram(DurationMetric,
		metric.WithDescription("Time spent committing a booking"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("failed to create booking.duration histogram", "error", err)
		duration, _ = noop.NewMeterProvider().Meter(instrumentationName).Float64Histogram(DurationMetric)
	}

	return &metrics{attempts: attempts, duration: duration}
}

func (m *metrics) record(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.attempts.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
