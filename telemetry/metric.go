package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelMetric "go.opentelemetry.io/otel/metric"
)

const meterName = "ghcopy"

const (
	MetricIssuesCreated   = "ghcopy.issues.created"
	MetricCommentsCreated = "ghcopy.comments.created"
)

// RecordCounterInt adds value to the named counter. Without a configured meter
// provider this is a no-op.
func RecordCounterInt(ctx context.Context, metricName string, value int64, attrs ...attribute.KeyValue) error {
	c, err := otel.Meter(meterName).Int64Counter(metricName)
	if err != nil {
		return fmt.Errorf("error creating %s counter: %s", metricName, err.Error())
	}
	c.Add(ctx, value, otelMetric.WithAttributes(attrs...))
	return nil
}
