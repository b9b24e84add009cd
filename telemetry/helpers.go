package telemetry

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func SetError(span trace.Span, err error, event string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, event)
}
