package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const DefaultMetricInterval = 2

// Telemetry owns the trace and metric providers of one invocation. A zero
// value (otel disabled) is valid and Shutdown is then a no-op.
type Telemetry struct {
	traceProvider *sdktrace.TracerProvider
	metric        *metric.MeterProvider
}

// Shutdown flushes pending spans and metrics. ghcopy exits right after a
// command, so this must run before the process ends.
func (t *Telemetry) Shutdown(ctx context.Context) {
	if t == nil {
		return
	}
	if t.traceProvider != nil {
		if err := t.traceProvider.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}
	if t.metric != nil {
		if err := t.metric.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush metrics")
		}
	}
}

func Init(ctx context.Context, serviceName, gitTag, gitCommit string, otelEnabled bool, otelHost, otelPort string) (*Telemetry, error) {
	t := &Telemetry{}
	if !otelEnabled {
		log.Debug().Msg("otel disabled")
		return t, nil
	}

	log.Info().Msg("Initializing telemetry")
	otel.SetLogger(zerologr.New(&log.Logger))

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(gitTag),
			attribute.String("SHA", gitCommit),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	conn, err := grpc.NewClient(
		fmt.Sprintf("%s:%s", otelHost, otelPort),
		grpc.WithTransportCredentials(
			insecure.NewCredentials(),
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("unable to dial grpc")
		return nil, err
	}
	log.Debug().Str("host", otelHost).Str("port", otelPort).Msg("grpc conn created")

	if err = t.initOTLPTrace(ctx, conn, res); err != nil {
		log.Error().Err(err).Msg("unable to init tracer")
		return t, err
	}

	if err = t.initOTLPMetric(ctx, conn, res); err != nil {
		log.Error().Err(err).Msg("unable to init metrics")
		return t, err
	}

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second * DefaultMetricInterval))
	if err != nil {
		log.Error().Err(err).Msg("runtime instrumentation failure")
		return t, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return t, nil
}

func (t *Telemetry) initOTLPTrace(ctx context.Context, conn *grpc.ClientConn, res *resource.Resource) error {
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithGRPCConn(conn),
	)
	if err != nil {
		return err
	}

	t.traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExporter)),
	)
	otel.SetTracerProvider(t.traceProvider)

	log.Debug().Msg("tracer initialized")
	return nil
}

func (t *Telemetry) initOTLPMetric(ctx context.Context, conn *grpc.ClientConn, res *resource.Resource) error {
	mClient, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithGRPCConn(conn),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric client: %w", err)
	}

	t.metric = metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(
			mClient,
			metric.WithInterval(DefaultMetricInterval*time.Second),
		)),
	)
	otel.SetMeterProvider(t.metric)

	log.Debug().Msg("metric provider initialized")
	return nil
}
