// Package telemetry wires OpenTelemetry tracing and metrics and the Cloud
// Profiler for the dc3 services.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/profiler"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Shutdown flushes and stops a provider.
type Shutdown func(context.Context) error

func newResource(ctx context.Context, service, version string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(service),
			semconv.ServiceVersionKey.String(version),
		),
	)
}

// InitTracing exports spans to the OTLP collector at collectorAddr and
// installs the trace-context propagator.
func InitTracing(ctx context.Context, collectorAddr, service, version string) (Shutdown, error) {
	if collectorAddr == "" {
		return nil, fmt.Errorf("collector address is not set")
	}
	conn, err := grpc.NewClient(collectorAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial collector: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := newResource(ctx, service, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.1))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}

// InitMetrics exports metrics to the OTLP collector every 15 seconds.
func InitMetrics(ctx context.Context, collectorAddr, service, version string) (Shutdown, error) {
	if collectorAddr == "" {
		return nil, fmt.Errorf("collector address is not set")
	}
	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(collectorAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := newResource(ctx, service, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Setup starts tracing and metrics and returns one function that shuts
// both down. Failures are logged and leave the no-op providers in place.
func Setup(ctx context.Context, log *logrus.Logger, collectorAddr, service, version string) func() {
	var shutdowns []Shutdown
	if sd, err := InitTracing(ctx, collectorAddr, service, version); err != nil {
		log.Warnf("warn: failed to start tracer: %+v", err)
	} else {
		shutdowns = append(shutdowns, sd)
	}
	if sd, err := InitMetrics(ctx, collectorAddr, service, version); err != nil {
		log.Warnf("warn: failed to start metric provider: %+v", err)
	} else {
		shutdowns = append(shutdowns, sd)
	}

	return func() {
		for _, sd := range shutdowns {
			if err := sd(context.Background()); err != nil {
				log.Errorf("Error shutting down telemetry provider: %v", err)
			}
		}
	}
}

// StartProfiler starts the Cloud Profiler agent, retrying with a growing
// delay. It is meant to run in its own goroutine.
func StartProfiler(log *logrus.Logger, service, version string) {
	for i := 1; i <= 3; i++ {
		if err := profiler.Start(profiler.Config{
			Service:        service,
			ServiceVersion: version,
		}); err != nil {
			log.Warnf("failed to start profiler: %+v", err)
		} else {
			log.Info("started Stackdriver profiler")
			return
		}
		d := time.Second * 10 * time.Duration(i)
		log.Infof("sleeping %v to retry initializing Stackdriver profiler", d)
		time.Sleep(d)
	}
	log.Warn("could not initialize Stackdriver profiler after retrying, giving up")
}
