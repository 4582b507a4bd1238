package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/pkg/bininfo"
)

// Telemetry carries the process tracer provider. Provider is nil when tracing is disabled.
type Telemetry struct {
	Provider *tracesdk.TracerProvider
}

func (t *Telemetry) Enabled() bool {
	return t != nil && t.Provider != nil
}

// Tracing installs the global OpenTelemetry tracer provider when TracingEnabled is set.
// Exporter endpoints follow the standard OTEL_EXPORTER_OTLP_* environment variables.
func Tracing(conf *appconfig.Config, lc fx.Lifecycle) (*Telemetry, error) {
	if !conf.TracingEnabled {
		return &Telemetry{}, nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("mergington-activities"),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.String("environment", conf.AppContext.Env.String()),
		)),
	}

	for _, name := range conf.TracingExporters {
		switch name {
		case "otlp":
			exporter, err := otlptracegrpc.New(context.Background())
			if err != nil {
				return nil, err
			}
			opts = append(opts, tracesdk.WithBatcher(exporter))
		case "stdout":
			exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				return nil, err
			}
			opts = append(opts, tracesdk.WithSyncer(exporter))
		default:
			return nil, fmt.Errorf("infra: tracing: unknown exporter %q", name)
		}
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	log.Info().Strs("exporters", conf.TracingExporters).Msg("infra: tracing: enabled")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return &Telemetry{Provider: tp}, nil
}
