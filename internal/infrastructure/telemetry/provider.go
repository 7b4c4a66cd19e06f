package telemetry

import (
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewTracerProvider builds the tracer provider selected by settings. The stdout exporter
// writes pretty printed spans to w. It returns nil for the "none" exporter.
func NewTracerProvider(settings *config.TelemetrySettings, w io.Writer) (*sdktrace.TracerProvider, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Exporter {
	case config.TelemetryExporterNone:
		return nil, nil
	case config.TelemetryExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout span exporter: %w", err)
		}
		res := resource.NewSchemaless(attribute.String("service.name", settings.ServiceName))
		return sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		), nil
	default:
		return nil, fmt.Errorf("unsupported telemetry exporter: %s", settings.Exporter)
	}
}

// ShutdownTracerProvider flushes and stops tp; a nil provider is ignored.
func ShutdownTracerProvider(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
