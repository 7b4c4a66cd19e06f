package telemetry

import (
	"context"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/MGTheTrain/pkcs11-spy"

// OtelConfig configures OpenTelemetry instrumentation of the spy.
type OtelConfig struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider oteltrace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// ServiceName is the pkcs11.service attribute value.
	ServiceName string
	// RecordExceptions calls RecordError on the span of failed calls.
	RecordExceptions bool
}

// DefaultOtelConfig returns an OtelConfig resolving providers from the global SDK.
func DefaultOtelConfig() OtelConfig {
	return OtelConfig{
		ServiceName:      "pkcs11-spy",
		RecordExceptions: true,
	}
}

// OtelHook creates one span per forwarded call and records call metrics.
type OtelHook struct {
	cfg               OtelConfig
	tracer            oteltrace.Tracer
	callCounter       metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

var _ trace.CallHook = (*OtelHook)(nil)

// NewOtelHook creates an OtelHook from cfg.
func NewOtelHook(cfg OtelConfig) *OtelHook {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	h := &OtelHook{
		cfg:    cfg,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
	}

	meter := cfg.MeterProvider.Meter(instrumentationName)
	h.callCounter, _ = meter.Int64Counter("pkcs11.calls",
		metric.WithUnit("{call}"),
		metric.WithDescription("Number of PKCS#11 calls"),
	)
	h.durationHistogram, _ = meter.Float64Histogram("pkcs11.call.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of PKCS#11 calls"),
	)
	return h
}

type spanToken struct {
	span      oteltrace.Span
	startTime time.Time
}

// OnCallStart starts a client span named after the operation.
func (h *OtelHook) OnCallStart(ctx context.Context, info trace.CallInfo) (context.Context, trace.HookToken) {
	attrs := []attribute.KeyValue{
		attribute.String("pkcs11.service", h.cfg.ServiceName),
		attribute.String("pkcs11.operation", info.Operation),
		attribute.Int64("pkcs11.seq", int64(info.Seq)),
	}
	if info.RunID != "" {
		attrs = append(attrs, attribute.String("pkcs11.run_id", info.RunID))
	}

	ctx, span := h.tracer.Start(ctx, "pkcs11/"+info.Operation,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attrs...),
	)
	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnCallEnd records the status and ends the span.
func (h *OtelHook) OnCallEnd(ctx context.Context, token trace.HookToken, info trace.CallInfo, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}
	defer st.span.End()

	rv := cryptoki.StatusOf(err)
	statusName := enums.Lookup(enums.Status, uint(rv))

	metricAttrs := metric.WithAttributes(
		attribute.String("pkcs11.operation", info.Operation),
		attribute.String("pkcs11.status", statusName),
	)
	if h.callCounter != nil {
		h.callCounter.Add(ctx, 1, metricAttrs)
	}
	if h.durationHistogram != nil {
		h.durationHistogram.Record(ctx, time.Since(st.startTime).Seconds(), metricAttrs)
	}

	if !st.span.IsRecording() {
		return
	}
	st.span.SetAttributes(
		attribute.Int64("pkcs11.rv", int64(rv)),
		attribute.String("pkcs11.status", statusName),
	)
	if err != nil {
		st.span.SetStatus(codes.Error, statusName)
		if h.cfg.RecordExceptions {
			st.span.RecordError(err)
		}
	} else {
		st.span.SetStatus(codes.Ok, "")
	}
}
