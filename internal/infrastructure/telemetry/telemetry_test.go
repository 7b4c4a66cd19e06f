//go:build unit
// +build unit

package telemetry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func runCall(h trace.CallHook, info trace.CallInfo, err error) {
	ctx, token := h.OnCallStart(context.Background(), info)
	h.OnCallEnd(ctx, token, info, err)
}

func TestPrometheusHook(t *testing.T) {
	h := NewPrometheusHook()

	runCall(h, trace.CallInfo{Seq: 1, Operation: "C_Login"}, nil)
	runCall(h, trace.CallInfo{Seq: 2, Operation: "C_Login"}, cryptoki.Status(0xA0))
	runCall(h, trace.CallInfo{Seq: 3, Operation: "C_Login"}, nil)
	runCall(h, trace.CallInfo{Seq: 4, Operation: "C_Sign"}, cryptoki.StatusBufferTooSmall)

	assert.Equal(t, 2.0, testutil.ToFloat64(h.calls.WithLabelValues("C_Login", "CKR_OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.calls.WithLabelValues("C_Login", "CKR_PIN_INCORRECT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.calls.WithLabelValues("C_Sign", "CKR_BUFFER_TOO_SMALL")))
	assert.Equal(t, 2, testutil.CollectAndCount(h.duration))
}

func TestPrometheusHook_Handler(t *testing.T) {
	h := NewPrometheusHook()
	runCall(h, trace.CallInfo{Seq: 1, Operation: "C_GetInfo"}, nil)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pkcs11_spy_calls_total{operation="C_GetInfo",status="CKR_OK"} 1`)
	assert.Contains(t, rec.Body.String(), "pkcs11_spy_call_duration_seconds")
}

func TestMetricsServer_SystemAssignedPort(t *testing.T) {
	h := NewPrometheusHook()
	runCall(h, trace.CallInfo{Seq: 1, Operation: "C_Finalize"}, nil)

	settings := &config.MetricsSettings{Address: "127.0.0.1:0", Path: "/metrics"}
	s, err := StartMetricsServer(settings, h, logger.NewNopLogger())
	require.NoError(t, err)
	defer func() { _ = s.Shutdown(context.Background()) }()
	assert.NotEqual(t, "127.0.0.1:0", s.Addr(), "the bound port is reported")

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `operation="C_Finalize"`)
}

func TestStartMetricsServer_Invalid(t *testing.T) {
	h := NewPrometheusHook()
	log := logger.NewNopLogger()

	_, err := StartMetricsServer(&config.MetricsSettings{Path: "/metrics"}, h, log)
	assert.Error(t, err, "empty address")

	_, err = StartMetricsServer(&config.MetricsSettings{Address: "127.0.0.1:0", Path: "metrics"}, h, log)
	assert.Error(t, err, "relative path")
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOtelHook_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	h := NewOtelHook(OtelConfig{TracerProvider: tp, ServiceName: "test", RecordExceptions: true})

	runCall(h, trace.CallInfo{RunID: "run", Seq: 1, Operation: "C_Initialize"}, nil)
	runCall(h, trace.CallInfo{RunID: "run", Seq: 2, Operation: "C_Login"}, cryptoki.Status(0xA0))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "pkcs11/C_Initialize", ok.Name())
	assert.Equal(t, codes.Ok, ok.Status().Code)
	seq, found := attrValue(ok.Attributes(), "pkcs11.seq")
	require.True(t, found)
	assert.Equal(t, int64(1), seq.AsInt64())
	run, found := attrValue(ok.Attributes(), "pkcs11.run_id")
	require.True(t, found)
	assert.Equal(t, "run", run.AsString())

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "CKR_PIN_INCORRECT", failed.Status().Description)
	rv, found := attrValue(failed.Attributes(), "pkcs11.rv")
	require.True(t, found)
	assert.Equal(t, int64(0xA0), rv.AsInt64())
	assert.Len(t, failed.Events(), 1, "error recorded as span event")
}

func TestOtelHook_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	h := NewOtelHook(OtelConfig{
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  mp,
		ServiceName:    "test",
	})

	runCall(h, trace.CallInfo{Seq: 1, Operation: "C_Digest"}, nil)
	runCall(h, trace.CallInfo{Seq: 2, Operation: "C_Digest"}, nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = m
	}
	require.Contains(t, names, "pkcs11.calls")
	require.Contains(t, names, "pkcs11.call.duration")

	sum, ok := names["pkcs11.calls"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func TestOtelHook_IgnoresForeignToken(t *testing.T) {
	h := NewOtelHook(DefaultOtelConfig())
	assert.NotPanics(t, func() {
		h.OnCallEnd(context.Background(), "foreign", trace.CallInfo{Operation: "C_Logout"}, nil)
	})
}

func TestNewTracerProvider(t *testing.T) {
	tp, err := NewTracerProvider(&config.TelemetrySettings{Exporter: config.TelemetryExporterNone, ServiceName: "x"}, io.Discard)
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, ShutdownTracerProvider(context.Background(), tp))

	_, err = NewTracerProvider(&config.TelemetrySettings{Exporter: "jaeger", ServiceName: "x"}, io.Discard)
	assert.Error(t, err)

	var buf bytes.Buffer
	tp, err = NewTracerProvider(&config.TelemetrySettings{Exporter: config.TelemetryExporterStdout, ServiceName: "spy"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, tp)

	h := NewOtelHook(OtelConfig{TracerProvider: tp, ServiceName: "spy"})
	runCall(h, trace.CallInfo{Seq: 1, Operation: "C_GetSlotList"}, nil)
	require.NoError(t, ShutdownTracerProvider(context.Background(), tp))

	assert.Contains(t, buf.String(), "pkcs11/C_GetSlotList")
}
