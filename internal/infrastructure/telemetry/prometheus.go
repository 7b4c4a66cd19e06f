package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "pkcs11_spy"

// PrometheusHook counts forwarded calls and observes their duration. It owns its
// registry so several spies in one process do not collide on the default registerer.
type PrometheusHook struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ trace.CallHook = (*PrometheusHook)(nil)

// NewPrometheusHook creates a hook with a fresh registry.
func NewPrometheusHook() *PrometheusHook {
	h := &PrometheusHook{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "calls_total",
				Help:      "Total number of PKCS#11 calls forwarded to the wrapped module",
			},
			[]string{"operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "call_duration_seconds",
				Help:      "Duration of PKCS#11 calls in the wrapped module",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"operation"},
		),
	}
	h.registry.MustRegister(h.calls, h.duration)
	return h
}

type promToken struct {
	start time.Time
}

// OnCallStart records the start time.
func (h *PrometheusHook) OnCallStart(ctx context.Context, _ trace.CallInfo) (context.Context, trace.HookToken) {
	return ctx, &promToken{start: time.Now()}
}

// OnCallEnd counts the call under its status name and observes its duration.
func (h *PrometheusHook) OnCallEnd(_ context.Context, token trace.HookToken, info trace.CallInfo, err error) {
	status := enums.Lookup(enums.Status, uint(cryptoki.StatusOf(err)))
	h.calls.WithLabelValues(info.Operation, status).Inc()

	if t, ok := token.(*promToken); ok {
		h.duration.WithLabelValues(info.Operation).Observe(time.Since(t.start).Seconds())
	}
}

// Registry returns the registry holding the spy metrics.
func (h *PrometheusHook) Registry() *prometheus.Registry {
	return h.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (h *PrometheusHook) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}
