package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles prometheus collectors used by the evaluator API.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	SensorSamplesTotal *prometheus.CounterVec
	PrinterUpdates     prometheus.Counter
	EvaluationsTotal   prometheus.Counter
	AlertsTotal        *prometheus.CounterVec
	InterventionsTotal prometheus.Counter
	AuthFailures       prometheus.Counter
	RateLimitDropped   prometheus.Counter
	WebsocketClients   prometheus.Gauge
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fada_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fada_request_duration_seconds",
			Help:    "Request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		SensorSamplesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fada_sensor_samples_total",
			Help: "Total number of sensor samples ingested, by channel.",
		}, []string{"channel"}),
		PrinterUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fada_printer_updates_total",
			Help: "Total number of printer telemetry updates ingested.",
		}),
		EvaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fada_evaluations_total",
			Help: "Total number of risk evaluations performed.",
		}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fada_alerts_total",
			Help: "Total number of alerts raised, by severity.",
		}, []string{"severity"}),
		InterventionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fada_interventions_total",
			Help: "Total number of immediate intervention recommendations.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fada_auth_failures_total",
			Help: "Total number of auth failures.",
		}),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fada_ratelimit_dropped_total",
			Help: "Total number of requests dropped by rate limiter.",
		}),
		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fada_websocket_clients",
			Help: "Current number of connected websocket clients.",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.SensorSamplesTotal,
		m.PrinterUpdates,
		m.EvaluationsTotal,
		m.AlertsTotal,
		m.InterventionsTotal,
		m.AuthFailures,
		m.RateLimitDropped,
		m.WebsocketClients,
	)

	return m
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		route := normalizeRoute(r.URL.Path)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
	})
}

func normalizeRoute(path string) string {
	switch {
	case path == "/ws":
		return "/ws"
	case path == "/api/v1/telemetry" || hasPrefix(path, "/api/v1/telemetry/"):
		return "/api/v1/telemetry/*"
	case path == "/api/v1/session" || hasPrefix(path, "/api/v1/session/"):
		return "/api/v1/session/*"
	case path == "/api/v1" || hasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	case path == "/api" || hasPrefix(path, "/api/"):
		return "/api/*"
	default:
		return "other"
	}
}

func hasPrefix(value, prefix string) bool {
	if len(value) < len(prefix) {
		return false
	}
	return value[:len(prefix)] == prefix
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Hijack passes websocket upgrades through wrapped ResponseWriter.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Flush keeps streaming behavior for handlers that require it.
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Push proxies HTTP/2 server push when available.
func (rw *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := rw.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
