package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ofr3d/FADA/internal/interfaces/http/handler"
	"github.com/Ofr3d/FADA/internal/interfaces/http/middleware"
	"github.com/Ofr3d/FADA/internal/metrics"
	"github.com/Ofr3d/FADA/pkg/config"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// Router настраивает маршруты приложения
type Router struct {
	mux              *http.ServeMux
	sessionHandler   *handler.SessionHandler
	telemetryHandler *handler.TelemetryHandler
	feedbackHandler  *handler.FeedbackHandler
	reportHandler    *handler.ReportHandler
	websocketHandler *handler.WebSocketHandler
	authAPIHandler   *handler.AuthAPIHandler
	registry         *prometheus.Registry
	metrics          *metrics.Metrics
	security         config.SecurityConfig
	logger           *logger.Logger
}

// NewRouter создает новый router
func NewRouter(
	sessionHandler *handler.SessionHandler,
	telemetryHandler *handler.TelemetryHandler,
	feedbackHandler *handler.FeedbackHandler,
	reportHandler *handler.ReportHandler,
	websocketHandler *handler.WebSocketHandler,
	authAPIHandler *handler.AuthAPIHandler,
	registry *prometheus.Registry,
	appMetrics *metrics.Metrics,
	security config.SecurityConfig,
	logger *logger.Logger,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		sessionHandler:   sessionHandler,
		telemetryHandler: telemetryHandler,
		feedbackHandler:  feedbackHandler,
		reportHandler:    reportHandler,
		websocketHandler: websocketHandler,
		authAPIHandler:   authAPIHandler,
		registry:         registry,
		metrics:          appMetrics,
		security:         security,
		logger:           logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	// Health endpoints are intentionally unauthenticated for probes.
	rt.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rt.mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	rt.mux.Handle("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))

	var authFailures middleware.Counter
	var rateLimitDropped middleware.Counter
	if rt.metrics != nil {
		authFailures = rt.metrics.AuthFailures
		rateLimitDropped = rt.metrics.RateLimitDropped
	}

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Enabled:     rt.security.AuthEnabled,
		BearerToken: rt.security.AuthToken,
	}, rt.logger, authFailures)

	// WebSocket
	rt.mux.Handle("/ws", authMiddleware(http.HandlerFunc(rt.websocketHandler.HandleConnection)))

	// Auth endpoints
	rt.mux.HandleFunc("/api/v1/auth/login", rt.authAPIHandler.Login)
	rt.mux.HandleFunc("/api/v1/auth/logout", rt.authAPIHandler.Logout)
	rt.mux.HandleFunc("/api/v1/auth/status", rt.authAPIHandler.Status)

	// Session lifecycle
	rt.mux.Handle("/api/v1/session/start", authMiddleware(http.HandlerFunc(rt.sessionHandler.Start)))
	rt.mux.Handle("/api/v1/session/stop", authMiddleware(http.HandlerFunc(rt.sessionHandler.Stop)))

	// Telemetry ingestion
	rt.mux.Handle("/api/v1/telemetry/sensor", authMiddleware(http.HandlerFunc(rt.telemetryHandler.IngestSensor)))
	rt.mux.Handle("/api/v1/telemetry/printer", authMiddleware(http.HandlerFunc(rt.telemetryHandler.IngestPrinter)))
	rt.mux.Handle("/api/v1/structural", authMiddleware(http.HandlerFunc(rt.telemetryHandler.RegisterStructural)))
	rt.mux.Handle("/api/v1/visual", authMiddleware(http.HandlerFunc(rt.telemetryHandler.PushVisual)))

	// Operator feedback
	rt.mux.Handle("/api/v1/feedback", authMiddleware(http.HandlerFunc(rt.feedbackHandler.ReportOutcome)))
	rt.mux.Handle("/api/v1/feedback/reset", authMiddleware(http.HandlerFunc(rt.feedbackHandler.Reset)))

	// Status and reports
	rt.mux.Handle("/api/v1/status", authMiddleware(http.HandlerFunc(rt.reportHandler.GetStatus)))
	rt.mux.Handle("/api/v1/report/live", authMiddleware(http.HandlerFunc(rt.reportHandler.GetLiveReport)))
	rt.mux.Handle("/api/v1/report/final", authMiddleware(http.HandlerFunc(rt.reportHandler.GetFinalReport)))
	rt.mux.Handle("/api/v1/detections/stats", authMiddleware(http.HandlerFunc(rt.reportHandler.GetDetectionStats)))

	// Применяем middleware
	var h http.Handler = rt.mux
	if rt.security.RateLimitRPS > 0 {
		limiter := middleware.NewIPRateLimiter(rt.security.RateLimitRPS, rt.security.RateLimitBurst)
		h = middleware.RateLimit(limiter, rateLimitDropped)(h)
	}
	h = middleware.Compression(h)
	if rt.metrics != nil {
		h = rt.metrics.Middleware(h)
	}
	h = middleware.Logger(rt.logger)(h)
	h = middleware.Recovery(rt.logger)(h)

	return h
}
