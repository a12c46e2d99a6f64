package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	// Application
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/application/usecase"

	// Domain
	"github.com/Ofr3d/FADA/internal/domain/service"

	// Infrastructure
	rediscache "github.com/Ofr3d/FADA/internal/infrastructure/cache/redis"
	"github.com/Ofr3d/FADA/internal/infrastructure/collector"
	natsmsg "github.com/Ofr3d/FADA/internal/infrastructure/messaging/nats"
	wsInfra "github.com/Ofr3d/FADA/internal/infrastructure/notification/websocket"
	"github.com/Ofr3d/FADA/internal/infrastructure/observability/cloudwatch"
	"github.com/Ofr3d/FADA/internal/infrastructure/persistence/postgres"
	s3storage "github.com/Ofr3d/FADA/internal/infrastructure/storage/s3"
	"github.com/Ofr3d/FADA/internal/infrastructure/structural"
	"github.com/Ofr3d/FADA/internal/infrastructure/visual"

	// Interfaces
	httpInterface "github.com/Ofr3d/FADA/internal/interfaces/http"
	"github.com/Ofr3d/FADA/internal/interfaces/http/handler"
	"github.com/Ofr3d/FADA/internal/interfaces/http/middleware"
	appmetrics "github.com/Ofr3d/FADA/internal/metrics"

	// Shared
	"github.com/Ofr3d/FADA/pkg/config"
	"github.com/Ofr3d/FADA/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	// 1. Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализируем logger
	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.Info("Starting FADA evaluator")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Dependency Injection - Infrastructure Layer

	// Postgres archive
	var archive port.DetectionArchive
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Error("Failed to connect to database", err)
			os.Exit(1)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

		if err := db.Ping(); err != nil {
			log.Error("Failed to ping database", err)
			os.Exit(1)
		}
		log.Info("Database connected successfully")

		archive = postgres.NewPostgresDetectionArchive(db)
	} else {
		log.Warn("Database disabled, detection archive is off")
	}

	// Redis cache
	var cache port.Cache
	if cfg.Redis.Enabled {
		redisCache, err := rediscache.NewRedisCache(rediscache.Options{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			TTL:          cfg.Redis.TTL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Warn("Redis unavailable, status caching disabled", "error", err.Error())
		} else {
			defer redisCache.Close()
			cache = redisCache
			log.Info("Redis cache connected")
		}
	}

	// NATS event bus
	var publisher port.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := natsmsg.NewNATSPublisher(cfg.NATS.URL, log)
		if err != nil {
			log.Warn("NATS unavailable, event publishing disabled", "error", err.Error())
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
			log.Info("NATS connected", "url", cfg.NATS.URL)
		}
	}

	// S3 report storage
	var reportStorage port.ReportStorage
	if cfg.S3.Enabled {
		storage, err := s3storage.NewReportStorage(ctx, s3storage.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
			URLMode:         s3storage.URLMode(cfg.S3.URLMode),
			PresignedTTL:    cfg.S3.PresignedTTL,
		})
		if err != nil {
			log.Error("Failed to initialize report storage", err)
			os.Exit(1)
		}
		reportStorage = storage
	}

	// CloudWatch observability
	var cwMetrics port.MetricsPublisher
	var cwLogs port.LogPublisher
	if cfg.CloudWatch.Enabled {
		metricsPublisher, err := cloudwatch.NewMetricsPublisher(ctx, cloudwatch.MetricsPublisherConfig{
			Namespace:       cfg.CloudWatch.Namespace,
			Region:          cfg.CloudWatch.Region,
			Endpoint:        cfg.CloudWatch.Endpoint,
			AccessKeyID:     cfg.CloudWatch.AccessKeyID,
			SecretAccessKey: cfg.CloudWatch.SecretAccessKey,
		})
		if err != nil {
			log.Error("Failed to initialize CloudWatch metrics publisher", err)
			os.Exit(1)
		}
		defer func() { _ = metricsPublisher.Close(context.Background()) }()
		cwMetrics = metricsPublisher

		logsPublisher, err := cloudwatch.NewLogsPublisher(ctx, cloudwatch.LogsPublisherConfig{
			LogGroupName:    cfg.CloudWatch.LogGroupName,
			LogStreamName:   cfg.CloudWatch.LogStreamName,
			Region:          cfg.CloudWatch.Region,
			Endpoint:        cfg.CloudWatch.Endpoint,
			AccessKeyID:     cfg.CloudWatch.AccessKeyID,
			SecretAccessKey: cfg.CloudWatch.SecretAccessKey,
			AutoCreate:      true,
		})
		if err != nil {
			log.Error("Failed to initialize CloudWatch logs publisher", err)
			os.Exit(1)
		}
		defer func() { _ = logsPublisher.Close(context.Background()) }()
		cwLogs = logsPublisher

		log.Info("CloudWatch observability enabled", "namespace", cfg.CloudWatch.Namespace)
	}

	// Host collector
	hostCollector := collector.NewHostCollector()

	// Collaborator registries
	structuralRegistry := structural.NewRegistry()
	visualRegistry := visual.NewRegistry()

	// WebSocket Hub
	hub := wsInfra.NewHub(log)

	// Prometheus
	registry := prometheus.NewRegistry()
	promMetrics := appmetrics.New(registry)
	hub.OnClientCountChange(func(count int) {
		promMetrics.WebsocketClients.Set(float64(count))
	})

	// 4. Dependency Injection - Domain Layer

	feedback := service.NewFeedbackTracker()
	detector := service.NewRiskDetector(feedback)
	monitor := service.NewSessionMonitor(detector, structuralRegistry, visualRegistry, service.SessionMonitorConfig{
		LayerHeight:       cfg.Monitor.LayerHeight,
		MaxExpectedHeight: cfg.Monitor.MaxExpectedHeight,
		UpdateCadence:     cfg.Monitor.UpdateCadence,
		AlertTTL:          cfg.Monitor.AlertTTL,
		EvaluationPolicy:  service.NewIntervalEvaluationPolicy(cfg.Monitor.EarlyLayers, cfg.Monitor.LayerInterval),
	})

	// 5. Dependency Injection - Application Layer (Use Cases)

	getStatusUC := usecase.NewGetStatusUseCase(monitor, hostCollector, cache, log)
	startMonitoringUC := usecase.NewStartMonitoringUseCase(monitor, hub, publisher, getStatusUC, log)
	stopMonitoringUC := usecase.NewStopMonitoringUseCase(monitor, archive, reportStorage, hub, publisher, getStatusUC, log)
	ingestSensorUC := usecase.NewIngestSensorSampleUseCase(monitor, hub, publisher, cwMetrics, cwLogs, log)
	ingestPrinterUC := usecase.NewIngestPrinterTelemetryUseCase(monitor, hub, publisher, cwMetrics, cwLogs, log)
	registerStructuralUC := usecase.NewRegisterStructuralSnapshotUseCase(structuralRegistry, log)
	pushVisualUC := usecase.NewPushVisualSignalUseCase(visualRegistry, log)
	reportOutcomeUC := usecase.NewReportOutcomeUseCase(detector, log)
	resetFeedbackUC := usecase.NewResetFeedbackUseCase(detector, log)
	getLiveReportUC := usecase.NewGetLiveReportUseCase(monitor, log)
	getFinalReportUC := usecase.NewGetFinalReportUseCase(monitor, log)
	getDetectionStatsUC := usecase.NewGetDetectionStatsUseCase(detector, log)

	// 6. Dependency Injection - Interfaces Layer (HTTP Handlers)

	authConfig := middleware.AuthConfig{
		Enabled:     cfg.Security.AuthEnabled,
		BearerToken: cfg.Security.AuthToken,
	}

	sessionHandler := handler.NewSessionHandler(startMonitoringUC, stopMonitoringUC, log)
	telemetryHandler := handler.NewTelemetryHandler(
		ingestSensorUC,
		ingestPrinterUC,
		registerStructuralUC,
		pushVisualUC,
		promMetrics,
		log,
	)
	feedbackHandler := handler.NewFeedbackHandler(reportOutcomeUC, resetFeedbackUC, log)
	reportHandler := handler.NewReportHandler(getStatusUC, getLiveReportUC, getFinalReportUC, getDetectionStatsUC, log)
	websocketHandler := handler.NewWebSocketHandler(hub, cfg.Security.AllowedOrigins, authConfig, log)
	authAPIHandler := handler.NewAuthAPIHandler(authConfig, log)

	router := httpInterface.NewRouter(
		sessionHandler,
		telemetryHandler,
		feedbackHandler,
		reportHandler,
		websocketHandler,
		authAPIHandler,
		registry,
		promMetrics,
		cfg.Security,
		log,
	)

	// 7. Запускаем фоновые процессы

	go hub.Run()

	// 8. Настраиваем HTTP сервер

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("HTTP server starting", "port", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", err)
			os.Exit(1)
		}
	}()

	// 9. Ожидаем сигнал для graceful shutdown

	<-sigChan
	log.Info("Shutdown signal received, starting graceful shutdown...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped gracefully")
}
