package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/usecase"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/service"
	"github.com/salim-lakhal/CSC-8603-project/internal/infrastructure/config"
	grpcpresentation "github.com/salim-lakhal/CSC-8603-project/internal/presentation/grpc"
	"github.com/salim-lakhal/CSC-8603-project/internal/presentation/rest"
	"github.com/salim-lakhal/CSC-8603-project/pkg/observability"
	"github.com/salim-lakhal/CSC-8603-project/pkg/tlsutil"
)

const serviceName = "fraud-service"

func main() {
	if err := run(); err != nil {
		slog.Error("fraud-service exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	logger.Info("starting fraud-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"stage_delay", cfg.StageDelay,
	)

	// Initialize tracing.
	shutdownTracer := func(context.Context) error { return nil }
	if cfg.TracingEnabled() {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.OTLPInsecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			shutdownTracer = shutdown
			logger.Info("tracing enabled", "endpoint", cfg.OTLPEndpoint)
		}
	} else {
		logger.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
	}

	metrics, err := observability.NewMetrics(serviceName)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	// Wire domain services.
	ruleEngine := service.NewRuleEngine()
	estimator := service.NewEstimator()

	// Wire use cases.
	assessClaimUC := usecase.NewAssessClaim(ruleEngine)
	streamUpdatesUC := usecase.NewStreamRiskUpdates(ruleEngine, estimator, cfg.StageDelay)

	// gRPC server.
	opts := grpcpresentation.ServerOptions{
		Reflection:       cfg.Reflection,
		Metrics:          metrics,
		GracePeriod:      cfg.ShutdownGracePeriod,
		ForceStopTimeout: cfg.ForceStopTimeout,
	}
	if cfg.TLSEnabled() {
		creds, err := tlsutil.ServerCredentials(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("load TLS credentials: %w", err)
		}
		opts.Credentials = creds
	}

	grpcHandler := grpcpresentation.NewFraudServiceHandler(assessClaimUC, streamUpdatesUC, metrics, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, opts)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(logger, grpcServer.Serving, metrics.Handler())
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("fraud-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}
	cancel()

	// Graceful shutdown.
	logger.Info("shutting down fraud-service")

	if err := grpcServer.Shutdown(); err != nil {
		logger.Error("gRPC server shutdown error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown error", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", "error", err)
	}

	logger.Info("fraud-service stopped")
	return runErr
}
