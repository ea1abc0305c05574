package grpc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/salim-lakhal/CSC-8603-project/pkg/observability"
)

const (
	DefaultGracePeriod      = 30 * time.Second
	DefaultForceStopTimeout = 5 * time.Second
)

// ErrForceStopTimeout is returned by Shutdown when in-flight calls did not
// unwind within the force-stop timeout.
var ErrForceStopTimeout = errors.New("grpc server did not terminate after force stop")

// ServerOptions configures optional server behaviour. The zero value is valid.
type ServerOptions struct {
	Reflection       bool
	Credentials      credentials.TransportCredentials
	Metrics          *observability.Metrics
	GracePeriod      time.Duration
	ForceStopTimeout time.Duration
}

// Server wraps the gRPC server with fraud service handlers.
type Server struct {
	address          string
	grpcServer       *grpclib.Server
	health           *health.Server
	logger           *slog.Logger
	gracePeriod      time.Duration
	forceStopTimeout time.Duration
	serving          atomic.Bool
}

// NewServer creates a new gRPC server for the fraud service.
func NewServer(handler FraudDetectionServiceServer, address string, logger *slog.Logger, opts ServerOptions) *Server {
	serverOpts := []grpclib.ServerOption{
		grpclib.StatsHandler(otelgrpc.NewServerHandler()),
		grpclib.ForceServerCodec(Codec{}),
		grpclib.WaitForHandlers(true),
		grpclib.ChainUnaryInterceptor(
			UnaryRequestIDInterceptor(),
			UnaryObservingInterceptor(logger, opts.Metrics),
			UnaryRecoveryInterceptor(logger),
		),
		grpclib.ChainStreamInterceptor(
			StreamRequestIDInterceptor(),
			StreamObservingInterceptor(logger, opts.Metrics),
			StreamRecoveryInterceptor(logger),
		),
	}

	if opts.Credentials != nil {
		serverOpts = append(serverOpts, grpclib.Creds(opts.Credentials))
		logger.Info("gRPC TLS enabled")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpclib.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	RegisterFraudDetectionServiceServer(grpcServer, handler)

	if opts.Reflection {
		reflection.Register(grpcServer)
	}

	gracePeriod := opts.GracePeriod
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	forceStopTimeout := opts.ForceStopTimeout
	if forceStopTimeout <= 0 {
		forceStopTimeout = DefaultForceStopTimeout
	}

	return &Server{
		address:          address,
		grpcServer:       grpcServer,
		health:           healthServer,
		logger:           logger,
		gracePeriod:      gracePeriod,
		forceStopTimeout: forceStopTimeout,
	}
}

// Start begins listening on the configured address and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve serves gRPC requests on lis until the server is stopped.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server starting",
		slog.String("address", lis.Addr().String()),
		slog.String("service", ServiceName),
		slog.Any("calls", []string{"AssessFraudRisk (unary)", "StreamRiskUpdates (server-streaming)"}),
	)

	s.serving.Store(true)
	err := s.grpcServer.Serve(lis)
	s.serving.Store(false)
	if err == nil || errors.Is(err, grpclib.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Serving reports whether the server is accepting calls.
func (s *Server) Serving() bool {
	return s.serving.Load()
}

// Shutdown stops accepting new calls and waits up to the grace period for
// in-flight calls to finish. Calls still running after that are cancelled,
// and Shutdown waits at most the force-stop timeout for them to unwind.
func (s *Server) Shutdown() error {
	s.logger.Info("gRPC server shutting down", slog.Duration("grace_period", s.gracePeriod))
	s.serving.Store(false)
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	grace := time.NewTimer(s.gracePeriod)
	defer grace.Stop()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	case <-grace.C:
	}

	s.logger.Warn("grace period elapsed, forcing gRPC server stop",
		slog.Duration("force_stop_timeout", s.forceStopTimeout),
	)
	go s.grpcServer.Stop()

	force := time.NewTimer(s.forceStopTimeout)
	defer force.Stop()

	select {
	case <-done:
		s.logger.Info("gRPC server force-stopped")
		return nil
	case <-force.C:
		s.logger.Error("gRPC server did not terminate within force-stop timeout")
		return ErrForceStopTimeout
	}
}
