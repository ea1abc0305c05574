package grpc

import (
	"context"
	"log/slog"
	"path"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/salim-lakhal/CSC-8603-project/pkg/observability"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-request-id"

type requestIDContextKey struct{}

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// ensureRequestID reuses the caller's request ID or mints a new one.
func ensureRequestID(ctx context.Context) (context.Context, string) {
	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			requestID = values[0]
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID), requestID
}

// UnaryRequestIDInterceptor attaches a request ID to unary calls and echoes it in the response header.
func UnaryRequestIDInterceptor() grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, _ *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		ctx, requestID := ensureRequestID(ctx)
		if err := grpclib.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(ctx, req)
	}
}

// StreamRequestIDInterceptor attaches a request ID to streaming calls and echoes it in the response header.
func StreamRequestIDInterceptor() grpclib.StreamServerInterceptor {
	return func(srv interface{}, stream grpclib.ServerStream, _ *grpclib.StreamServerInfo, handler grpclib.StreamHandler) error {
		ctx, requestID := ensureRequestID(stream.Context())
		if err := stream.SetHeader(metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(srv, &contextStream{ServerStream: stream, ctx: ctx})
	}
}

// UnaryObservingInterceptor logs and measures every unary call.
func UnaryObservingInterceptor(logger *slog.Logger, metrics *observability.Metrics) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observe(ctx, logger, metrics, info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// StreamObservingInterceptor logs and measures every streaming call.
func StreamObservingInterceptor(logger *slog.Logger, metrics *observability.Metrics) grpclib.StreamServerInterceptor {
	return func(srv interface{}, stream grpclib.ServerStream, info *grpclib.StreamServerInfo, handler grpclib.StreamHandler) error {
		start := time.Now()
		err := handler(srv, stream)
		observe(stream.Context(), logger, metrics, info.FullMethod, err, time.Since(start))
		return err
	}
}

func observe(ctx context.Context, logger *slog.Logger, metrics *observability.Metrics, fullMethod string, err error, elapsed time.Duration) {
	method := path.Base(fullMethod)
	code := status.Code(err)
	metrics.RecordCall(ctx, method, code.String(), elapsed)
	logger.Debug("rpc finished",
		slog.String("method", method),
		slog.String("code", code.String()),
		slog.Duration("duration", elapsed),
		slog.String("request_id", RequestIDFromContext(ctx)),
	)
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func UnaryRecoveryInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, logger, info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor turns a handler panic into codes.Internal.
func StreamRecoveryInterceptor(logger *slog.Logger) grpclib.StreamServerInterceptor {
	return func(srv interface{}, stream grpclib.ServerStream, info *grpclib.StreamServerInfo, handler grpclib.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(stream.Context(), logger, info.FullMethod, r)
			}
		}()
		return handler(srv, stream)
	}
}

func recovered(ctx context.Context, logger *slog.Logger, fullMethod string, r interface{}) error {
	logger.Error("panic in rpc handler",
		slog.String("method", path.Base(fullMethod)),
		slog.String("request_id", RequestIDFromContext(ctx)),
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())),
	)
	return status.Errorf(codes.Internal, "internal error: %v", r)
}

// contextStream overrides the context of a server stream.
type contextStream struct {
	grpclib.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}
