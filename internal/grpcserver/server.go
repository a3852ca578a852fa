package grpcserver

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"userAnalytics/internal/config"
	"userAnalytics/models"
)

// NewGRPCServer builds a gRPC server with the dashboard and health services
// registered. Health reports SERVING because the dataset is loaded before the
// server is built.
func NewGRPCServer(log *slog.Logger, users []models.EnrichedUser) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(NewUnaryLoggingInterceptor(log, healthCheckMethod)))

	RegisterDashboardServer(srv, &Server{Users: users})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, log *slog.Logger, users []models.EnrichedUser) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	if log == nil {
		log = slog.Default()
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := NewGRPCServer(log, users)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc server stopped", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

// NewUnaryLoggingInterceptor logs every unary call except the listed methods.
func NewUnaryLoggingInterceptor(log *slog.Logger, quiet ...string) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	skip := make(map[string]struct{}, len(quiet))
	for _, m := range quiet {
		skip[m] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if _, ok := skip[info.FullMethod]; ok {
			return resp, err
		}
		log.Info("grpc_request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
