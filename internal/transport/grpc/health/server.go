// Package health exposes the store health over grpc.health.v1.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported alongside the overall "" status.
const ServiceName = "catalog.v1.CatalogService"

// Checker reports whether the store is reachable.
type Checker func(ctx context.Context) error

// Server wraps a gRPC server whose health status follows a periodic store check.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	check    Checker
	interval time.Duration
	logger   *zap.Logger
}

// NewServer registers the health and reflection services on a new gRPC server.
func NewServer(check Checker, interval time.Duration, logger *zap.Logger) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	return &Server{
		grpc:     gs,
		health:   hs,
		check:    check,
		interval: interval,
		logger:   logger,
	}
}

// GRPC returns the underlying server for Serve and GracefulStop.
func (s *Server) GRPC() *grpc.Server {
	return s.grpc
}

// Watch probes the store every interval until ctx is done, then reports NOT_SERVING.
func (s *Server) Watch(ctx context.Context) {
	s.probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *Server) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.check(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("store health check failed", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
