// Package grpc exposes the operational gRPC endpoint: the standard health
// service, reporting the database as the serving condition, plus reflection.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"roofbox-backend/internal/api/grpc/interceptor"
	"roofbox-backend/internal/logger"
)

// ServiceName is the health service name load balancers probe.
const ServiceName = "roofbox.Backend"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	*grpc.Server
	health *health.Server
	db     Pinger
}

func NewServer(db Pinger) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.Recovery(), interceptor.Logging()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &Server{Server: s, health: hs, db: db}
}

// CheckDatabase updates the health status from one database ping.
func (s *Server) CheckDatabase(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.Ping(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// WatchDatabase re-checks the database every interval until ctx ends.
func (s *Server) WatchDatabase(ctx context.Context, interval time.Duration) {
	s.CheckDatabase(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckDatabase(ctx)
		}
	}
}

// Shutdown marks the service as not serving and stops gracefully.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}
