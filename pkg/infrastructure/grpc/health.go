package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name the marketplace reports under in health checks.
const ServiceName = "marketplace"

// Checker reports whether a dependency the service needs is reachable.
type Checker func(ctx context.Context) error

type HealthServer struct {
	server  *grpc.Server
	health  *health.Server
	checker Checker
	period  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHealthServer(checker Checker, period time.Duration) *HealthServer {
	server := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	return &HealthServer{server: server, health: hs, checker: checker, period: period}
}

// Serve starts answering on listener and probing the checker until Stop.
func (s *HealthServer) Serve(listener net.Listener) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.check(ctx)
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.watch(ctx)
	}()
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.WithError(err).Error("grpc server stopped")
		}
	}()
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	if s.cancel != nil {
		s.cancel()
	}
	s.server.GracefulStop()
	s.wg.Wait()
}

func (s *HealthServer) watch(ctx context.Context) {
	if s.period <= 0 {
		return
	}
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *HealthServer) check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.checker != nil {
		if err := s.checker(ctx); err != nil {
			log.WithError(err).Warn("health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
