// Package health reports service readiness over the standard gRPC health protocol.
package health

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/todo-tracker/internal/logger"
)

// PingFunc checks that a dependency is reachable.
type PingFunc func(ctx context.Context) error

// Dependency is a named downstream service.
type Dependency struct {
	Name string
	Ping PingFunc
}

// Checker probes the service dependencies and publishes the overall status
// on a grpc health server.
type Checker struct {
	server *health.Server
	deps   []Dependency
}

// NewChecker creates a Checker for the dependencies, probed in order. The status starts as NOT_SERVING.
func NewChecker(deps ...Dependency) *Checker {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{server: srv, deps: deps}
}

// Server returns the underlying health server.
func (c *Checker) Server() *health.Server {
	return c.server
}

// Check pings every dependency once and updates the status. It returns
// the name of the first failed dependency, or "" when all are up.
func (c *Checker) Check(ctx context.Context) string {
	for _, dep := range c.deps {
		if err := dep.Ping(ctx); err != nil {
			logger.Log.Warnw("dependency unhealthy", "dependency", dep.Name, "error", err)
			c.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return dep.Name
		}
	}
	c.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return ""
}

// Run checks the dependencies every interval until ctx is done.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Serve registers the health service on a new gRPC server and serves it on lis.
// It blocks until the server stops.
func (c *Checker) Serve(grpcServer *grpc.Server, lis net.Listener) error {
	healthpb.RegisterHealthServer(grpcServer, c.server)
	logger.Log.Infow("gRPC health server listening", "addr", lis.Addr().String())
	return grpcServer.Serve(lis)
}
