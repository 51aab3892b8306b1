package health

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func status(t *testing.T, c *Checker) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := c.Server().Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestChecker_Check(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	redisUp := true
	c := NewChecker(
		Dependency{Name: "postgres", Ping: db.PingContext},
		Dependency{Name: "redis", Ping: func(context.Context) error {
			if redisUp {
				return nil
			}
			return errors.New("connection refused")
		}},
	)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c))

	mock.ExpectPing()
	assert.Equal(t, "", c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, c))

	redisUp = false
	mock.ExpectPing()
	assert.Equal(t, "redis", c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c))

	redisUp = true
	mock.ExpectPing().WillReturnError(errors.New("db down"))
	assert.Equal(t, "postgres", c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChecker_ServeOverGRPC(t *testing.T) {
	c := NewChecker(Dependency{Name: "noop", Ping: func(context.Context) error { return nil }})
	c.Check(context.Background())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	go func() { _ = c.Serve(srv, lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestChecker_RunStopsWithContext(t *testing.T) {
	c := NewChecker(Dependency{Name: "noop", Ping: func(context.Context) error { return nil }})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := c.Server().Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c))
}
