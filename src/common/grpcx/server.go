package grpcx

import (
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewServer builds a gRPC server with tracing, recovery and access logging,
// and registers the health and reflection services.
func NewServer(log *logrus.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(RecoveryInterceptor(log), LoggingInterceptor(log)),
	}, opts...)
	srv := grpc.NewServer(opts...)

	hsrv := health.NewServer()
	hsrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hsrv)
	// grpcurl debugging
	reflection.Register(srv)
	return srv
}

// Serve listens on port and serves srv until ctx is cancelled, then stops
// gracefully.
func Serve(ctx context.Context, srv *grpc.Server, port string, log *logrus.Logger) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		log.Info("Gracefully shutting down...")
		srv.GracefulStop()
	}()

	log.Infof("starting grpc server at :%s", port)
	return srv.Serve(lis)
}
