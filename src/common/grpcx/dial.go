package grpcx

import (
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial creates a client connection that speaks the JSON codec. The
// connection is established lazily on the first call.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "grpc: failed to connect %s", addr)
	}
	return conn, nil
}

// MustDial is Dial that panics on error, for service start-up.
func MustDial(addr string, opts ...grpc.DialOption) *grpc.ClientConn {
	conn, err := Dial(addr, opts...)
	if err != nil {
		panic(err)
	}
	return conn
}
