// Package grpc serves rpcapi.RecipexService and the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address  string
	handlers rpcapi.RecipexServiceServer
	gate     *auth.Gate
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, h rpcapi.RecipexServiceServer, gate *auth.Gate) *GRPCServer {
	return &GRPCServer{
		address:  a,
		handlers: h,
		gate:     gate,
		logger:   l.With("module", "grpc_server"),
	}
}

// newServer builds a grpc.Server with the interceptor chain, the service and
// a health server reporting SERVING.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.accessTokenInterceptor,
		s.requestLogInterceptor,
		s.errorInterceptor,
	))

	rpcapi.RegisterRecipexServiceServer(srv, s.handlers)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(rpcapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-served:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(served)
	<-stopped
	return err
}
