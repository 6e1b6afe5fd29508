package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/outcome"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the response header carrying the request id.
const RequestIDHeader = "x-request-id"

var servicePrefix = "/" + rpcapi.ServiceName + "/"

// tokenFromMetadata reads the access_token key, falling back to an
// authorization bearer value.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		return auth.BearerToken(values[0])
	}
	return ""
}

// accessTokenInterceptor admits callers of RecipexService methods. The health
// service is open.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !strings.HasPrefix(info.FullMethod, servicePrefix) {
		return handler(ctx, req)
	}

	ctx, caller, err := s.gate.Admit(ctx, tokenFromMetadata(ctx))
	if err != nil {
		s.logger.Warn(ctx, "request rejected", "method", info.FullMethod, "caller", caller.Email, "error", err)
		return nil, outcome.Status(err)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	id := uuid.NewString()
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))
	ctx = logging.ContextWith(ctx, "request_id", id)

	start := time.Now()
	resp, err := handler(ctx, req)

	var caller string
	if c, ok := auth.CallerFromContext(ctx); ok {
		caller = c.Email
	}
	args := []any{
		"method", info.FullMethod,
		"caller", caller,
		"latency", time.Since(start),
		"code", status.Code(err).String(),
	}

	switch status.Code(err) {
	case codes.OK:
		s.logger.Info(ctx, "request", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "request", args...)
	default:
		s.logger.Warn(ctx, "request", args...)
	}
	return resp, err
}

// errorInterceptor turns domain errors into status errors. The cause of
// opaque failures is logged here since it never leaves the server.
func (s *GRPCServer) errorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	if _, ok := status.FromError(err); ok {
		return nil, err
	}

	serr := outcome.Status(err)
	if c := status.Code(serr); c == codes.Internal || c == codes.Unavailable {
		s.logger.Error(ctx, "request failed", "method", info.FullMethod, "error", err)
	}
	return nil, serr
}
