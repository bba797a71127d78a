package grpc

import (
	"context"
	"path"

	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// adminMethods may only be called with an admin session.
var adminMethods = map[string]bool{
	MethodGetStats: true,
}

// accessTokenInterceptor puts the session carried in the access_token
// metadata into the context. Calls without a token run anonymously; a token
// that does not verify is rejected.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}

	if accessToken != "" {
		sess, err := s.issuer.Parse(accessToken)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		ctx = session.WithSession(ctx, sess)
	}

	if adminMethods[info.FullMethod] && !session.FromContext(ctx).IsAdmin() {
		if accessToken == "" {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return nil, status.Error(codes.PermissionDenied, "admin session required")
	}

	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if s.metrics != nil {
		s.metrics.ObserveGRPC(path.Base(info.FullMethod), status.Code(err).String())
	}
	return resp, err
}
