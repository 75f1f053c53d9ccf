package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/server/auth"
	"github.com/infixtech/ixtportal/internal/server/services"
)

type ctxKey string

const actorKey ctxKey = "actor"

// publicMethods need no access token. The standard health check is one of
// them so load balancers can poll it.
var publicMethods = map[string]bool{
	MethodPing:                           true,
	MethodRegisterParticipant:            true,
	MethodLogin:                          true,
	MethodRefreshToken:                   true,
	healthpb.Health_Check_FullMethodName: true,
}

// firstLoginMethods are all a session still holding a temporary password
// may call.
var firstLoginMethods = map[string]bool{
	MethodChangePassword: true,
	MethodGetProfile:     true,
}

func withActor(ctx context.Context, a services.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func actorFromContext(ctx context.Context) (services.Actor, bool) {
	a, ok := ctx.Value(actorKey).(services.Actor)
	return a, ok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if claims.FirstLogin && !firstLoginMethods[info.FullMethod] {
		return nil, status.Error(codes.PermissionDenied, "password change required")
	}

	ctx = withActor(ctx, services.Actor{ID: claims.AccountID, Role: claims.Role})

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
