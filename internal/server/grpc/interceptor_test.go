package grpc

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/auth"
	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/services"
)

func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:    logging.Nop(),
		jwtSecret: []byte(secret),
		accounts:  &fakeAccounts{},
		photos:    &fakePhotos{},
	}
}

func tokenContext(t *testing.T, token string) context.Context {
	t.Helper()
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func mustToken(t *testing.T, secret string, a *models.Account, ttl time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(a, []byte(secret), ttl)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return token
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: MethodRegisterParticipant}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_HealthCheck_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: healthpb.Health_Check_FullMethodName}
	h := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	if _, err := s.accessTokenInterceptor(context.Background(), nil, info, h); err != nil {
		t.Fatalf("health check rejected without token: %v", err)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: MethodAllocateIdentifier}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: MethodListAccounts}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called on invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(tokenContext(t, "not-a-valid-jwt"), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "invalid token" {
		t.Fatalf("expected 'invalid token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_WrongSecret(t *testing.T) {
	s := newTestServer("secret")
	token := mustToken(t, "other-secret", &models.Account{ID: "acc-1", Role: models.RoleAdmin}, time.Hour)

	info := &grpc.UnaryServerInfo{FullMethod: MethodListAccounts}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with a foreign signature")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(tokenContext(t, token), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	token := mustToken(t, "secret", &models.Account{ID: "acc-1", Role: models.RoleMember}, -time.Minute)

	info := &grpc.UnaryServerInfo{FullMethod: MethodGetProfile}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called on expired token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(tokenContext(t, token), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "token expired" {
		t.Fatalf("expected 'token expired', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_ValidToken_SetsActor(t *testing.T) {
	s := newTestServer("secret")
	token := mustToken(t, "secret", &models.Account{ID: "acc-1", Role: models.RoleManager}, time.Hour)

	info := &grpc.UnaryServerInfo{FullMethod: MethodAllocateIdentifier}
	var got services.Actor
	h := func(ctx context.Context, req any) (any, error) {
		a, ok := actorFromContext(ctx)
		if !ok {
			t.Fatal("actor not set in context")
		}
		got = a
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(tokenContext(t, token), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "acc-1" || got.Role != models.RoleManager {
		t.Fatalf("unexpected actor: %+v", got)
	}
}

func TestInterceptor_FirstLogin_RestrictedMethods(t *testing.T) {
	s := newTestServer("secret")
	token := mustToken(t, "secret", &models.Account{ID: "acc-1", Role: models.RoleMember, IsFirstLogin: true}, time.Hour)

	tests := []struct {
		method string
		want   codes.Code
	}{
		{MethodChangePassword, codes.OK},
		{MethodGetProfile, codes.OK},
		{MethodAllocateIdentifier, codes.PermissionDenied},
		{MethodProfilePhotoUploadURL, codes.PermissionDenied},
		{MethodSetAccountActive, codes.PermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			h := func(ctx context.Context, req any) (any, error) { return "ok", nil }
			info := &grpc.UnaryServerInfo{FullMethod: tt.method}

			_, err := s.accessTokenInterceptor(tokenContext(t, token), nil, info, h)
			if status.Code(err) != tt.want {
				t.Fatalf("expected %v, got %v (%v)", tt.want, status.Code(err), err)
			}
		})
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: MethodPing}

	wantErr := status.Error(codes.NotFound, "nope")
	h := func(ctx context.Context, req any) (any, error) { return "resp", wantErr }

	resp, err := s.loggingInterceptor(context.Background(), nil, info, h)
	if resp != "resp" || err != wantErr {
		t.Fatalf("interceptor altered result: %v, %v", resp, err)
	}
}
