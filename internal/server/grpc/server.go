// Package grpc exposes the account services over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/services"
)

// AccountService is the slice of services.AccountService the transport uses.
type AccountService interface {
	RegisterParticipant(ctx context.Context, in models.NewAccount) (*models.Account, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*services.TokenPair, error)
	GetAccount(ctx context.Context, actor services.Actor, accountID string) (*models.Account, error)
	AllocateIdentifier(ctx context.Context, actor services.Actor, role models.Role) (string, error)
	CreateMember(ctx context.Context, actor services.Actor, in models.NewAccount) (*models.Account, string, error)
	ChangeRole(ctx context.Context, actor services.Actor, accountID string, role models.Role) (*models.Account, error)
	DeleteAccount(ctx context.Context, actor services.Actor, accountID string) error
	SetActive(ctx context.Context, actor services.Actor, accountID string, active bool) (*models.Account, error)
	UpdateAccount(ctx context.Context, actor services.Actor, accountID string, in models.AccountUpdate) (*models.Account, error)
	ListAccounts(ctx context.Context, actor services.Actor, role models.Role) ([]*models.Account, error)
	ListActivity(ctx context.Context, actor services.Actor, accountID string) ([]*models.ActivityLog, error)
}

type PhotoService interface {
	ProfilePhotoUploadURL(ctx context.Context, accountID string) (key, url string, err error)
	ProfilePhotoURL(ctx context.Context, accountID string) (string, error)
}

type GRPCServer struct {
	address   string
	accounts  AccountService
	photos    PhotoService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, accounts AccountService, photos PhotoService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		accounts:  accounts,
		photos:    photos,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	RegisterAccountServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
