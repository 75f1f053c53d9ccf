package admincli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/config"
	"github.com/infixtech/ixtportal/internal/server/identifier"
	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/repositories/repomanager"
	"github.com/infixtech/ixtportal/internal/server/services"
)

// Backend is what the commands need from the database side.
type Backend interface {
	Migrate(ctx context.Context) error
	CreateAdmin(ctx context.Context, in models.NewAccount) (*models.Account, error)
	Allocate(ctx context.Context, role models.Role) (string, error)
	ProfilePhotoUploadURL(ctx context.Context, accountID string) (key, url string, err error)
	Close() error
}

// connect is a test seam; the default opens PostgreSQL.
var connect = func(ctx context.Context, cfg *config.Config) (Backend, error) {
	return newPostgresBackend(ctx, cfg)
}

type postgresBackend struct {
	db        *sql.DB
	manager   repomanager.RepositoryManager
	allocator *identifier.Allocator
	accounts  *services.AccountService
	photos    *services.PhotoService
}

func newPostgresBackend(ctx context.Context, cfg *config.Config) (*postgresBackend, error) {
	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)
	m := repomanager.NewPostgresRepositoryManager()
	allocator := identifier.NewAllocator(m.Accounts(db), identifier.WithLogger(logger))

	return &postgresBackend{
		db:        db,
		manager:   m,
		allocator: allocator,
		accounts:  services.NewAccountService(db, m, allocator, cfg, logger),
		photos:    services.NewPhotoService(db, m, cfg, logger),
	}, nil
}

func (b *postgresBackend) Migrate(ctx context.Context) error {
	return b.manager.RunMigrations(ctx, b.db)
}

func (b *postgresBackend) CreateAdmin(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	return b.accounts.CreateAdmin(ctx, in)
}

func (b *postgresBackend) Allocate(ctx context.Context, role models.Role) (string, error) {
	return b.allocator.Allocate(ctx, role)
}

func (b *postgresBackend) ProfilePhotoUploadURL(ctx context.Context, accountID string) (string, string, error) {
	return b.photos.ProfilePhotoUploadURL(ctx, accountID)
}

func (b *postgresBackend) Close() error {
	return b.db.Close()
}
