// Package accounts declares the account store used by the account service
// and by the identifier allocator.
package accounts

import (
	"context"
	"time"

	"github.com/infixtech/ixtportal/internal/server/models"
)

type Repository interface {
	// Create inserts the account and fills in its ID and timestamps.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByID and GetByEmail return common.ErrorNotFound when no row matches,
	// including for IDs that are not UUIDs. Single-row updates and Delete
	// behave the same way.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// CustomIDExists reports whether any account currently holds customID.
	CustomIDExists(ctx context.Context, customID string) (bool, error)

	UpdateRole(ctx context.Context, id string, role models.Role, customID string) error
	// UpdatePassword stores new credentials and clears the first-login flag.
	UpdatePassword(ctx context.Context, id string, salt, hash []byte) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetProfilePhoto(ctx context.Context, id string, key string) error
	SetActive(ctx context.Context, id string, active bool) error
	// UpdateIdentity overwrites the identifier and the joined date (created_at).
	UpdateIdentity(ctx context.Context, id string, customID string, joinedAt time.Time) error

	Delete(ctx context.Context, id string) error

	// ListByRole returns accounts ordered by creation time. An empty role lists all.
	ListByRole(ctx context.Context, role models.Role) ([]*models.Account, error)
}
