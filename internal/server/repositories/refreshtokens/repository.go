// Package refreshtokens stores the opaque refresh tokens handed out at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/infixtech/ixtportal/internal/server/models"
)

type Repository interface {
	// Create stores token for accountID, valid until expiresAt.
	Create(ctx context.Context, accountID string, token string, expiresAt time.Time) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error

	// DeleteByAccount revokes every token of accountID.
	DeleteByAccount(ctx context.Context, accountID string) error
}
