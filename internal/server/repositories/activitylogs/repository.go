// Package activitylogs persists the audit trail of administrative actions.
package activitylogs

import (
	"context"

	"github.com/infixtech/ixtportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	// ListByResource returns entries for one resource, newest first.
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*models.ActivityLog, error)
}
