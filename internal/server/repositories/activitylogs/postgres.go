package activitylogs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/infixtech/ixtportal/internal/dbx"
	"github.com/infixtech/ixtportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	changes := entry.Changes
	if changes == nil {
		changes = []models.FieldChange{}
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}

	query :=
		`INSERT INTO activity_logs (actor_id, actor_role, action, resource_type, resource_id, changes, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		entry.ActorID, string(entry.ActorRole), entry.Action, entry.ResourceType,
		entry.ResourceID, string(payload), entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*models.ActivityLog, error) {
	query :=
		`SELECT id, actor_id, actor_role, action, resource_type, resource_id, changes, description, created_at
		 FROM activity_logs
		 WHERE resource_type = $1 AND resource_id = $2
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, resourceType, resourceID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ActivityLog
	for rows.Next() {
		var (
			e       models.ActivityLog
			role    string
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &role, &e.Action, &e.ResourceType,
			&e.ResourceID, &payload, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.ActorRole = models.Role(role)
		if err := json.Unmarshal(payload, &e.Changes); err != nil {
			return nil, fmt.Errorf("decode changes: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
