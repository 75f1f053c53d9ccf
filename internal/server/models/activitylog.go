package models

import "time"

// Activity actions and resource types recorded in the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ResourceAccount = "user"
)

// FieldChange is one before/after pair inside an ActivityLog.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// ActivityLog records an administrative action.
type ActivityLog struct {
	ID           string
	ActorID      string
	ActorRole    Role
	Action       string
	ResourceType string
	ResourceID   string
	Changes      []FieldChange
	Description  string
	CreatedAt    time.Time
}
