package grpc

import (
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/infixtech/ixtportal/internal/server/models"
)

func str(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

// boolField reports the value of a bool field and whether it was set as one.
func boolField(in *structpb.Struct, key string) (value, ok bool) {
	v, ok := in.GetFields()[key].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false
	}
	return v.BoolValue, true
}

func newAccountInput(in *structpb.Struct) models.NewAccount {
	return models.NewAccount{
		Email:       str(in, "email"),
		Password:    str(in, "password"),
		Name:        str(in, "name"),
		Phone:       str(in, "phone"),
		DOB:         str(in, "dob"),
		Institution: str(in, "institution"),
		Course:      str(in, "course"),
		Year:        str(in, "year"),
	}
}

// parseRole accepts an empty role when allowEmpty is set.
func parseRole(raw string, allowEmpty bool) (models.Role, error) {
	if allowEmpty && strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParseRole(raw)
}

func accountFields(a *models.Account) map[string]any {
	m := map[string]any{
		"id":              a.ID,
		"email":           a.Email,
		"role":            string(a.Role),
		"customId":        a.CustomID,
		"name":            a.Name,
		"phone":           a.Phone,
		"dob":             a.DOB,
		"institution":     a.Institution,
		"course":          a.Course,
		"year":            a.Year,
		"isFirstLogin":    a.IsFirstLogin,
		"isActive":        a.IsActive,
		"profilePhotoKey": a.ProfilePhotoKey,
		"createdAt":       a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.LastLoginAt != nil {
		m["lastLoginAt"] = a.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return m
}

func activityFields(e *models.ActivityLog) map[string]any {
	changes := make([]any, 0, len(e.Changes))
	for _, c := range e.Changes {
		changes = append(changes, map[string]any{
			"field":    c.Field,
			"oldValue": c.OldValue,
			"newValue": c.NewValue,
		})
	}
	return map[string]any{
		"id":           e.ID,
		"actorId":      e.ActorID,
		"actorRole":    string(e.ActorRole),
		"action":       e.Action,
		"resourceType": e.ResourceType,
		"resourceId":   e.ResourceID,
		"changes":      changes,
		"description":  e.Description,
		"createdAt":    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
