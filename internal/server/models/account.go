// Package models defines the server-side records persisted in PostgreSQL.
package models

import "time"

// Account is a registered user of the portal.
type Account struct {
	ID       string
	Email    string
	Role     Role
	CustomID string // role-scoped human readable ID, e.g. MIXT-4821

	Name        string
	Phone       string
	DOB         string
	Institution string
	Course      string
	Year        string

	Salt         []byte
	PasswordHash []byte

	IsFirstLogin    bool
	IsActive        bool
	ProfilePhotoKey string

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount carries the caller-supplied fields for account creation.
type NewAccount struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"omitempty,ixtpassword"`
	Name        string `json:"name" validate:"required,notblank,max=120"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	DOB         string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Institution string `json:"institution" validate:"max=200"`
	Course      string `json:"course" validate:"max=200"`
	Year        string `json:"year" validate:"max=16"`
}

// AccountUpdate carries the identity fields an admin may correct by hand.
// Empty fields are left unchanged.
type AccountUpdate struct {
	CustomID   string `json:"customId" validate:"omitempty,max=16"`
	JoinedDate string `json:"joinedDate" validate:"omitempty,datetime=2006-01-02"`
}
