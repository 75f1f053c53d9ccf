// Package common defines shared constants and sentinel errors used across
// the IXT accounts server and its admin tooling. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation error")
	ErrEmailTaken       = errors.New("email already registered")
	ErrAccountInactive  = errors.New("account disabled")

	// Identifier allocation errors.
	ErrInvalidRole         = errors.New("invalid role")
	ErrAllocationExhausted = errors.New("identifier allocation exhausted, please try again")
	ErrStoreUnavailable    = errors.New("account store unavailable")
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
