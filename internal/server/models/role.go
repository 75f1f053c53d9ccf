package models

import (
	"fmt"
	"strings"

	"github.com/infixtech/ixtportal/internal/common"
)

// Role is an account's role. It decides the identifier prefix and which
// dashboard the account lands on.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleMember      Role = "member"
	RoleManager     Role = "manager"
	RoleAdmin       Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleParticipant, RoleMember, RoleManager, RoleAdmin}

var rolePrefixes = map[Role]string{
	RoleParticipant: "PRIXT",
	RoleMember:      "MIXT",
	RoleManager:     "XMIXT",
	RoleAdmin:       "LIXT",
}

// ParseRole maps a role tag to a Role. Tags are case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := rolePrefixes[r]
	return ok
}

// Prefix returns the identifier prefix for r, or "" for an unknown role.
func (r Role) Prefix() string {
	return rolePrefixes[r]
}

// RoleForPrefix is the inverse of Role.Prefix.
func RoleForPrefix(prefix string) (Role, bool) {
	for r, p := range rolePrefixes {
		if p == prefix {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string { return string(r) }
