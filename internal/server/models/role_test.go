package models

import (
	"errors"
	"testing"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePrefixes(t *testing.T) {
	want := map[Role]string{
		RoleParticipant: "PRIXT",
		RoleMember:      "MIXT",
		RoleManager:     "XMIXT",
		RoleAdmin:       "LIXT",
	}
	for _, r := range Roles {
		assert.Equal(t, want[r], r.Prefix(), "role %s", r)

		back, ok := RoleForPrefix(r.Prefix())
		require.True(t, ok)
		assert.Equal(t, r, back)
	}
	assert.Empty(t, Role("guest").Prefix())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Member ")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, r)

	_, err = ParseRole("superuser")
	assert.True(t, errors.Is(err, common.ErrInvalidRole))

	_, err = ParseRole("")
	assert.ErrorIs(t, err, common.ErrInvalidRole)
}
