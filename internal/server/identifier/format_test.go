package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/server/models"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "PRIXT-1234", Format("PRIXT", 1234))
	assert.Equal(t, "MIXT-0007", Format("MIXT", 7))
}

func TestParse(t *testing.T) {
	tests := []struct {
		id   string
		role models.Role
		n    int
	}{
		{"PRIXT-1234", models.RoleParticipant, 1234},
		{"MIXT-1000", models.RoleMember, 1000},
		{"XMIXT-9999", models.RoleManager, 9999},
		{"LIXT-5050", models.RoleAdmin, 5050},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			role, n, err := Parse(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.role, role)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, id := range []string{"", "PRIXT-123", "PRIXT-12345", "prixt-1234", "ABC-1234", "MIXT1234", " LIXT-1234"} {
		_, _, err := Parse(id)
		assert.ErrorIs(t, err, common.ErrMalformedIdentifier, id)
	}
}

// The pattern and the role prefix table must agree, or Parse would return
// an empty role for an identifier it accepted.
func TestParse_PatternMatchesRolePrefixes(t *testing.T) {
	for _, role := range models.Roles {
		t.Run(string(role), func(t *testing.T) {
			got, n, err := Parse(Format(role.Prefix(), 1000))
			require.NoError(t, err)
			assert.Equal(t, role, got)
			assert.Equal(t, 1000, n)
		})
	}
}
