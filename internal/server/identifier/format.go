package identifier

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/server/models"
)

var pattern = regexp.MustCompile(`^(PRIXT|MIXT|XMIXT|LIXT)-(\d{4})$`)

// Format builds "<prefix>-<n>" with n zero padded to four digits.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// Parse splits an identifier into the role its prefix encodes and its number.
func Parse(id string) (models.Role, int, error) {
	m := pattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", common.ErrMalformedIdentifier, id)
	}
	// the pattern admits only known prefixes and exactly four digits, so
	// neither lookup below can fail
	role, _ := models.RoleForPrefix(m[1])
	n, _ := strconv.Atoi(m[2])
	return role, n, nil
}
