// Package normalize holds small canonicalization helpers applied at
// the storage boundary. Documents coming back from the store are
// untyped at the wire level, so every value a query or filter depends
// on is normalized before it is written.
package normalize

import (
	"strings"

	"github.com/ecoecho-app/ecoecho/internal/domain/models"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role canonicalizes a role string. Unknown values fall back to
// citizen, the default for accounts created on first sign-in.
func Role(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.RoleNGO:
		return models.RoleNGO
	case models.RoleSchool:
		return models.RoleSchool
	case models.RoleMunicipality:
		return models.RoleMunicipality
	default:
		return models.RoleCitizen
	}
}

// Country lowercases and trims an ISO 3166-1 alpha-2 code. Values that
// are not two letters are returned empty rather than stored as-is.
func Country(s string) string {
	c := strings.ToLower(strings.TrimSpace(s))
	if len(c) != 2 {
		return ""
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return c
}

// Status lowercases and trims an account status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
