// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID,
// and a found flag. If no user is present or the session carries a
// malformed id, it returns "visitor", "", NilObjectID, false, so
// ok=true always means a valid, authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsOrgRole reports whether the current user acts for an organization
// (NGO, school, or municipality accounts rather than individuals).
func IsOrgRole(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case models.RoleNGO, models.RoleSchool, models.RoleMunicipality:
		return true
	}
	return false
}
