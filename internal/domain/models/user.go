// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Every account is one of these; there is no admin tier.
const (
	RoleCitizen      = "citizen"
	RoleNGO          = "ngo"
	RoleSchool       = "school"
	RoleMunicipality = "municipality"
)

// User represents a community member.
//
// EcoPoints is a stored convenience counter only; ranking always uses
// the score computed from activity records (see domain/scoring).
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"-"`
	AuthMethod string             `bson:"auth_method" json:"-"` // internal | google
	// AuthReturnID stores the identity provider's subject (Google user ID).
	AuthReturnID *string `bson:"auth_return_id,omitempty" json:"-"`
	PasswordHash *string `bson:"password_hash,omitempty" json:"-"`

	Role         string   `bson:"role" json:"role"` // citizen | ngo | school | municipality
	Country      string   `bson:"country" json:"country"`
	ProfileImage string   `bson:"profile_image" json:"profileImage"`
	Badges       []string `bson:"badges" json:"badges"`
	// Contributions is the user's own free-text summary of their work.
	Contributions string `bson:"contributions" json:"contributions"`
	// EcoProfileDescription is the AI-generated profile blurb.
	EcoProfileDescription string `bson:"eco_profile_description,omitempty" json:"ecoProfileDescription,omitempty"`
	EcoPoints             int    `bson:"eco_points" json:"ecoPoints"`

	Status    string    `bson:"status,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the subset of User exposed on public profile endpoints.
type PublicUser struct {
	ID                    primitive.ObjectID `json:"id"`
	Name                  string             `json:"name"`
	Role                  string             `json:"role"`
	Country               string             `json:"country"`
	ProfileImage          string             `json:"profileImage"`
	Badges                []string           `json:"badges"`
	Contributions         string             `json:"contributions"`
	EcoProfileDescription string             `json:"ecoProfileDescription,omitempty"`
	EcoPoints             int                `json:"ecoPoints"`
}

// Public strips the private fields from a User.
func (u User) Public() PublicUser {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return PublicUser{
		ID:                    u.ID,
		Name:                  u.Name,
		Role:                  u.Role,
		Country:               u.Country,
		ProfileImage:          u.ProfileImage,
		Badges:                badges,
		Contributions:         u.Contributions,
		EcoProfileDescription: u.EcoProfileDescription,
		EcoPoints:             u.EcoPoints,
	}
}
