// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/normalize"
	"github.com/ecoecho-app/ecoecho/internal/app/system/taxonomy"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errNoName         = errors.New("name is required")
	errNoEmail        = errors.New("email is required")
	errBadAuthMethod  = errors.New("auth method must be one of: " +
		strings.Join(inputval.AllowedAuthMethodsList(), ", "))
)

// Create inserts a new user after normalizing fields. Role falls back
// to citizen, status to active; unknown badges are dropped.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Country = normalize.Country(u.Country)
	u.Badges = taxonomy.FilterBadges(u.Badges)
	u.Status = normalize.Status(u.Status)
	if u.Status == "" {
		u.Status = "active"
	}
	u.AuthMethod = strings.ToLower(strings.TrimSpace(u.AuthMethod))
	if u.AuthMethod == "" {
		u.AuthMethod = "internal"
	}

	if u.Name == "" {
		return models.User{}, errNoName
	}
	if u.Email == "" {
		return models.User{}, errNoEmail
	}
	if !inputval.IsValidAuthMethod(u.AuthMethod) {
		return models.User{}, errBadAuthMethod
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs loads the given users. Missing ids are silently skipped;
// the result order is unspecified.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	folded := text.Fold(normalize.Email(email))
	if err := s.c.FindOne(ctx, bson.M{"email_ci": folded}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByAuthReturnID looks up a user by the OAuth subject the provider
// returned at sign-in. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByAuthReturnID(ctx context.Context, sub string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"auth_return_id": sub}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate holds the self-service editable fields.
type ProfileUpdate struct {
	Name          string
	Country       string
	ProfileImage  string
	Badges        []string
	Contributions string
}

// UpdateProfile applies a profile edit and returns the updated user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	name := normalize.Name(upd.Name)
	if name == "" {
		return nil, errNoName
	}
	set := bson.M{
		"name":          name,
		"name_ci":       text.Fold(name),
		"country":       normalize.Country(upd.Country),
		"profile_image": upd.ProfileImage,
		"badges":        taxonomy.FilterBadges(upd.Badges),
		"contributions": upd.Contributions,
		"updated_at":    time.Now(),
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetDescription stores a generated eco-profile description.
func (s *Store) SetDescription(ctx context.Context, id primitive.ObjectID, description string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"eco_profile_description": description,
		"updated_at":              time.Now(),
	}})
	return err
}

// SetEcoPoints refreshes the denormalized points total shown on the
// profile page. Ranking never reads this field.
func (s *Store) SetEcoPoints(ctx context.Context, id primitive.ObjectID, points int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"eco_points": points,
	}})
	return err
}

// SetAuthReturnID links an existing account to an OAuth subject, for
// users who registered with a password and later sign in with Google.
func (s *Store) SetAuthReturnID(ctx context.Context, id primitive.ObjectID, sub string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"auth_return_id": sub,
		"updated_at":     time.Now(),
	}})
	return err
}

// All returns every non-disabled user. The community is small enough
// that the leaderboard ranks the full set in memory.
func (s *Store) All(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": bson.M{"$ne": "disabled"}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of non-disabled users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": bson.M{"$ne": "disabled"}})
}
