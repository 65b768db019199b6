// internal/app/store/organizations/orgstore.go
package orgstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ecoecho-app/ecoecho/internal/app/system/htmlsanitize"
	"github.com/ecoecho-app/ecoecho/internal/app/system/normalize"
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
	return &Store{c: db.Collection("organizations")}
}

var (
	// ErrDuplicateOwner is returned when an owner already has an
	// organization profile. The unique owner_id index enforces one
	// profile per account.
	ErrDuplicateOwner = errors.New("this account already has an organization profile")
	errNoName         = errors.New("organization name is required")
)

// Upsert holds the editable organization fields.
type Upsert struct {
	Name        string
	Description string
	Website     string
}

// UpsertForOwner creates or replaces the owner's organization profile
// and returns the stored document.
func (s *Store) UpsertForOwner(ctx context.Context, ownerID primitive.ObjectID, upd Upsert) (*models.Organization, error) {
	name := normalize.Name(upd.Name)
	if name == "" {
		return nil, errNoName
	}

	now := time.Now()
	set := bson.M{
		"name":        name,
		"name_ci":     text.Fold(name),
		"description": htmlsanitize.Sanitize(upd.Description),
		"website":     upd.Website,
		"updated_at":  now,
	}
	setOnInsert := bson.M{
		"_id":        primitive.NewObjectID(),
		"owner_id":   ownerID,
		"created_at": now,
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var org models.Organization
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts).Decode(&org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateOwner
		}
		return nil, err
	}
	return &org, nil
}

// GetByOwner loads the organization owned by the given account.
// Returns mongo.ErrNoDocuments if the owner has none.
func (s *Store) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByID loads an organization. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

// DeleteByOwner removes the owner's organization profile.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
