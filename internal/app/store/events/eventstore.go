// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("events")}
}

var (
	errNoTitle = errors.New("title is required")

	// ErrCreatorJoin is returned when an event's creator tries to join
	// their own event. Creation already earns the organizer points.
	ErrCreatorJoin = errors.New("the event creator is already part of the event")
)

// Create inserts a new event. The creator never appears in the
// participants array; organizing and attending are scored separately.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Title = normalize.Name(e.Title)
	e.TitleCI = text.Fold(e.Title)
	e.Category = taxonomy.Category(e.Category)
	e.Country = normalize.Country(e.Country)
	e.Participants = []primitive.ObjectID{}

	if e.Title == "" {
		return models.Event{}, errNoTitle
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListFilter narrows the event listing. Zero values mean no filter.
type ListFilter struct {
	Category string
	Country  string
}

// List returns events newest-start first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Event, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = taxonomy.Category(f.Category)
	}
	if f.Country != "" {
		filter["country"] = normalize.Country(f.Country)
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All returns every event, for scoring runs.
func (s *Store) All(ctx context.Context) ([]models.Event, error) {
	return s.List(ctx, ListFilter{})
}

// Update holds the editable event fields.
type Update struct {
	Title        string
	Description  string
	Category     string
	Location     *models.GeoPoint
	Address      string
	Country      string
	StartAt      time.Time
	EndAt        time.Time
	Cost         int
	Impact       models.EventImpact
	BeforePhotos []string
	AfterPhotos  []string
}

// UpdateByCreator applies an edit if and only if the given user
// created the event. Returns mongo.ErrNoDocuments otherwise.
func (s *Store) UpdateByCreator(ctx context.Context, id, creatorID primitive.ObjectID, upd Update) (*models.Event, error) {
	title := normalize.Name(upd.Title)
	if title == "" {
		return nil, errNoTitle
	}
	set := bson.M{
		"title":         title,
		"title_ci":      text.Fold(title),
		"description":   upd.Description,
		"category":      taxonomy.Category(upd.Category),
		"location":      upd.Location,
		"address":       upd.Address,
		"country":       normalize.Country(upd.Country),
		"start_at":      upd.StartAt,
		"end_at":        upd.EndAt,
		"cost":          upd.Cost,
		"impact":        upd.Impact,
		"before_photos": upd.BeforePhotos,
		"after_photos":  upd.AfterPhotos,
		"updated_at":    time.Now(),
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Event
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "created_by": creatorID},
		bson.M{"$set": set}, after).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteByCreator removes an event if the given user created it.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByCreator(ctx context.Context, id, creatorID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "created_by": creatorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Join adds the user to the participants array and returns the
// refreshed event. Joining twice is a no-op; the creator is rejected.
func (s *Store) Join(ctx context.Context, id, userID primitive.ObjectID) (*models.Event, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CreatedBy == userID {
		return nil, ErrCreatorJoin
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Leave removes the user from the participants array and returns the
// refreshed event. Leaving an event never joined is a no-op.
func (s *Store) Leave(ctx context.Context, id, userID primitive.ObjectID) (*models.Event, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"participants": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Count returns the total number of events, for the impact page.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
