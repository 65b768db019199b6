// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
	"time"

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
	return &Store{c: db.Collection("articles")}
}

var errNoTitle = errors.New("title is required")

// Create inserts a new article. The HTML body is sanitized before it
// is stored so nothing downstream has to re-check it.
func (s *Store) Create(ctx context.Context, a models.Article) (models.Article, error) {
	a.ID = primitive.NewObjectID()
	a.Title = normalize.Name(a.Title)
	a.TitleCI = text.Fold(a.Title)
	a.Content = htmlsanitize.Sanitize(a.Content)
	a.Excerpt = htmlsanitize.StripTags(a.Excerpt)

	if a.Title == "" {
		return models.Article{}, errNoTitle
	}

	now := time.Now()
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// GetByID loads an article. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns articles newest first.
func (s *Store) List(ctx context.Context) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All is List; scoring reads the same set.
func (s *Store) All(ctx context.Context) ([]models.Article, error) {
	return s.List(ctx)
}

// Update holds the editable article fields.
type Update struct {
	Title    string
	Excerpt  string
	Content  string
	Image    string
	Category string
}

// UpdateByAuthor applies an edit if and only if the given user wrote
// the article. Returns mongo.ErrNoDocuments otherwise.
func (s *Store) UpdateByAuthor(ctx context.Context, id, authorID primitive.ObjectID, upd Update) (*models.Article, error) {
	title := normalize.Name(upd.Title)
	if title == "" {
		return nil, errNoTitle
	}
	set := bson.M{
		"title":      title,
		"title_ci":   text.Fold(title),
		"excerpt":    htmlsanitize.StripTags(upd.Excerpt),
		"content":    htmlsanitize.Sanitize(upd.Content),
		"image":      upd.Image,
		"category":   upd.Category,
		"updated_at": time.Now(),
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Article
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "created_by": authorID},
		bson.M{"$set": set}, after).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteByAuthor removes an article if the given user wrote it.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByAuthor(ctx context.Context, id, authorID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "created_by": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of articles, for the impact page.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
