package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		Email:         email,
		EmailCI:       text.Fold(email),
		AuthMethod:    "internal",
		Role:          role,
		Country:       "it",
		Badges:        []string{"Tree Planter"},
		Contributions: "joined local sustainability efforts",
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCitizen creates a test user with the citizen role.
func (f *Fixtures) CreateCitizen(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleCitizen)
}

// CreateEvent creates a test event owned by the given user.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		Description:  "a test event",
		Category:     "cleanup",
		Country:      "it",
		StartAt:      now.Add(24 * time.Hour),
		EndAt:        now.Add(26 * time.Hour),
		CreatedBy:    createdBy,
		Participants: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateArticle creates a test article by the given author.
func (f *Fixtures) CreateArticle(ctx context.Context, title string, createdBy primitive.ObjectID) models.Article {
	f.t.Helper()

	now := time.Now().UTC()
	article := models.Article{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Excerpt:     "a test excerpt",
		Content:     "<p>test content</p>",
		Category:    "recycling",
		Author:      "Test Author",
		CreatedBy:   createdBy,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("articles").InsertOne(ctx, article); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return article
}
