package articlestore_test

import (
	"testing"
	"time"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_SanitizesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.Article{
		Title:     "Composting 101",
		Excerpt:   "<em>Start</em> composting",
		Content:   "<p>Layer greens and browns.</p><script>steal()</script>",
		Author:    "Maya",
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Content != "<p>Layer greens and browns.</p>" {
		t.Errorf("content not sanitized: %q", created.Content)
	}
	if created.Excerpt != "Start composting" {
		t.Errorf("excerpt should be plain text: %q", created.Excerpt)
	}
	if created.PublishedAt.IsZero() {
		t.Error("published_at should default to now")
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx := testutil.TestContext(t)

	author := primitive.NewObjectID()
	now := time.Now()
	for _, spec := range []struct {
		title string
		pub   time.Time
	}{
		{"Older", now.Add(-48 * time.Hour)},
		{"Newer", now.Add(-1 * time.Hour)},
	} {
		_, err := store.Create(ctx, models.Article{
			Title:       spec.title,
			Content:     "<p>body</p>",
			CreatedBy:   author,
			PublishedAt: spec.pub,
		})
		if err != nil {
			t.Fatalf("Create %q: %v", spec.title, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d articles, want 2", len(list))
	}
	if list[0].Title != "Newer" {
		t.Errorf("expected newest first, got %q", list[0].Title)
	}
}

func TestUpdateAndDeleteByAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx := testutil.TestContext(t)

	fx := testutil.NewFixtures(t, db)
	author := fx.CreateCitizen(ctx, "Author", "author@example.com")
	stranger := fx.CreateCitizen(ctx, "Stranger", "stranger@example.com")
	article := fx.CreateArticle(ctx, "Original", author.ID)

	upd := articlestore.Update{Title: "Revised", Content: "<p>new</p>"}

	if _, err := store.UpdateByAuthor(ctx, article.ID, stranger.ID, upd); err != mongo.ErrNoDocuments {
		t.Errorf("non-author update: expected ErrNoDocuments, got %v", err)
	}

	updated, err := store.UpdateByAuthor(ctx, article.ID, author.ID, upd)
	if err != nil {
		t.Fatalf("UpdateByAuthor: %v", err)
	}
	if updated.Title != "Revised" {
		t.Errorf("title = %q", updated.Title)
	}

	if n, err := store.DeleteByAuthor(ctx, article.ID, stranger.ID); err != nil || n != 0 {
		t.Errorf("non-author delete: n=%d err=%v", n, err)
	}
	if n, err := store.DeleteByAuthor(ctx, article.ID, author.ID); err != nil || n != 1 {
		t.Errorf("author delete: n=%d err=%v", n, err)
	}
}
