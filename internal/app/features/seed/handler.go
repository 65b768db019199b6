// internal/app/features/seed/handler.go
//
// Seeds the database with a demo dataset for local development: a fixed
// cast of users across the supported countries and roles, their events
// and articles, one organization, and a sample chat. ?extra=N appends N
// generated citizens with randomized activity on top of the fixed cast.
//
// The endpoint is only mounted when seed_enabled is set; it is meant
// for dev and staging databases, never production.
package seed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/ecoecho-app/ecoecho/internal/app/features/impact"
	"github.com/ecoecho-app/ecoecho/internal/app/features/leaderboard"
	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	orgstore "github.com/ecoecho-app/ecoecho/internal/app/store/organizations"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authutil"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/countries"
	"github.com/ecoecho-app/ecoecho/internal/app/system/taxonomy"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxExtra = 500

	// Every seeded account signs in with this password.
	demoPassword = "ecoecho-demo1"
)

// Handler populates the database with demo data.
type Handler struct {
	Users    *userstore.Store
	Events   *eventstore.Store
	Articles *articlestore.Store
	Orgs     *orgstore.Store
	Chats    *chatstore.Store
	Cache    *cache.Cache
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(
	users *userstore.Store,
	events *eventstore.Store,
	articles *articlestore.Store,
	orgs *orgstore.Store,
	chats *chatstore.Store,
	c *cache.Cache,
	logger *zap.Logger,
	errLog *uierrors.ErrorLogger,
) *Handler {
	return &Handler{
		Users:    users,
		Events:   events,
		Articles: articles,
		Orgs:     orgs,
		Chats:    chats,
		Cache:    c,
		Log:      logger,
		ErrLog:   errLog,
	}
}

type summary struct {
	Batch    string `json:"batch"`
	Users    int    `json:"users"`
	Events   int    `json:"events"`
	Articles int    `json:"articles"`
	Orgs     int    `json:"organizations"`
	Chats    int    `json:"chats"`
	Messages int    `json:"messages"`
}

// Serve handles GET|POST /seed?extra=N.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	extra := 0
	if raw := query.Get(r, "extra"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxExtra {
			uierrors.RenderBadRequest(w, fmt.Sprintf("extra must be between 0 and %d", maxExtra), nil)
			return
		}
		extra = n
	}

	batch := uuid.NewString()
	h.Log.Info("seeding database", zap.String("batch", batch), zap.Int("extra", extra))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch)
	defer cancel()

	sum, err := h.seed(ctx, batch, extra)
	if err != nil {
		h.ErrLog.LogError(r, "seed", err)
		uierrors.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "seeding failed",
			"batch": batch,
		})
		return
	}

	// The fresh dataset makes cached aggregates stale immediately.
	h.Cache.Invalidate(ctx, leaderboard.CacheKey, impact.CacheKey)

	h.Log.Info("seeding complete",
		zap.String("batch", batch),
		zap.Int("users", sum.Users),
		zap.Int("events", sum.Events),
		zap.Int("articles", sum.Articles))
	uierrors.WriteJSON(w, http.StatusOK, sum)
}

type castMember struct {
	name    string
	email   string
	role    string
	country string
	badges  []string
}

// The fixed cast covers every role and leans on the supported countries.
var cast = []castMember{
	{"Giulia Verdi", "giulia@demo.ecoecho.app", models.RoleCitizen, "it", []string{taxonomy.BadgeTreePlanter}},
	{"Sven Lindqvist", "sven@demo.ecoecho.app", models.RoleCitizen, "se", []string{taxonomy.BadgeRecyclingHero}},
	{"Amina Haddad", "amina@demo.ecoecho.app", models.RoleCitizen, "lb", []string{taxonomy.BadgeCleanupCrew}},
	{"Youssef El Amrani", "youssef@demo.ecoecho.app", models.RoleCitizen, "ma", []string{taxonomy.BadgeCommunityStar}},
	{"Green Roots NGO", "roots@demo.ecoecho.app", models.RoleNGO, "nl", []string{taxonomy.BadgeTreePlanter}},
	{"Carthage High School", "carthage@demo.ecoecho.app", models.RoleSchool, "tn", []string{taxonomy.BadgeCleanupCrew}},
	{"Utrecht Municipality", "utrecht@demo.ecoecho.app", models.RoleMunicipality, "nl", nil},
}

func (h *Handler) seed(ctx context.Context, batch string, extra int) (summary, error) {
	sum := summary{Batch: batch}

	hash, err := authutil.HashPassword(demoPassword)
	if err != nil {
		return sum, fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]models.User, 0, len(cast)+extra)
	for _, m := range cast {
		u, err := h.Users.Create(ctx, models.User{
			Name:          m.name,
			Email:         m.email,
			AuthMethod:    "internal",
			PasswordHash:  &hash,
			Role:          m.role,
			Country:       m.country,
			Badges:        m.badges,
			Contributions: gofakeit.Sentence(8),
		})
		if err != nil {
			if errors.Is(err, userstore.ErrDuplicateEmail) {
				// Re-running the seed keeps the existing cast.
				existing, err := h.Users.GetByEmail(ctx, m.email)
				if err != nil {
					return sum, err
				}
				users = append(users, *existing)
				continue
			}
			return sum, fmt.Errorf("create user %s: %w", m.email, err)
		}
		users = append(users, u)
		sum.Users++
	}

	all := countries.All()
	badges := taxonomy.Badges()
	for i := 0; i < extra; i++ {
		country := all[gofakeit.Number(0, len(all)-1)].Code
		u, err := h.Users.Create(ctx, models.User{
			Name:          gofakeit.Name(),
			Email:         fmt.Sprintf("%s.%s@demo.ecoecho.app", gofakeit.Username(), batch[:8]),
			AuthMethod:    "internal",
			PasswordHash:  &hash,
			Role:          models.RoleCitizen,
			Country:       country,
			Badges:        []string{badges[gofakeit.Number(0, len(badges)-1)]},
			Contributions: gofakeit.Sentence(10),
		})
		if err != nil {
			return sum, fmt.Errorf("create extra user: %w", err)
		}
		users = append(users, u)
		sum.Users++
	}

	if err := h.seedEvents(ctx, users, &sum); err != nil {
		return sum, err
	}
	if err := h.seedArticles(ctx, users, &sum); err != nil {
		return sum, err
	}
	if err := h.seedOrganization(ctx, users, &sum); err != nil {
		return sum, err
	}
	if err := h.seedChat(ctx, users, &sum); err != nil {
		return sum, err
	}
	return sum, nil
}

func (h *Handler) seedEvents(ctx context.Context, users []models.User, sum *summary) error {
	categories := taxonomy.Categories()
	for i, u := range users {
		// Roughly half the users organize something.
		if i%2 != 0 {
			continue
		}
		start := time.Now().Add(time.Duration(gofakeit.Number(24, 24*30)) * time.Hour)
		e, err := h.Events.Create(ctx, models.Event{
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Category:    categories[gofakeit.Number(0, len(categories)-1)],
			Address:     gofakeit.Street(),
			Country:     u.Country,
			StartAt:     start,
			EndAt:       start.Add(2 * time.Hour),
			CreatedBy:   u.ID,
		})
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		sum.Events++

		// A couple of the other users join.
		joined := 0
		for _, p := range users {
			if p.ID == u.ID || joined >= 2 {
				continue
			}
			if _, err := h.Events.Join(ctx, e.ID, p.ID); err != nil {
				return fmt.Errorf("join event: %w", err)
			}
			joined++
		}
	}
	return nil
}

func (h *Handler) seedArticles(ctx context.Context, users []models.User, sum *summary) error {
	for i, u := range users {
		if i%3 != 0 {
			continue
		}
		_, err := h.Articles.Create(ctx, models.Article{
			Title:     gofakeit.Sentence(5),
			Excerpt:   gofakeit.Sentence(12),
			Content:   "<p>" + gofakeit.Paragraph(2, 4, 14, "</p><p>") + "</p>",
			Category:  "recycling",
			Author:    u.Name,
			CreatedBy: u.ID,
		})
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		sum.Articles++
	}
	return nil
}

func (h *Handler) seedOrganization(ctx context.Context, users []models.User, sum *summary) error {
	for _, u := range users {
		if u.Role != models.RoleNGO {
			continue
		}
		_, err := h.Orgs.UpsertForOwner(ctx, u.ID, orgstore.Upsert{
			Name:        u.Name,
			Description: "<p>" + gofakeit.Sentence(14) + "</p>",
			Website:     "https://roots.demo.ecoecho.app",
		})
		if err != nil {
			return fmt.Errorf("upsert organization: %w", err)
		}
		sum.Orgs++
		return nil
	}
	return nil
}

func (h *Handler) seedChat(ctx context.Context, users []models.User, sum *summary) error {
	if len(users) < 2 {
		return nil
	}
	chat, err := h.Chats.LookupOrCreate(ctx, users[0], users[1])
	if err != nil {
		return fmt.Errorf("open chat: %w", err)
	}
	sum.Chats++

	lines := []struct {
		sender primitive.ObjectID
		text   string
	}{
		{users[0].ID, "Hi! Are you coming to the cleanup this weekend?"},
		{users[1].ID, "Yes, count me in. Should I bring gloves?"},
		{users[0].ID, "Gloves and a reusable bottle. See you there!"},
	}
	for _, l := range lines {
		if _, err := h.Chats.AppendMessage(ctx, chat.ID, l.sender, l.text); err != nil {
			return fmt.Errorf("append message: %w", err)
		}
		sum.Messages++
	}
	return nil
}
