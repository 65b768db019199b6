// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/ecoecho-app/ecoecho/internal/ai"
	accountfeature "github.com/ecoecho-app/ecoecho/internal/app/features/account"
	articlesfeature "github.com/ecoecho-app/ecoecho/internal/app/features/articles"
	authgooglefeature "github.com/ecoecho-app/ecoecho/internal/app/features/authgoogle"
	chatsfeature "github.com/ecoecho-app/ecoecho/internal/app/features/chats"
	eventsfeature "github.com/ecoecho-app/ecoecho/internal/app/features/events"
	healthfeature "github.com/ecoecho-app/ecoecho/internal/app/features/health"
	impactfeature "github.com/ecoecho-app/ecoecho/internal/app/features/impact"
	leaderboardfeature "github.com/ecoecho-app/ecoecho/internal/app/features/leaderboard"
	organizationsfeature "github.com/ecoecho-app/ecoecho/internal/app/features/organizations"
	profilefeature "github.com/ecoecho-app/ecoecho/internal/app/features/profile"
	seedfeature "github.com/ecoecho-app/ecoecho/internal/app/features/seed"
	sessionfeature "github.com/ecoecho-app/ecoecho/internal/app/features/session"
	usersfeature "github.com/ecoecho-app/ecoecho/internal/app/features/users"
	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	"github.com/ecoecho-app/ecoecho/internal/app/store/oauthstate"
	orgstore "github.com/ecoecho-app/ecoecho/internal/app/store/organizations"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EcoEcho is a JSON API: every feature
// mounts under /api except the health check and the dev-only seed
// endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// LoadSessionUser fetches fresh user data on each request, so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	users := userstore.New(db)
	events := eventstore.New(db)
	articles := articlestore.New(db)
	orgs := orgstore.New(db)
	chats := chatstore.New(db)
	states := oauthstate.New(db)

	errLog := uierrors.NewErrorLogger(logger)
	dataCache := cache.New(deps.Redis, appCfg.CacheTTL, logger)

	// Describer is nil when no API key is configured; the profile
	// feature turns that into a clean error response.
	var describer ai.Describer
	if appCfg.GenAIKey != "" {
		client, err := ai.NewClient(appCfg.GenAIEndpoint, appCfg.GenAIModel, appCfg.GenAIKey, appCfg.GenAITimeout, logger)
		if err != nil {
			logger.Error("genai client init failed", zap.Error(err))
			return nil, err
		}
		describer = client
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Session and account endpoints.
	sessionHandler := sessionfeature.NewHandler()
	r.Get("/api/session", sessionHandler.Serve)

	accountHandler := accountfeature.NewHandler(users, sessionMgr, logger, errLog)
	r.Post("/api/register", accountHandler.HandleRegister)
	r.Post("/api/login", accountHandler.HandleLogin)
	r.Post("/api/logout", accountHandler.HandleLogout)

	// Google sign-in. Mounted only when the OAuth client is configured.
	googleHandler := authgooglefeature.NewHandler(users, sessionMgr, states,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	// Profile (own account) and public user profiles.
	profileHandler := profilefeature.NewHandler(users, events, articles, chats, describer, logger, errLog)
	r.Mount("/api/profile", profilefeature.Routes(profileHandler))

	usersHandler := usersfeature.NewHandler(users, events, articles, logger, errLog)
	r.Get("/api/users/{id}", usersHandler.ServeUser)

	// Community content.
	eventsHandler := eventsfeature.NewHandler(events, logger, errLog)
	r.Mount("/api/events", eventsfeature.Routes(eventsHandler))

	articlesHandler := articlesfeature.NewHandler(articles, logger, errLog)
	r.Mount("/api/articles", articlesfeature.Routes(articlesHandler))

	orgHandler := organizationsfeature.NewHandler(orgs, logger, errLog)
	r.Mount("/api/organization", organizationsfeature.Routes(orgHandler))

	// Messaging.
	chatsHandler := chatsfeature.NewHandler(chats, users, logger, errLog)
	r.Mount("/api/chats", chatsfeature.Routes(chatsHandler))

	// Derived views.
	leaderboardHandler := leaderboardfeature.NewHandler(users, events, articles, dataCache, logger, errLog)
	r.Get("/api/leaderboard", leaderboardHandler.ServeBoard)

	impactHandler := impactfeature.NewHandler(users, events, articles, dataCache, logger, errLog)
	r.Get("/api/impact", impactHandler.ServeTotals)

	// Dev-only database seeding.
	if appCfg.SeedEnabled {
		seedHandler := seedfeature.NewHandler(users, events, articles, orgs, chats, dataCache, logger, errLog)
		r.Get("/seed", seedHandler.Serve)
		r.Post("/seed", seedHandler.Serve)
	}

	return r, nil
}
