// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EcoEcho.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: ECOECHO_MONGO_URI, ECOECHO_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ecoecho", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "ecoecho-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Text-generation service for Eco-Profile descriptions
	{Name: "genai_endpoint", Default: "https://generativelanguage.googleapis.com", Desc: "Text-generation API base URL"},
	{Name: "genai_model", Default: "gemini-2.0-flash", Desc: "Text-generation model name"},
	{Name: "genai_key", Default: "", Desc: "Text-generation API key (empty disables profile description generation)"},
	{Name: "genai_timeout", Default: "20s", Desc: "Per-request budget for text generation"},

	// Leaderboard/impact caching
	{Name: "redis_addr", Default: "", Desc: "Redis address for leaderboard caching (empty disables cache)"},
	{Name: "cache_ttl", Default: "30s", Desc: "TTL for cached leaderboard and impact responses"},

	// Maintenance
	{Name: "seed_enabled", Default: false, Desc: "Expose the unauthenticated /seed fixture-loading endpoint"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, ECOECHO_* for app),
// and command-line flags, merging with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ECOECHO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		BaseURL: appValues.String("base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		GenAIEndpoint: appValues.String("genai_endpoint"),
		GenAIModel:    appValues.String("genai_model"),
		GenAIKey:      appValues.String("genai_key"),
		GenAITimeout:  appValues.Duration("genai_timeout", 20*time.Second),

		RedisAddr:   appValues.String("redis_addr"),
		CacheTTL:    appValues.Duration("cache_ttl", 30*time.Second),
		SeedEnabled: appValues.Bool("seed_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// EcoEcho validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.GenAIKey != "" && appCfg.GenAIModel == "" {
		return fmt.Errorf("genai_key is set but genai_model is empty")
	}

	return nil
}
