// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for EcoEcho.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific to
// this application: backend connection strings, external service keys,
// and domain defaults. The struct is passed to most lifecycle hooks.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: ecoecho-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks and absolute links
	BaseURL string // e.g., "https://ecoecho.app" or "http://localhost:3000"

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Text-generation service (Eco-Profile descriptions)
	GenAIEndpoint string        // base URL of the generation API
	GenAIModel    string        // model name to invoke
	GenAIKey      string        // API key; empty disables the feature
	GenAITimeout  time.Duration // per-request budget

	// Redis cache (leaderboard/impact). Empty addr disables caching.
	RedisAddr   string
	CacheTTL    time.Duration
	SeedEnabled bool // expose the unauthenticated /seed maintenance endpoint
}
