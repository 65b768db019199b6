// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.GenAIKey == "" {
		logger.Warn("genai_key not set; profile description generation is disabled")
	}
	if appCfg.SeedEnabled {
		logger.Warn("seed endpoint enabled; /seed will accept unauthenticated requests")
	}
	return nil
}
