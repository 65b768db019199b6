// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout for database and outbound
// calls in HTTP handlers. Centralizing the values keeps them consistent
// and easy to tune.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: operations touching multiple collections
//   - Batch: bulk fixture loads
package timeouts

import "time"

const (
	Ping   = 2 * time.Second
	Short  = 5 * time.Second
	Medium = 10 * time.Second
	Long   = 30 * time.Second
	Batch  = 60 * time.Second
)
