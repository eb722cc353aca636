package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// PuzzleTTL bounds how long an idle puzzle session is kept
	PuzzleTTL time.Duration
	// DailyGridTTL applies to imported daily grids, zero keeps them forever
	DailyGridTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PuzzleTTL:    24 * time.Hour,
		DailyGridTTL: 0,
	}
}
