package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SummaryTTL bounds how long completed-match summaries are kept.
	// Rating records never expire.
	SummaryTTL time.Duration

	// HistoryLimit caps how many match ids are kept per player
	HistoryLimit int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SummaryTTL:   30 * 24 * time.Hour,
		HistoryLimit: 100,
	}
}
