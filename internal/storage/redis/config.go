package redis

import "time"

// Config holds Redis connection and TTL settings
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int

	// TTLs. Zero means no expiry.
	GuestProfileTTL time.Duration
	RoomTTL         time.Duration
	MoveHistoryTTL  time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		PoolSize:        10,
		MinIdleConns:    2,
		GuestProfileTTL: 7 * 24 * time.Hour,
		RoomTTL:         24 * time.Hour,
		MoveHistoryTTL:  24 * time.Hour,
	}
}
