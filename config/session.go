package config

import "time"

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// SessionConfig controls the browser session lifecycle.
type SessionConfig struct {
	// TTL bounds how long a browser session may live before the user
	// must sign in again.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// RevalidateAfter is how long a resolved identity is trusted before
	// it is confirmed against the upstream API again.
	RevalidateAfter time.Duration `env:"REVALIDATE_AFTER" envDefault:"5m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.RevalidateAfter <= 0 {
		s.RevalidateAfter = 5 * time.Minute
	}
	if s.RevalidateAfter > s.TTL {
		s.RevalidateAfter = s.TTL
	}
}
