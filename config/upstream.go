package config

import "time"

// UpstreamConfig points at the library platform REST API that owns all
// domain data and authentication.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream API
	// (e.g., "https://api.library.example.com").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	if u.Timeout <= 0 {
		u.Timeout = 15 * time.Second
	}
}
