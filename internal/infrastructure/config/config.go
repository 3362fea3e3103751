package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
}

// BackendConfig locates the case API the portal fronts.
type BackendConfig struct {
	URL            string `env:"BACKEND_URL,        default=http://localhost:4000"`
	PublicURL      string `env:"BACKEND_PUBLIC_URL"`
	TimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS, default=10"`
}

// SessionConfig shapes the session cookies.
type SessionConfig struct {
	CookieSecure bool `env:"SESSION_COOKIE_SECURE, default=false"`
	TTLHours     int  `env:"SESSION_TTL_HOURS,     default=12"`
}

func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// Development reports whether the portal runs with developer conveniences
// such as pretty logs.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
