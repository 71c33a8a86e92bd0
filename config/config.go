package config

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Placeholder defaults double as the "not configured" sentinel: a deploy
// that never sets the Supabase variables runs in degraded mode instead of
// failing at startup.
const (
	PlaceholderSupabaseURL = "https://placeholder.supabase.co"
	PlaceholderAnonKey     = "placeholder-anon-key"
)

type Config struct {
	AppName  string `env:"PROFILE_APP_NAME" envDefault:"profile-service"`
	AppEnv   string `env:"PROFILE_APP_ENV" envDefault:"local"`
	HTTPHost string `env:"PROFILE_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort string `env:"PROFILE_HTTP_PORT" envDefault:"8080"`

	SupabaseURL     string `env:"SUPABASE_URL" envDefault:"https://placeholder.supabase.co"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY" envDefault:"placeholder-anon-key"`
	CookiePrefix    string `env:"SUPABASE_COOKIE_PREFIX" envDefault:"supabase"`
	AppURL          string `env:"APP_URL" envDefault:"http://localhost:3000"`

	AvatarBucket    string        `env:"AVATAR_BUCKET" envDefault:"avatars"`
	SignedURLTTL    time.Duration `env:"AVATAR_SIGNED_URL_TTL" envDefault:"1h"`
	SupabaseTimeout time.Duration `env:"SUPABASE_HTTP_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// IsConfigured reports whether the Supabase backend is reachable by
// design. Both values must be present and differ from the placeholders.
func (c *Config) IsConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != "" &&
		c.SupabaseURL != PlaceholderSupabaseURL &&
		c.SupabaseAnonKey != PlaceholderAnonKey
}

func (c *Config) AccessTokenCookie() string {
	return c.CookiePrefix + "-access-token"
}

func (c *Config) RefreshTokenCookie() string {
	return c.CookiePrefix + "-refresh-token"
}

// CORSOrigins splits APP_URL on commas and strips trailing slashes so a
// single variable can carry every allowed origin.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, p := range strings.Split(c.AppURL, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
