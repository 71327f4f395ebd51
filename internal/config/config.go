package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultTranslateEndpoint is the Google Cloud Translate v2 REST endpoint.
const DefaultTranslateEndpoint = "https://translation.googleapis.com/language/translate/v2"

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	GoogleAPIKey      string        `envconfig:"GOOGLE_API_KEY" required:"true"`
	TranslateEndpoint string        `envconfig:"GOOGLE_TRANSLATE_ENDPOINT" default:"https://translation.googleapis.com/language/translate/v2"`
	TranslateTimeout  time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"10s"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.GoogleAPIKey) == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if strings.TrimSpace(c.TranslateEndpoint) == "" {
		return fmt.Errorf("GOOGLE_TRANSLATE_ENDPOINT must not be empty")
	}
	if c.TranslateTimeout < time.Second {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be at least 1s")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
