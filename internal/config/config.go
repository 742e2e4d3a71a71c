// Package config loads application configuration with viper.
//
// Sources, highest priority first: environment variables (TEMPSHARE_*), an
// optional config.yaml in the working directory, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrMissingJWTSecret indicates the shared token secret is not set.
	ErrMissingJWTSecret = errors.New("missing JWT secret")

	// ErrWeakJWTSecret indicates the shared token secret is too short.
	ErrWeakJWTSecret = errors.New("JWT secret must be at least 16 characters")

	// ErrInvalidPort indicates the listen port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrMissingBaseURL indicates the public base URL is not set.
	ErrMissingBaseURL = errors.New("missing base URL")
)

// Config stores the service configuration. RecaptchaSecret and GeminiAPIKey
// may be empty: an empty captcha secret fails every bot check closed, and an
// empty API key disables the generation endpoints (they answer 503).
type Config struct {
	Port     int    `mapstructure:"port"`
	BaseURL  string `mapstructure:"base_url"`
	LogLevel string `mapstructure:"log_level"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisTLS      bool   `mapstructure:"redis_tls"`

	JWTSecret       string `mapstructure:"jwt_secret"`
	RecaptchaSecret string `mapstructure:"recaptcha_secret"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_tls", false)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("recaptcha_secret", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	v.SetEnvPrefix("TEMPSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the service cannot start
// without.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: %w: %d", ErrInvalidPort, c.Port)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: %w", ErrMissingBaseURL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: %w", ErrMissingJWTSecret)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: %w", ErrWeakJWTSecret)
	}
	return nil
}
