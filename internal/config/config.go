package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Email provider identifiers accepted by EMAIL_PROVIDER.
const (
	ProviderResend   = "resend"
	ProviderPostmark = "postmark"
	ProviderLog      = "log"
)

// Config holds runtime configuration values for the contact API.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	LogLevel        string
	LogFile         string
	RedisURL        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int
	CORSAllowOrigin string
	Email           EmailConfig
}

// EmailConfig describes the outbound email provider. Missing credentials are
// not a load error; they leave the provider unconfigured.
type EmailConfig struct {
	Provider             string
	ResendAPIKey         string
	PostmarkServerToken  string
	PostmarkAccountToken string
	From                 string
	To                   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsDevelopment reports whether the service runs in a local environment.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "local"
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "unAgency Contact API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.max", 5)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("body_limit_bytes", 64*1024)
	v.SetDefault("cors.allow_origin", "*")
	v.SetDefault("email.provider", ProviderResend)
	v.SetDefault("email.from", "Contact Form <onboarding@resend.dev>")

	windowString := v.GetString("rate_limit.window")
	if windowString == "" {
		windowString = "1m"
	}

	window, err := time.ParseDuration(windowString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          strings.ToLower(v.GetString("app.env")),
		AppPort:         v.GetString("app.port"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		LogFile:         v.GetString("log.file"),
		RedisURL:        v.GetString("redis.url"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
		BodyLimit:       v.GetInt("body_limit_bytes"),
		CORSAllowOrigin: strings.TrimSpace(v.GetString("cors.allow_origin")),
		Email: EmailConfig{
			Provider:             strings.ToLower(strings.TrimSpace(v.GetString("email.provider"))),
			ResendAPIKey:         strings.TrimSpace(v.GetString("resend.api_key")),
			PostmarkServerToken:  strings.TrimSpace(v.GetString("postmark.server_token")),
			PostmarkAccountToken: strings.TrimSpace(v.GetString("postmark.account_token")),
			From:                 strings.TrimSpace(v.GetString("email.from")),
			To:                   strings.TrimSpace(v.GetString("email.to")),
		},
	}

	switch cfg.Email.Provider {
	case ProviderResend, ProviderPostmark, ProviderLog:
	default:
		return Config{}, fmt.Errorf("unsupported email provider %q", cfg.Email.Provider)
	}

	if cfg.RateLimitMax < 0 {
		cfg.RateLimitMax = 0
	}

	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 64 * 1024
	}

	if cfg.CORSAllowOrigin == "" {
		cfg.CORSAllowOrigin = "*"
	}

	return cfg, nil
}
