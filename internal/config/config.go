package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-only-change-me"

type Config struct {
	Env  string `toml:"env"`
	Port int    `toml:"port"`

	JWTSecret           string `toml:"jwt_secret"`
	JWTAccessTTLMinutes int    `toml:"jwt_access_ttl_minutes"`
	SessionIdleMinutes  int    `toml:"session_idle_minutes"`

	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	MaxBodyBytes       int64    `toml:"max_body_bytes"`

	RateLimit RateLimitConfig `toml:"rate_limit"`
	Redis     RedisConfig     `toml:"redis"`
	OTel      OTelConfig      `toml:"otel"`
}

type RateLimitConfig struct {
	// Backend is "memory" or "redis".
	Backend       string `toml:"backend"`
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type OTelConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
}

func Defaults() Config {
	return Config{
		Env:                 "dev",
		Port:                8080,
		JWTSecret:           devJWTSecret,
		JWTAccessTTLMinutes: 60,
		SessionIdleMinutes:  30,
		CORSAllowedOrigins:  []string{"http://localhost:3000"},
		MaxBodyBytes:        1 << 20,
		RateLimit: RateLimitConfig{
			Backend:       "memory",
			Requests:      120,
			WindowSeconds: 60,
		},
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
		OTel: OTelConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "restaurantos-api",
		},
	}
}

// Load layers the optional TOML file named by RESTAURANTOS_CONFIG, then .env,
// then the process environment over the defaults.
func Load() (Config, error) {
	cfg := Defaults()

	// .env is optional
	_ = godotenv.Load()

	if path := os.Getenv("RESTAURANTOS_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Port = getEnvInt("PORT", cfg.Port)

	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTAccessTTLMinutes = getEnvInt("JWT_ACCESS_TTL_MINUTES", cfg.JWTAccessTTLMinutes)
	cfg.SessionIdleMinutes = getEnvInt("SESSION_IDLE_MINUTES", cfg.SessionIdleMinutes)

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = parseCSV(v)
	}
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))

	cfg.RateLimit.Backend = getEnv("RATE_LIMIT_BACKEND", cfg.RateLimit.Backend)
	cfg.RateLimit.Requests = getEnvInt("RATE_LIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.WindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimit.WindowSeconds)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	cfg.OTel.Enabled = getEnvBool("OTEL_ENABLED", cfg.OTel.Enabled)
	cfg.OTel.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTel.Endpoint)
	cfg.OTel.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.OTel.ServiceName)
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == "prod" && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in prod")
	}
	if c.JWTAccessTTLMinutes <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL_MINUTES must be positive, got %d", c.JWTAccessTTLMinutes)
	}
	if c.SessionIdleMinutes <= 0 {
		return fmt.Errorf("SESSION_IDLE_MINUTES must be positive, got %d", c.SessionIdleMinutes)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit needs positive requests and window, got %d per %ds", c.RateLimit.Requests, c.RateLimit.WindowSeconds)
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown rate limit backend %q", c.RateLimit.Backend)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}

func (c Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// malformed numbers keep the fallback
func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
