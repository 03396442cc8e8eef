package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	envProduction   = "production"
	devJWTSecret    = "dev-secret"
	defaultTokenTTL = 30 * 24 * time.Hour
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BasePath              string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn string
	BcryptCost   int

	// TokenTTL is derived from JWTExpiresIn by Validate.
	TokenTTL time.Duration

	// InsecureSecret is set when Validate substituted the development secret.
	InsecureSecret bool
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	EmailTo    string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	bcryptCost, err := strconv.Atoi(firstEnv([]string{"SALT_ROUNDS", "AUTH_BCRYPT_COST"}, "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SALT_ROUNDS: %w", err)
	}

	appEnv := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "waitlist-service"),
			Env:                   appEnv,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  firstEnv([]string{"PORT", "APP_PORT"}, "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			BasePath:              getEnv("APP_BASE_PATH", "/api"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            firstEnv([]string{"DATABASE_URL", "POSTGRES_DSN"}, ""),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: !strings.EqualFold(appEnv, envProduction),
		},
		Auth: AuthConfig{
			JWTSecret:    firstEnv([]string{"JWT_SECRET_KEY", "AUTH_JWT_SECRET"}, ""),
			JWTExpiresIn: getEnv("JWT_EXPIRES_IN", "30d"),
			BcryptCost:   bcryptCost,
		},
		RateLimit: RateLimitConfig{
			Max:           getEnvAsInt("RATE_LIMIT_MAX", 100),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 900),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			EmailTo:    os.Getenv("NOTIFY_EMAIL_TO"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks security-relevant settings and derives computed values.
// It must run before the auth components are constructed.
func (c *Config) Validate() error {
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt cost %d: must be between %d and %d",
			c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	ttl, err := ParseExpiry(c.Auth.JWTExpiresIn)
	if err != nil {
		return fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	c.Auth.TokenTTL = ttl

	if c.Auth.JWTSecret == "" {
		if c.App.IsProduction() {
			return errors.New("JWT_SECRET_KEY is required in production")
		}
		c.Auth.JWTSecret = devJWTSecret
		c.Auth.InsecureSecret = true
	}

	if c.Postgres.DSN == "" && c.App.IsProduction() {
		return errors.New("DATABASE_URL is required in production")
	}
	return nil
}

// MaxTokenTTL bounds the configured token lifetime.
const MaxTokenTTL = 10 * 365 * 24 * time.Hour

var expiryPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]*)$`)

// expiryUnits follows the unit names of the "ms" package used by jsonwebtoken.
// A year is 365.25 days.
var expiryUnits = map[string]time.Duration{
	"":             time.Second,
	"ms":           time.Millisecond,
	"msec":         time.Millisecond,
	"msecs":        time.Millisecond,
	"millisecond":  time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"secs":         time.Second,
	"second":       time.Second,
	"seconds":      time.Second,
	"m":            time.Minute,
	"min":          time.Minute,
	"mins":         time.Minute,
	"minute":       time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hr":           time.Hour,
	"hrs":          time.Hour,
	"hour":         time.Hour,
	"hours":        time.Hour,
	"d":            24 * time.Hour,
	"day":          24 * time.Hour,
	"days":         24 * time.Hour,
	"w":            7 * 24 * time.Hour,
	"week":         7 * 24 * time.Hour,
	"weeks":        7 * 24 * time.Hour,
	"y":            8766 * time.Hour,
	"yr":           8766 * time.Hour,
	"yrs":          8766 * time.Hour,
	"year":         8766 * time.Hour,
	"years":        8766 * time.Hour,
}

// ParseExpiry parses a token lifetime. Accepted forms:
//
//	"30d", "7 days", "1w", "1y", "90m", "1.5h"  number with a unit
//	"3600"                                    bare number of seconds
//	"1h30m"                                   Go duration
//
// Units are ms, s, m, h, d, w and y with their long names. An empty value yields
// 30 days. The result must be positive and at most MaxTokenTTL.
func ParseExpiry(val string) (time.Duration, error) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return defaultTokenTTL, nil
	}

	var ttl time.Duration
	if m := expiryPattern.FindStringSubmatch(val); m != nil {
		unit, ok := expiryUnits[m[2]]
		if !ok {
			return 0, fmt.Errorf("unknown expiry unit %q", m[2])
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, err
		}
		total := n * float64(unit)
		if total > float64(MaxTokenTTL) {
			return 0, fmt.Errorf("expiry %q exceeds %s", val, MaxTokenTTL)
		}
		ttl = time.Duration(math.Round(total))
	} else {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, err
		}
		ttl = parsed
	}

	if ttl <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %q", val)
	}
	if ttl > MaxTokenTTL {
		return 0, fmt.Errorf("expiry %q exceeds %s", val, MaxTokenTTL)
	}
	return ttl, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, envProduction)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// firstEnv returns the first non-empty variable among keys.
func firstEnv(keys []string, fallback string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
