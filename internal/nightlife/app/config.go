package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/yelp"
	"github.com/joho/godotenv"
)

const (
	SessionBackendSQL   = "sql"
	SessionBackendRedis = "redis"
)

// OAuthCredentials are the client credentials for one identity provider.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	Env       string // dev, staging, prod (default: dev)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)
	Port      int    // HTTP server port (default: 3001)

	YelpAPIKey  string // Required for the directory routes
	YelpBaseURL string // Optional: directory API base (default: https://api.yelp.com)

	DatabaseURL  string // Optional: postgres DSN; sqlite is used when empty
	DatabaseFile string // Optional: sqlite file (default: nightlife.db)
	DBMaxConns   int    // Optional: connection pool cap (default: 5)

	SessionSecret  string        // Required outside dev: cookie signing secret
	SessionTTL     time.Duration // Optional: session lifetime (default: 7 days)
	SessionBackend string        // Optional: sql or redis (default: sql)
	RedisAddr      string        // Optional: redis address (default: localhost:6379)
	RedisPassword  string

	CORSOrigins      []string // Optional: allowed origins (default: https://nightlifeapp.onrender.com)
	LoginRedirectURL string   // Optional: landing page after provider login (default: /)

	RequestTimeout       time.Duration // Optional: per-request deadline (default: 15s)
	IdleTimeout          time.Duration // Optional: keep-alive idle timeout (default: 120s)
	ReadHeaderTimeout    time.Duration // Optional: header read timeout (default: 120s)
	ShutdownGracePeriod  time.Duration // Optional: graceful shutdown timeout (default: 10s)
	HousekeepingSchedule string        // Optional: cron schedule for session cleanup (default: @every 1h)

	// Providers maps provider name to credentials for every provider with
	// a client id set. The service ships no provider implementation: these
	// are read only by IdentityProvider implementations passed to New. A
	// provider with credentials but no implementation gets no routes.
	Providers map[string]OAuthCredentials
}

// LoadEnvFile seeds the environment from a dotenv file. Variables already
// set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func LoadConfig() Config {
	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 3001),

		YelpAPIKey:  os.Getenv("YELP_API_KEY"),
		YelpBaseURL: getEnvOrDefault("YELP_BASE_URL", yelp.DefaultBaseURL),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "nightlife.db"),
		DBMaxConns:   getEnvIntOrDefault("DB_MAX_CONNS", 5),

		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", service.DefaultSessionTTL),
		SessionBackend: strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionBackendSQL)),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),

		CORSOrigins:      httpx.SplitList(getEnvOrDefault("CORS_ORIGINS", "https://nightlifeapp.onrender.com")),
		LoginRedirectURL: getEnvOrDefault("LOGIN_REDIRECT_URL", "/"),

		RequestTimeout:       getEnvDurationOrDefault("REQUEST_TIMEOUT", 15*time.Second),
		IdleTimeout:          getEnvDurationOrDefault("IDLE_TIMEOUT", 120*time.Second),
		ReadHeaderTimeout:    getEnvDurationOrDefault("READ_HEADER_TIMEOUT", 120*time.Second),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingSchedule: getEnvOrDefault("HOUSEKEEPING_SCHEDULE", service.DefaultHousekeepingSchedule),

		Providers: make(map[string]OAuthCredentials),
	}

	for _, name := range []string{"github", "twitter"} {
		prefix := strings.ToUpper(name)
		if id := os.Getenv(prefix + "_CLIENT_ID"); id != "" {
			cfg.Providers[name] = OAuthCredentials{
				ClientID:     id,
				ClientSecret: os.Getenv(prefix + "_CLIENT_SECRET"),
			}
		}
	}

	return cfg
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if c.Env != "dev" && c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required outside dev")
	}
	switch c.SessionBackend {
	case SessionBackendSQL, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendSQL, SessionBackendRedis, c.SessionBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
