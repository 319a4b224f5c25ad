package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

type CacheBackend string

const (
	MemoryCache CacheBackend = "memory"
	SQLiteCache CacheBackend = "sqlite"
	RedisCache  CacheBackend = "redis"
)

type Config struct {
	Port           string
	RequestTimeout time.Duration
	SessionSecret  []byte
	// SessionSecretGenerated is set when SESSION_SECRET was empty and a random
	// key was made for this process.
	SessionSecretGenerated bool

	Geocode GeocodeConfig
	People  PeopleConfig
	Cache   CacheConfig
	Log     LogConfig
	Tracing TracingConfig
}

// GeocodeConfig points at the reverse geocoding provider
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
	RPS       float64
	Timeout   time.Duration
}

// PeopleConfig points at the remote people generator
type PeopleConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	Backend  CacheBackend
	Capacity int
	TTL      time.Duration
	// SQLite config
	SQLitePath string
	// Redis config
	RedisURL string
}

type LogConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

type TracingConfig struct {
	Endpoint string
	Insecure bool
}

const (
	defaultPort           = "8080"
	defaultRequestTimeout = 60 * time.Second
	defaultNominatimURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent      = "addrgen/1.0 (synthetic address generator)"
	defaultRandomUserURL  = "https://randomuser.me"
	defaultClientTimeout  = 10 * time.Second
	defaultCacheCapacity  = 50
	defaultCacheTTL       = 5 * time.Minute
	sessionKeyLength      = 32
	requestTimeoutSlack   = 15 * time.Second
)

// ResolveAttempts is how many sample-and-geocode rounds one resolve may make.
const ResolveAttempts = 100

// MinRequestTimeout is the shortest request deadline that lets a resolve
// finish ResolveAttempts lookups through a limiter paced at rps, plus slack
// for the name and phone steps.
func MinRequestTimeout(rps float64) time.Duration {
	return time.Duration(float64(ResolveAttempts)/rps*float64(time.Second)) + requestTimeoutSlack
}

// LoadConfig reads an optional .env file and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	clientTimeout, err := getEnvDuration("HTTP_CLIENT_TIMEOUT", defaultClientTimeout)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}
	rps, err := getEnvFloat("NOMINATIM_RPS", 1)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}
	if os.Getenv("REQUEST_TIMEOUT") == "" && rps > 0 {
		requestTimeout = max(defaultRequestTimeout, MinRequestTimeout(rps))
	}

	sessionSecret := []byte(os.Getenv("SESSION_SECRET"))
	generatedSecret := len(sessionSecret) == 0
	if generatedSecret {
		sessionSecret = securecookie.GenerateRandomKey(sessionKeyLength)
		if sessionSecret == nil {
			return nil, fmt.Errorf("failed to generate session secret")
		}
	}

	config := &Config{
		Port:           getEnv("PORT", defaultPort),
		RequestTimeout: requestTimeout,
		SessionSecret:  sessionSecret,

		SessionSecretGenerated: generatedSecret,
		Geocode: GeocodeConfig{
			BaseURL:   getEnv("NOMINATIM_URL", defaultNominatimURL),
			UserAgent: getEnv("NOMINATIM_USER_AGENT", defaultUserAgent),
			RPS:       rps,
			Timeout:   clientTimeout,
		},
		People: PeopleConfig{
			BaseURL: getEnv("RANDOMUSER_URL", defaultRandomUserURL),
			Timeout: clientTimeout,
		},
		Cache: CacheConfig{
			Backend:  CacheBackend(getEnv("CACHE_BACKEND", string(MemoryCache))),
			Capacity: getEnvInt("CACHE_CAPACITY", defaultCacheCapacity),
			TTL:      cacheTTL,
		},
		Log: LogConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "text"),
			IncludeCaller: getEnvBool("LOG_INCLUDE_CALLER", false),
		},
		Tracing: TracingConfig{
			Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure: getEnvBool("OTEL_INSECURE", true),
		},
	}

	// Configure based on cache backend
	switch config.Cache.Backend {
	case MemoryCache:
	case SQLiteCache:
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			// Default to a data directory in the current directory
			sqlitePath = filepath.Join("data", "addrgen.db")
		}
		config.Cache.SQLitePath = sqlitePath
	case RedisCache:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is not set but CACHE_BACKEND is redis")
		}
		config.Cache.RedisURL = redisURL
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND: %s", config.Cache.Backend)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Geocode.UserAgent == "" {
		return fmt.Errorf("NOMINATIM_USER_AGENT must not be empty")
	}
	if c.Geocode.RPS <= 0 {
		return fmt.Errorf("NOMINATIM_RPS must be positive, got %v", c.Geocode.RPS)
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	// 0 disables the deadline
	if floor := MinRequestTimeout(c.Geocode.RPS); c.RequestTimeout > 0 && c.RequestTimeout < floor {
		return fmt.Errorf("REQUEST_TIMEOUT %s is too short for %d lookups at NOMINATIM_RPS %v, need at least %s",
			c.RequestTimeout, ResolveAttempts, c.Geocode.RPS, floor)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
