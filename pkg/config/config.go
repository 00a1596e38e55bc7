package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edustack/platform/pkg/observability"
	"github.com/edustack/platform/pkg/storage"
)

const (
	// EnvDevelopment relaxes validation for local work
	EnvDevelopment = "development"
	// EnvProduction requires an explicit JWT secret
	EnvProduction = "production"

	// DevJWTSecret is the signing key substituted in development when
	// EDUSTACK_JWT_SECRET is unset. Production refuses to boot without
	// an explicit secret.
	DevJWTSecret = "edustack-dev-only-secret"
)

// Config holds all application configuration
type Config struct {
	Environment string

	Server        ServerConfig
	Auth          AuthConfig
	Database      DatabaseConfig
	Storage       storage.Config
	Redis         RedisConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MaxBodyBytes    int64
}

// AuthConfig holds token and password hashing configuration
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
	// CookieSecure controls the Secure flag on auth cookies. Off by
	// default so local HTTP development works.
	CookieSecure bool
}

// DatabaseConfig holds relational database configuration
type DatabaseConfig struct {
	Driver          string // postgres or sqlite3
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds cache configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	// WarmSchedule is a cron expression for refreshing the materials
	// listing cache in the background.
	WarmSchedule string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("EDUSTACK_ENVIRONMENT", EnvDevelopment),
		Server:        loadServerConfig(),
		Auth:          loadAuthConfig(),
		Database:      loadDatabaseConfig(),
		Storage:       loadStorageConfig(),
		Redis:         loadRedisConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("EDUSTACK_HOST", "0.0.0.0"),
		Port:            getEnv("EDUSTACK_PORT", "8000"),
		ReadTimeout:     getEnvDuration("EDUSTACK_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("EDUSTACK_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("EDUSTACK_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("EDUSTACK_SHUTDOWN_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnvList("EDUSTACK_CORS_ORIGINS", []string{"http://localhost:3000"}),
		MaxBodyBytes:    getEnvInt64("EDUSTACK_MAX_BODY_BYTES", 1<<20),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:    getEnv("EDUSTACK_JWT_SECRET", ""),
		Issuer:       getEnv("EDUSTACK_JWT_ISSUER", "edustack-platform"),
		AccessTTL:    getEnvDuration("EDUSTACK_ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTTL:   getEnvDuration("EDUSTACK_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:   getEnvInt("EDUSTACK_BCRYPT_COST", 12),
		CookieSecure: getEnvBool("EDUSTACK_COOKIE_SECURE", false),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          getEnv("EDUSTACK_DB_DRIVER", "postgres"),
		URL:             getEnv("EDUSTACK_DB_URL", ""),
		MaxOpenConns:    getEnvInt("EDUSTACK_DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    getEnvInt("EDUSTACK_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("EDUSTACK_DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if endpoint := getEnv("EDUSTACK_S3_ENDPOINT", ""); endpoint != "" {
		cfg.S3Endpoint = endpoint
	}
	if region := getEnv("EDUSTACK_S3_REGION", ""); region != "" {
		cfg.S3Region = region
	}
	if bucket := getEnv("EDUSTACK_S3_BUCKET", ""); bucket != "" {
		cfg.S3Bucket = bucket
	}
	if accessKey := getEnv("EDUSTACK_S3_ACCESS_KEY", ""); accessKey != "" {
		cfg.S3AccessKey = accessKey
	}
	if secretKey := getEnv("EDUSTACK_S3_SECRET_KEY", ""); secretKey != "" {
		cfg.S3SecretKey = secretKey
	}
	if pathStyle := getEnv("EDUSTACK_S3_USE_PATH_STYLE", ""); pathStyle != "" {
		cfg.S3UsePathStyle = strings.ToLower(pathStyle) == "true"
	}
	if mockURL := getEnv("EDUSTACK_MOCK_STORAGE_URL", ""); mockURL != "" {
		cfg.MockBaseURL = mockURL
	}
	if presignTTL := getEnvDuration("EDUSTACK_PRESIGN_TTL", 0); presignTTL > 0 {
		cfg.PresignTTL = presignTTL
	}
	if cacheSize := getEnvInt("EDUSTACK_URL_CACHE_SIZE", 0); cacheSize > 0 {
		cfg.URLCacheSize = cacheSize
	}

	return cfg
}

func loadRedisConfig() RedisConfig {
	addr := getEnv("EDUSTACK_REDIS_URL", "")
	return RedisConfig{
		Enabled:      addr != "",
		Addr:         addr,
		Password:     getEnv("EDUSTACK_REDIS_PASSWORD", ""),
		DB:           getEnvInt("EDUSTACK_REDIS_DB", 0),
		WarmSchedule: getEnv("EDUSTACK_CACHE_WARM_SCHEDULE", "@every 5m"),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("EDUSTACK_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("EDUSTACK_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("EDUSTACK_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("EDUSTACK_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("EDUSTACK_OTEL_SERVICE_NAME", "edustack-platform"),
		OTelServiceVersion: getEnv("EDUSTACK_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("EDUSTACK_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("invalid environment: %s (must be development or production)", c.Environment)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Auth.JWTSecret == "" {
		if c.Environment == EnvProduction {
			return fmt.Errorf("JWT secret is required in production")
		}
		// Never sign with an empty key, even locally.
		c.Auth.JWTSecret = DevJWTSecret
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.Auth.RefreshTTL <= c.Auth.AccessTTL {
		return fmt.Errorf("refresh token TTL must exceed access token TTL")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite3)", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database URL is required")
	}

	if c.Observability.OTelEnabled && c.Observability.OTelEndpoint == "" {
		return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
	}

	return nil
}

func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a slice
func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
