// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings. The JWT signing secret is the only value
// without a production default; Load refuses to start a production deployment
// without one.
//
// # Configuration Structure
//
// Server settings:
//
//	EDUSTACK_HOST="0.0.0.0"
//	EDUSTACK_PORT="8000"
//	EDUSTACK_READ_TIMEOUT="15s"
//	EDUSTACK_WRITE_TIMEOUT="15s"
//	EDUSTACK_CORS_ORIGINS="http://localhost:3000,http://localhost:5173"
//
// Auth settings:
//
//	EDUSTACK_ENVIRONMENT="development"  # development, production
//	EDUSTACK_JWT_SECRET="..."  (required in production, dev default otherwise)
//	EDUSTACK_ACCESS_TOKEN_TTL="30m"
//	EDUSTACK_REFRESH_TOKEN_TTL="168h"
//	EDUSTACK_BCRYPT_COST="12"
//
// Database settings:
//
//	EDUSTACK_DB_DRIVER="postgres"  # postgres, sqlite3
//	EDUSTACK_DB_URL="postgres://localhost/edustack"
//	EDUSTACK_DB_MAX_OPEN_CONNS="20"
//
// Storage settings:
//
//	EDUSTACK_S3_ENDPOINT="https://s3.example.com"
//	EDUSTACK_S3_BUCKET="course-materials"
//	EDUSTACK_S3_ACCESS_KEY="..."
//	EDUSTACK_S3_SECRET_KEY="..."
//	EDUSTACK_MOCK_STORAGE_URL="https://storage.example.com/materials"
//	EDUSTACK_PRESIGN_TTL="10m"
//
// Cache settings:
//
//	EDUSTACK_REDIS_URL="localhost:6379"
//	EDUSTACK_CACHE_WARM_SCHEDULE="@every 5m"
//
// Observability settings:
//
//	EDUSTACK_LOG_LEVEL="info"  # debug, info, warn, error
//	EDUSTACK_METRICS_ENABLED="true"
//	EDUSTACK_OTEL_ENABLED="false"
//	EDUSTACK_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
