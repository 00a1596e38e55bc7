package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a single stored object
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ObjectStore is the object storage abstraction for course materials
type ObjectStore interface {
	// List returns all objects in the bucket
	List(ctx context.Context) ([]ObjectInfo, error)

	// SignURL returns a time-limited download URL for the given object
	SignURL(ctx context.Context, key string) (string, error)

	// HealthCheck verifies backend connectivity
	HealthCheck(ctx context.Context) error

	// Backend names the implementation, used for metrics labels
	Backend() string
}

// Config for the object storage backend
type Config struct {
	// S3 config
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	// MockBaseURL is the base for download URLs when S3 is not configured
	MockBaseURL string

	// PresignTTL bounds the lifetime of presigned download URLs
	PresignTTL time.Duration

	// URLCacheSize bounds the in-process presigned URL cache
	URLCacheSize int

	// ListingCacheTTL bounds the Redis listing cache
	ListingCacheTTL time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		S3Region:        "us-east-1",
		MockBaseURL:     "https://storage.example.com/materials",
		PresignTTL:      10 * time.Minute,
		URLCacheSize:    1024,
		ListingCacheTTL: 5 * time.Minute,
	}
}

// S3Configured reports whether the configuration carries enough to reach
// an S3-compatible backend. Missing credentials select the mock store.
func (c Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
