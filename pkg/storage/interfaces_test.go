package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, 10*time.Minute, cfg.PresignTTL)
	assert.Equal(t, 5*time.Minute, cfg.ListingCacheTTL)
	assert.NotEmpty(t, cfg.MockBaseURL)
	assert.Positive(t, cfg.URLCacheSize)
}

func TestS3Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{
			name: "fully configured",
			cfg:  Config{S3Bucket: "materials", S3AccessKey: "key", S3SecretKey: "secret"},
			want: true,
		},
		{
			name: "missing bucket",
			cfg:  Config{S3AccessKey: "key", S3SecretKey: "secret"},
			want: false,
		},
		{
			name: "missing credentials",
			cfg:  Config{S3Bucket: "materials"},
			want: false,
		},
		{
			name: "empty",
			cfg:  Config{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.S3Configured())
		})
	}
}
