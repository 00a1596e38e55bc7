package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3Config() Config {
	cfg := DefaultConfig()
	cfg.S3Endpoint = "http://localhost:9000"
	cfg.S3Bucket = "course-materials"
	cfg.S3AccessKey = "test-access"
	cfg.S3SecretKey = "test-secret"
	cfg.S3UsePathStyle = true
	return cfg
}

func TestNewS3Store(t *testing.T) {
	store, err := NewS3Store(testS3Config(), testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, "s3", store.Backend())
}

func TestS3StoreSignURL(t *testing.T) {
	// Presigning is local work; no bucket connectivity is needed
	cfg := testS3Config()
	cfg.PresignTTL = 10 * time.Minute
	store, err := NewS3Store(cfg, testLogger(), nil)
	require.NoError(t, err)

	url, err := store.SignURL(context.Background(), "lecture-notes.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/course-materials/lecture-notes.pdf"))
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestS3StoreSignURLCached(t *testing.T) {
	store, err := NewS3Store(testS3Config(), testLogger(), nil)
	require.NoError(t, err)

	first, err := store.SignURL(context.Background(), "lecture-notes.pdf")
	require.NoError(t, err)

	second, err := store.SignURL(context.Background(), "lecture-notes.pdf")
	require.NoError(t, err)

	// Signatures embed the signing time, so an identical URL proves
	// the second call came from the cache
	assert.Equal(t, first, second)
}
