package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edustack/platform/pkg/observability"
)

// MockStore serves a fixed set of sample materials when no object storage
// is configured. URLs are the mock base joined with the object name, so
// the frontend has something clickable during local development.
type MockStore struct {
	baseURL string
	objects []ObjectInfo
	logger  *observability.Logger
}

// NewMockStore creates a mock object store
func NewMockStore(cfg Config, logger *observability.Logger) *MockStore {
	baseURL := strings.TrimRight(cfg.MockBaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(DefaultConfig().MockBaseURL, "/")
	}

	now := time.Now().UTC().Truncate(time.Hour)
	return &MockStore{
		baseURL: baseURL,
		objects: []ObjectInfo{
			{Key: "intro-to-statistics.pdf", Size: 2_457_600, LastModified: now.Add(-72 * time.Hour)},
			{Key: "linear-algebra-workbook.pdf", Size: 5_242_880, LastModified: now.Add(-48 * time.Hour)},
			{Key: "calculus-lecture-notes.pdf", Size: 1_048_576, LastModified: now.Add(-24 * time.Hour)},
			{Key: "course-syllabus.docx", Size: 65_536, LastModified: now.Add(-96 * time.Hour)},
		},
		logger: logger.WithField("component", "mock_store"),
	}
}

// Backend names the implementation
func (m *MockStore) Backend() string {
	return "mock"
}

// List returns the fixed sample object set
func (m *MockStore) List(ctx context.Context) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, len(m.objects))
	copy(out, m.objects)
	return out, nil
}

// SignURL joins the base URL with the object name. There is no signature
// and no expiry; the mock store has nothing to protect.
func (m *MockStore) SignURL(ctx context.Context, key string) (string, error) {
	for _, obj := range m.objects {
		if obj.Key == key {
			return m.baseURL + "/" + key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrObjectNotFound, key)
}

// HealthCheck always succeeds
func (m *MockStore) HealthCheck(ctx context.Context) error {
	return nil
}
