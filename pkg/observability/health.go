package observability

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// DependencyChecker is implemented by collaborators that can report their own
// health, such as the object store.
type DependencyChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthChecker provides liveness and readiness probes over the service's
// dependencies. Nil dependencies are skipped.
type HealthChecker struct {
	db          *sql.DB
	redis       *redis.Client
	objectStore DependencyChecker
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *sql.DB, redisClient *redis.Client, objectStore DependencyChecker) *HealthChecker {
	return &HealthChecker{
		db:          db,
		redis:       redisClient,
		objectStore: objectStore,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Latency   time.Duration `json:"latency_ms,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (200 whenever the process runs)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness checks all dependencies; 503 when unhealthy.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}

// Check performs a comprehensive health check
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyStatus),
	}

	if h.db != nil {
		status.merge("database", h.checkDatabase(ctx))
	}
	if h.redis != nil {
		// Redis is a cache; losing it degrades but does not break the service.
		dep := h.checkRedis(ctx)
		if dep.Status == StatusUnhealthy {
			dep.Status = StatusDegraded
		}
		status.merge("redis", dep)
	}
	if h.objectStore != nil {
		status.merge("object_store", h.checkObjectStore(ctx))
	}

	return status
}

func (s *HealthStatus) merge(name string, dep DependencyStatus) {
	s.Dependencies[name] = dep
	switch dep.Status {
	case StatusUnhealthy:
		s.Status = StatusUnhealthy
	case StatusDegraded:
		if s.Status != StatusUnhealthy {
			s.Status = StatusDegraded
		}
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) DependencyStatus {
	start := time.Now()
	err := h.db.PingContext(ctx)
	return newDependencyStatus(err, time.Since(start))
}

func (h *HealthChecker) checkRedis(ctx context.Context) DependencyStatus {
	start := time.Now()
	err := h.redis.Ping(ctx).Err()
	return newDependencyStatus(err, time.Since(start))
}

func (h *HealthChecker) checkObjectStore(ctx context.Context) DependencyStatus {
	start := time.Now()
	err := h.objectStore.HealthCheck(ctx)
	return newDependencyStatus(err, time.Since(start))
}

func newDependencyStatus(err error, latency time.Duration) DependencyStatus {
	dep := DependencyStatus{
		Status:    StatusHealthy,
		Latency:   latency / time.Millisecond,
		Timestamp: time.Now(),
	}
	if err != nil {
		dep.Status = StatusUnhealthy
		dep.Message = err.Error()
	}
	return dep
}
