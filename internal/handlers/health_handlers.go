package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *pgxpool.Pool, the cache service and object storage
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles liveness and readiness checks
type HealthHandlers struct {
	db      Pinger
	cache   Pinger
	storage Pinger
	started time.Time
}

// NewHealthHandlers takes nil for a dependency that is not configured
func NewHealthHandlers(db, cache, storage Pinger) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		storage: storage,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
}

// LivenessCheck determines if the application is running
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck reports 503 when the database is down; cache and storage
// failures only degrade the status.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Uptime:    time.Since(h.started).Truncate(time.Second).String(),
	}

	dbOK := pingComponent(ctx, h.db, "database", health)
	pingComponent(ctx, h.cache, "cache", health)
	pingComponent(ctx, h.storage, "storage", health)

	if !dbOK {
		health.Status = "not_ready"
		return c.JSON(http.StatusServiceUnavailable, health)
	}
	return c.JSON(http.StatusOK, health)
}

func pingComponent(ctx context.Context, p Pinger, name string, health *HealthStatus) bool {
	if p == nil {
		health.Services[name] = "disabled"
		return false
	}
	if err := p.Ping(ctx); err != nil {
		health.Services[name] = "unhealthy"
		if health.Status == "ready" {
			health.Status = "degraded"
		}
		return false
	}
	health.Services[name] = "healthy"
	return true
}
