package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"motocase/internal/caching"
)

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
	started  time.Time
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		started:  time.Now(),
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
	Uptime    string            `json:"uptime"`
}

// HealthCheck is the basic liveness probe.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}

// ReadinessCheck verifies the dependencies the service cannot run without.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "not ready"
		code = http.StatusServiceUnavailable
	} else {
		health.Services["database"] = "healthy"
	}

	// The cache is soft-required: auth still works without it.
	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		if health.Status == "ready" {
			health.Status = "degraded"
		}
	} else {
		health.Services["redis"] = "healthy"
	}

	return c.JSON(code, health)
}

// DetailedHealth adds runtime stats for operators.
func (h *HealthHandlers) DetailedHealth(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
		"memory": map[string]any{
			"alloc_mb":       mem.Alloc / 1024 / 1024,
			"total_alloc_mb": mem.TotalAlloc / 1024 / 1024,
			"sys_mb":         mem.Sys / 1024 / 1024,
			"num_gc":         mem.NumGC,
		},
	})
}
