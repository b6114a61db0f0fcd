package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"maintdesk/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobRunner triggers scheduled jobs on demand
type JobRunner interface {
	RunNow(name string) error
	JobNames() []string
}

// CacheFlusher drops every cached entry
type CacheFlusher interface {
	InvalidateAllCache(ctx context.Context) error
}

type JobHandlers struct {
	runner JobRunner
	cache  CacheFlusher
}

func NewJobHandlers(runner JobRunner, cache CacheFlusher) *JobHandlers {
	return &JobHandlers{runner: runner, cache: cache}
}

func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"jobs": h.runner.JobNames(),
	})
}

// RunJob queues one run of a registered job; it executes in the background
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.runner.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		log.Printf("Failed to trigger job %s: %v", name, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to trigger job")
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Job triggered",
		"job":     name,
	})
}

func (h *JobHandlers) FlushCache(c echo.Context) error {
	if h.cache == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Cache is not configured")
	}
	if err := h.cache.InvalidateAllCache(c.Request().Context()); err != nil {
		log.Printf("Failed to flush cache: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to flush cache")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Cache cleared",
	})
}
