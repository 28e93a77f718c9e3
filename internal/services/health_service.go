package services

import (
	"context"
	"log/slog"
	"time"

	"dscat/internal/catalog"
	"dscat/internal/infrastructure"
)

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Uptime      string    `json:"uptime"`
	SourceCount int       `json:"source_count"`
	CheckedAt   time.Time `json:"checked_at"`
}

// HealthService reports liveness and basic catalog stats.
type HealthService struct {
	registry *catalog.Registry
	version  string
	started  time.Time
	logger   *slog.Logger
}

// NewHealthService creates a health service.
func NewHealthService(registry *catalog.Registry, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &HealthService{
		registry: registry,
		version:  version,
		started:  time.Now(),
		logger:   infrastructure.WithComponent(logger, "health_service"),
	}
}

// Check returns the current health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:      "healthy",
		Version:     s.version,
		Uptime:      time.Since(s.started).Round(time.Second).String(),
		SourceCount: s.registry.Count(),
		CheckedAt:   time.Now(),
	}
}
