// Package handlers implements HTTP handlers for the ATM API.
package handlers

import (
	"context"
	"log/slog"

	"github.com/benx421/atm-core/internal/service"
)

// HealthChecker reports whether backing storage is reachable. A nil checker
// means the deployment has no external storage to probe.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Handler exposes the ATM operations over HTTP
type Handler struct {
	atm           service.Transactor
	healthChecker HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(atm service.Transactor, healthChecker HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		atm:           atm,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
