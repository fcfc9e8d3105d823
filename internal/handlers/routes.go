package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/benx421/atm-core/internal/middleware"
	"github.com/benx421/atm-core/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	atm service.Transactor,
	idemRepo middleware.IdempotencyRepository,
	healthChecker HealthChecker,
	logger *slog.Logger,
) http.Handler {
	h := NewHandler(atm, healthChecker, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemRepo, logger))

		r.Post("/cards", h.ValidateCard)
		r.Post("/auth", h.Authenticate)

		r.Route("/accounts/{accountID}", func(r chi.Router) {
			r.Get("/balance", h.GetBalance)
			r.Post("/deposits", h.Deposit)
			r.Post("/withdrawals", h.Withdraw)
		})
	})

	return r
}
