package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benx421/atm-core/internal/bank"
	"github.com/benx421/atm-core/internal/cashbin"
	"github.com/benx421/atm-core/internal/chip"
	"github.com/benx421/atm-core/internal/config"
	"github.com/benx421/atm-core/internal/db"
	"github.com/benx421/atm-core/internal/handlers"
	"github.com/benx421/atm-core/internal/middleware"
	"github.com/benx421/atm-core/internal/models"
	"github.com/benx421/atm-core/internal/repository"
	"github.com/benx421/atm-core/internal/service"
	"github.com/benx421/atm-core/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting atm core",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"session_backend", cfg.Session.Backend,
		"bank_backend", cfg.Bank.Backend,
	)

	ctx := context.Background()

	var (
		sessions      session.Store
		healthChecker handlers.HealthChecker
		idemStore     middleware.IdempotencyRepository
	)
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		database, err := db.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		sessions = session.NewPostgresStore(database, cfg.Session.TTL)
		healthChecker = database
		idemStore = repository.NewIdempotencyRepository(database)
	default:
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		if cfg.Session.SweepInterval > 0 {
			stop := memStore.StartSweeper(cfg.Session.SweepInterval)
			defer stop()
		}
		sessions = memStore
		idemStore = middleware.NewMemoryIdempotencyStore(24 * time.Hour)
	}

	bankClient, err := buildBankClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build bank client", "error", err)
		os.Exit(1)
	}

	bin, err := cashbin.New(cfg.CashBin.InitialStock, cfg.CashBin.Capacity)
	if err != nil {
		logger.Error("invalid cash bin configuration", "error", err)
		os.Exit(1)
	}

	atm := service.NewATMService(sessions, bankClient, bin, chip.NewDecryptor(), logger)

	router := handlers.NewRouter(atm, idemStore, healthChecker, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func buildBankClient(cfg *config.Config, logger *slog.Logger) (bank.Client, error) {
	if cfg.Bank.Backend == config.BankBackendGateway {
		hc := &http.Client{Timeout: cfg.Bank.GatewayTimeout}
		return bank.NewGateway(cfg.Bank.GatewayURL, hc), nil
	}

	fake := bank.NewFake(bank.FakeConfig{
		AuthKeyTTL:  cfg.Bank.AuthKeyTTL,
		MinLatency:  cfg.Bank.MinLatency,
		MaxLatency:  cfg.Bank.MaxLatency,
		FailureRate: cfg.Bank.FailureRate,
	})

	if cfg.Bank.DemoSeed {
		if err := seedDemoBank(fake); err != nil {
			return nil, err
		}
		logger.Info("seeded demo bank", "card", demoCard.Number, "pin", demoPIN)
	}

	return fake, nil
}

// Demo fixture for local runs with BANK_DEMO_SEED=true.
var demoCard = models.CardData{
	Number:           "1234567890123456",
	HolderName:       "HONG GILDONG",
	ExpirationDate:   "20991231",
	ServiceCode:      "101",
	VerificationCode: "123",
}

const demoPIN = "1234"

func seedDemoBank(fake *bank.Fake) error {
	if err := fake.RegisterCard(demoCard, demoPIN); err != nil {
		return err
	}
	fake.SeedAccount("acc-checking", demoCard.Number, 100_000)
	fake.SeedAccount("acc-savings", demoCard.Number, 1_250_000)
	return nil
}
