// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend selectors for pluggable collaborators
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"

	BankBackendFake    = "fake"
	BankBackendGateway = "gateway"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Session  SessionConfig
	CashBin  CashBinConfig
	Bank     BankConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig holds database connection configuration. Only consulted when
// the session backend is postgres.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration // 0 disables the background sweeper
}

// CashBinConfig holds the machine's cash inventory configuration
type CashBinConfig struct {
	Capacity     int64
	InitialStock int64
}

// BankConfig holds bank ledger client configuration
type BankConfig struct {
	Backend        string
	GatewayURL     string
	GatewayTimeout time.Duration

	// Fake backend knobs
	AuthKeyTTL  time.Duration
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64
	DemoSeed    bool
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "atm"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Session: SessionConfig{
			Backend:       getEnv("SESSION_BACKEND", SessionBackendMemory),
			TTL:           getEnvAsDuration("SESSION_TTL", "5m"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "0s"),
		},
		CashBin: CashBinConfig{
			Capacity:     getEnvAsInt64("CASH_BIN_CAPACITY", 2_000_000),
			InitialStock: getEnvAsInt64("CASH_BIN_INITIAL", 1_000_000),
		},
		Bank: BankConfig{
			Backend:        getEnv("BANK_BACKEND", BankBackendFake),
			GatewayURL:     getEnv("BANK_GATEWAY_URL", ""),
			GatewayTimeout: getEnvAsDuration("BANK_GATEWAY_TIMEOUT", "10s"),
			AuthKeyTTL:     getEnvAsDuration("BANK_AUTH_KEY_TTL", "3m"),
			MinLatency:     getEnvAsDuration("BANK_MIN_LATENCY", "0s"),
			MaxLatency:     getEnvAsDuration("BANK_MAX_LATENCY", "0s"),
			FailureRate:    getEnvAsFloat("BANK_FAILURE_RATE", 0),
			DemoSeed:       getEnv("BANK_DEMO_SEED", "false") == "true",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logger.Format)
	}

	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be %s or %s)",
			c.Session.Backend, SessionBackendMemory, SessionBackendPostgres)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.Session.TTL)
	}

	if c.CashBin.Capacity < 0 {
		return fmt.Errorf("cash bin capacity cannot be negative")
	}
	if c.CashBin.InitialStock < 0 || c.CashBin.InitialStock > c.CashBin.Capacity {
		return fmt.Errorf("cash bin initial stock %d out of range [0, %d]",
			c.CashBin.InitialStock, c.CashBin.Capacity)
	}

	switch c.Bank.Backend {
	case BankBackendFake:
		if c.Bank.FailureRate < 0 || c.Bank.FailureRate > 1 {
			return fmt.Errorf("bank failure rate must be between 0 and 1, got %f", c.Bank.FailureRate)
		}
		if c.Bank.MaxLatency < c.Bank.MinLatency {
			return fmt.Errorf("bank max latency (%s) must be >= min latency (%s)",
				c.Bank.MaxLatency, c.Bank.MinLatency)
		}
	case BankBackendGateway:
		if c.Bank.GatewayURL == "" {
			return fmt.Errorf("bank gateway URL is required for the gateway backend")
		}
	default:
		return fmt.Errorf("invalid bank backend: %s (must be %s or %s)",
			c.Bank.Backend, BankBackendFake, BankBackendGateway)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
