package main

import (
	"log/slog"
	"time"
)

type apiConfig struct {
	Port            uint16        `env:"PORT" default:"8080"`
	AppEnv          string        `env:"APP_ENV" default:"dev"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	// StoreBackend selects where balances and histories live:
	// "memory" (simulated external store) or "postgres".
	StoreBackend string `env:"STORE_BACKEND" default:"memory"`

	// Simulated latency for the memory backend, matching the behavior of
	// the real store this service is designed against. Zero disables it.
	StoreGetLatency time.Duration `env:"STORE_GET_LATENCY" default:"200ms"`
	StorePutLatency time.Duration `env:"STORE_PUT_LATENCY" default:"300ms"`

	// PostgresDSN is required when StoreBackend is "postgres".
	PostgresDSN string `env:"PG_DSN" default:""`
}
