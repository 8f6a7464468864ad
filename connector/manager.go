package connector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Konsultn-Engineering/sqlbuild/database"
)

const (
	// DriverPgx connects through a pgx pool.
	DriverPgx = "pgx"
	// DriverPgxStdlib connects through database/sql with the pgx driver.
	DriverPgxStdlib = "pgx-stdlib"
)

// ConnectFunc opens a database for a config.
type ConnectFunc func(ctx context.Context, cfg *Config, logger *slog.Logger) (database.Database, error)

var globalManager = &Manager{
	drivers: map[string]ConnectFunc{
		DriverPgx: func(ctx context.Context, cfg *Config, logger *slog.Logger) (database.Database, error) {
			return ConnectPostgres(ctx, cfg, logger)
		},
		DriverPgxStdlib: func(ctx context.Context, cfg *Config, logger *slog.Logger) (database.Database, error) {
			return OpenSQL(ctx, cfg, logger)
		},
	},
}

type Manager struct {
	drivers map[string]ConnectFunc
	mu      sync.RWMutex
}

// Register makes a driver available to Connect, replacing any previous one.
func Register(name string, fn ConnectFunc) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.drivers[name] = fn
}

// Connect opens cfg with the driver it names.
func Connect(ctx context.Context, cfg *Config, logger *slog.Logger) (database.Database, error) {
	globalManager.mu.RLock()
	fn, ok := globalManager.drivers[cfg.Driver]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("driver %s not registered", cfg.Driver)
	}
	return fn(ctx, cfg, logger)
}
