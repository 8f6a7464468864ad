package connector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Konsultn-Engineering/sqlbuild/database"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
)

// ConnectPostgres opens a pgx pool for cfg and wraps it as a database.
func ConnectPostgres(ctx context.Context, cfg *Config, logger *slog.Logger) (*database.PgxDatabase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime

	logger.DebugContext(ctx, "connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))

	var pool *pgxpool.Pool
	connect := func(ctx context.Context) error {
		ctx, cancel := withTimeout(ctx, cfg)
		defer cancel()

		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}
	if err := connectWithRetry(ctx, cfg, logger, connect); err != nil {
		return nil, err
	}

	db, err := database.NewPgxDatabase(pool,
		database.WithLogger(logger),
		database.WithQueryCache(cfg.Cache.Queries))
	if err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQL opens cfg through the pgx database/sql driver. Statements compile
// for cfg.Dialect.
func OpenSQL(ctx context.Context, cfg *Config, logger *slog.Logger) (*database.SqlDatabase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, err := dialect.ByName(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime)

	ping := func(ctx context.Context) error {
		ctx, cancel := withTimeout(ctx, cfg)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}
	if err := connectWithRetry(ctx, cfg, logger, ping); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := database.NewSqlDatabase(sqlDB, d,
		database.WithLogger(logger),
		database.WithQueryCache(cfg.Cache.Queries),
		database.WithStatementCache(cfg.Cache.Statements))
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func connectWithRetry(ctx context.Context, cfg *Config, logger *slog.Logger, fn func(context.Context) error) error {
	if cfg.Retry == nil {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}
	return retryConnect(ctx, cfg.Retry, logger, fn)
}

func withTimeout(ctx context.Context, cfg *Config) (context.Context, context.CancelFunc) {
	if cfg.ConnectTimeout > 0 {
		return context.WithTimeout(ctx, cfg.ConnectTimeout)
	}
	return context.WithCancel(ctx)
}
