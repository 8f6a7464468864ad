package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Konsultn-Engineering/sqlbuild/query"
)

// Database runs compiled statements. Each implementation owns the compiler
// for its dialect.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	PingContext(ctx context.Context) error
	Compiler() *query.Compiler
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// Exec compiles stmt for db's dialect and executes it.
func Exec(ctx context.Context, db Database, stmt query.Statement) (Result, error) {
	out, err := db.Compiler().Compile(stmt)
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx, out.SQL, out.Args...)
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", stmt.Table(), err)
	}
	return res, nil
}

// Query compiles stmt for db's dialect and returns its rows. The caller
// closes the rows.
func Query(ctx context.Context, db Database, stmt query.Statement) (Rows, error) {
	out, err := db.Compiler().Compile(stmt)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, out.SQL, out.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stmt.Table(), err)
	}
	return rows, nil
}

type options struct {
	logger        *slog.Logger
	queryCache    int
	statementSize int
}

type Option func(*options)

// WithLogger logs every statement at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithQueryCache caches up to size compiled statements.
func WithQueryCache(size int) Option {
	return func(o *options) { o.queryCache = size }
}

// WithStatementCache keeps up to size prepared statements. Only used by
// SqlDatabase; pgx prepares and caches statements itself.
func WithStatementCache(size int) Option {
	return func(o *options) { o.statementSize = size }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o options) compilerOptions() []query.CompilerOption {
	if o.queryCache > 0 {
		return []query.CompilerOption{query.WithCache(o.queryCache)}
	}
	return nil
}

func logStatement(ctx context.Context, logger *slog.Logger, kind, sql string, args []any) {
	logger.DebugContext(ctx, "running statement",
		slog.String("kind", kind),
		slog.String("sql", sql),
		slog.Int("args", len(args)))
}
