package database

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Konsultn-Engineering/sqlbuild/dialect"
	"github.com/Konsultn-Engineering/sqlbuild/query"
)

var ErrLastInsertIDUnsupported = errors.New("LastInsertId not supported in PostgreSQL, use RETURNING")

// PgxDatabase implements Database for pgxpool.Pool. Statements always
// compile for the postgres dialect.
type PgxDatabase struct {
	pool     *pgxpool.Pool
	compiler *query.Compiler
	logger   *slog.Logger
}

// NewPgxDatabase wraps pool.
func NewPgxDatabase(pool *pgxpool.Pool, opts ...Option) (*PgxDatabase, error) {
	if pool == nil {
		return nil, errors.New("nil *pgxpool.Pool")
	}
	o := buildOptions(opts)
	compiler, err := query.NewCompiler(dialect.NewPostgresDialect(), o.compilerOptions()...)
	if err != nil {
		return nil, err
	}
	return &PgxDatabase{pool: pool, compiler: compiler, logger: o.logger}, nil
}

func (p *PgxDatabase) Compiler() *query.Compiler { return p.compiler }

// Pool returns the underlying pool.
func (p *PgxDatabase) Pool() *pgxpool.Pool { return p.pool }

// ExecContext executes a query without returning rows.
func (p *PgxDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	logStatement(ctx, p.logger, "exec", query, args)
	cmdTag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return PgxResult{cmdTag: cmdTag}, nil
}

// QueryContext executes a query that returns rows.
func (p *PgxDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	logStatement(ctx, p.logger, "query", query, args)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &PgxRows{rows: rows}, nil
}

// PingContext verifies the connection to the database is alive.
func (p *PgxDatabase) PingContext(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the pool.
func (p *PgxDatabase) Close() error {
	p.pool.Close()
	return nil
}

// PgxRows implements Rows for pgx.Rows.
type PgxRows struct {
	rows              pgx.Rows
	fieldDescriptions []pgconn.FieldDescription
}

func NewPgxRows(rows pgx.Rows) *PgxRows {
	return &PgxRows{rows: rows}
}

// Next prepares the next result row for reading.
func (p *PgxRows) Next() bool { return p.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (p *PgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }

// Close closes the rows iterator.
func (p *PgxRows) Close() error { p.rows.Close(); return nil }

func (p *PgxRows) Err() error { return p.rows.Err() }

// Columns returns the column names.
func (p *PgxRows) Columns() ([]string, error) {
	if p.fieldDescriptions == nil {
		p.fieldDescriptions = p.rows.FieldDescriptions()
	}
	columns := make([]string, len(p.fieldDescriptions))
	for i, fd := range p.fieldDescriptions {
		columns[i] = fd.Name
	}
	return columns, nil
}

// Values returns the values for the current row.
func (p *PgxRows) Values() ([]any, error) {
	return p.rows.Values()
}

// PgxResult implements Result for pgx command tags.
type PgxResult struct {
	cmdTag pgconn.CommandTag
}

func NewPgxResult(tag pgconn.CommandTag) PgxResult {
	return PgxResult{cmdTag: tag}
}

func (r PgxResult) LastInsertId() (int64, error) {
	return 0, ErrLastInsertIDUnsupported
}

// RowsAffected returns the number of rows affected by the command.
func (r PgxResult) RowsAffected() (int64, error) {
	return r.cmdTag.RowsAffected(), nil
}

var (
	_ Database = (*PgxDatabase)(nil)
	_ Rows     = (*PgxRows)(nil)
)
