package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Konsultn-Engineering/sqlbuild/cache"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
	"github.com/Konsultn-Engineering/sqlbuild/query"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db       *sql.DB
	compiler *query.Compiler
	stmts    *cache.StatementCache
	logger   *slog.Logger
}

// NewSqlDatabase wraps db; statements are compiled for d.
func NewSqlDatabase(db *sql.DB, d dialect.Dialect, opts ...Option) (*SqlDatabase, error) {
	if db == nil {
		return nil, errors.New("nil *sql.DB")
	}
	o := buildOptions(opts)

	compiler, err := query.NewCompiler(d, o.compilerOptions()...)
	if err != nil {
		return nil, err
	}

	s := &SqlDatabase{db: db, compiler: compiler, logger: o.logger}
	if o.statementSize > 0 {
		s.stmts, err = cache.NewStatementCache(o.statementSize)
		if err != nil {
			return nil, fmt.Errorf("statement cache: %w", err)
		}
	}
	return s, nil
}

func (s *SqlDatabase) Compiler() *query.Compiler { return s.compiler }

// DB returns the underlying handle.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	logStatement(ctx, s.logger, "exec", query, args)
	if s.stmts == nil {
		return s.db.ExecContext(ctx, query, args...)
	}
	stmt, err := s.stmts.GetOrPrepare(ctx, s.db, query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return stmt.ExecContext(ctx, args...)
}

// QueryContext executes a query that returns rows.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	logStatement(ctx, s.logger, "query", query, args)
	var (
		rows *sql.Rows
		err  error
	)
	if s.stmts == nil {
		rows, err = s.db.QueryContext(ctx, query, args...)
	} else {
		var stmt *sql.Stmt
		stmt, err = s.stmts.GetOrPrepare(ctx, s.db, query)
		if err != nil {
			return nil, fmt.Errorf("prepare: %w", err)
		}
		rows, err = stmt.QueryContext(ctx, args...)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes cached statements and then the database.
func (s *SqlDatabase) Close() error {
	if s.stmts != nil {
		_ = s.stmts.Close()
	}
	return s.db.Close()
}

// SetMaxOpenConns sets the maximum number of open connections.
func (s *SqlDatabase) SetMaxOpenConns(n int) { s.db.SetMaxOpenConns(n) }

// SetMaxIdleConns sets the maximum number of idle connections.
func (s *SqlDatabase) SetMaxIdleConns(n int) { s.db.SetMaxIdleConns(n) }

var (
	_ Database = (*SqlDatabase)(nil)
	_ Rows     = (*sql.Rows)(nil)
)
