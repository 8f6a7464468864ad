package query

import (
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
	"github.com/Konsultn-Engineering/sqlbuild/cache"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
	"github.com/Konsultn-Engineering/sqlbuild/visitor"
)

// Compiled is rendered SQL with its arguments in placeholder order.
type Compiled struct {
	SQL  string
	Args []any
}

// Statement is anything the compiler can render.
type Statement interface {
	Table() string
	Fields() []string
	lower() (ast.Node, error)
}

var (
	_ Statement = (*InsertBuilder)(nil)
	_ Statement = (*SelectBuilder)(nil)
)

// Compiler renders statements for one dialect, optionally through a
// fingerprint-keyed cache. It is safe for concurrent use.
type Compiler struct {
	dialect dialect.Dialect
	cache   cache.QueryCache
}

type CompilerOption func(*Compiler) error

// WithCache keeps up to size compiled statements keyed by their fingerprint.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) error {
		qc, err := cache.NewQueryCache(size)
		if err != nil {
			return fmt.Errorf("query cache: %w", err)
		}
		c.cache = qc
		return nil
	}
}

// WithQueryCache shares an existing cache. The cache must not be shared
// with compilers of another dialect.
func WithQueryCache(qc cache.QueryCache) CompilerOption {
	return func(c *Compiler) error {
		c.cache = qc
		return nil
	}
}

var defaultCompiler = &Compiler{dialect: dialect.NewStandardDialect()}

// NewCompiler returns a compiler for d; nil selects the standard dialect.
func NewCompiler(d dialect.Dialect, opts ...CompilerOption) (*Compiler, error) {
	if d == nil {
		d = dialect.NewStandardDialect()
	}
	c := &Compiler{dialect: d}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Compiler) Dialect() dialect.Dialect { return c.dialect }

// Compile renders stmt. Compiling the same statement twice yields equal
// results that share no argument storage.
func (c *Compiler) Compile(stmt Statement) (Compiled, error) {
	return c.build(stmt, false)
}

// Inline renders stmt with literals in place of placeholders. The result is
// meant for logs and must never be executed.
func (c *Compiler) Inline(stmt Statement) (string, error) {
	out, err := c.build(stmt, true)
	return out.SQL, err
}

func (c *Compiler) build(stmt Statement, inline bool) (Compiled, error) {
	if stmt == nil {
		return Compiled{}, &ConstructionError{Reason: "statement is nil"}
	}
	root, err := stmt.lower()
	if err != nil {
		return Compiled{}, err
	}
	defer releaseNode(root)

	qc := c.cache
	if inline {
		qc = nil
	}
	v := visitor.NewSQLVisitor(c.dialect, qc)
	defer v.Release()
	v.Binder().SetInline(inline)

	sql, args, err := v.Build(root)
	if err != nil {
		if errors.Is(err, visitor.ErrEmptyInsert) {
			return Compiled{}, &EmptyStatementError{Table: stmt.Table()}
		}
		return Compiled{}, fmt.Errorf("compile %s: %w", stmt.Table(), err)
	}
	return Compiled{SQL: sql, Args: args}, nil
}

func compileWith(d dialect.Dialect, stmt Statement) (Compiled, error) {
	c, err := NewCompiler(d)
	if err != nil {
		return Compiled{}, err
	}
	return c.Compile(stmt)
}

func releaseNode(n ast.Node) {
	if r, ok := n.(ast.Releaser); ok {
		r.Release()
	}
}

// Must panics if err is non-nil. It is meant for statically known
// statements, such as package-level variables and tests.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
