package query

import (
	"github.com/Konsultn-Engineering/sqlbuild/ast"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
)

// SelectBuilder describes SELECT <table>.<field>, ... FROM <table> [WHERE ...].
// Builders are immutable: every mutator returns a new builder.
type SelectBuilder struct {
	table  string
	fields []string
	where  Predicate
}

// Select starts a SELECT of fields from table.
func Select(table string, fields ...string) (*SelectBuilder, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateFields(table, fields); err != nil {
		return nil, err
	}
	return &SelectBuilder{
		table:  table,
		fields: append([]string(nil), fields...),
	}, nil
}

func (sb *SelectBuilder) Table() string { return sb.table }

func (sb *SelectBuilder) Fields() []string {
	return append([]string(nil), sb.fields...)
}

// Predicate returns the attached filter; it is empty when none is set.
func (sb *SelectBuilder) Predicate() Predicate { return sb.where }

// Copy returns an independent clone.
func (sb *SelectBuilder) Copy() *SelectBuilder {
	return &SelectBuilder{
		table:  sb.table,
		fields: append([]string(nil), sb.fields...),
		where:  sb.where,
	}
}

// Where returns a copy filtered by p, replacing any previous predicate.
func (sb *SelectBuilder) Where(p Predicate) (*SelectBuilder, error) {
	if err := p.Err(); err != nil {
		return nil, err
	}
	out := sb.Copy()
	out.where = p
	return out, nil
}

// WhereMap is Where(WhereMap(m)).
func (sb *SelectBuilder) WhereMap(m map[string]any) (*SelectBuilder, error) {
	return sb.Where(WhereMap(m))
}

// Compile renders the statement with the standard dialect.
func (sb *SelectBuilder) Compile() (Compiled, error) {
	return defaultCompiler.Compile(sb)
}

// CompileWith renders the statement for d.
func (sb *SelectBuilder) CompileWith(d dialect.Dialect) (Compiled, error) {
	return compileWith(d, sb)
}

func (sb *SelectBuilder) lower() (ast.Node, error) {
	return sb.lowerSelect(), nil
}

func (sb *SelectBuilder) lowerSelect() *ast.SelectStmt {
	stmt := ast.NewSelectStmt()
	stmt.From = ast.NewTable("", sb.table, "")
	stmt.Columns = append(stmt.Columns, ast.Columns(sb.table, sb.fields...)...)
	sb.where.lowerInto(stmt, sb.table)
	return stmt
}
