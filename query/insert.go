package query

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
	"github.com/Konsultn-Engineering/sqlbuild/schema"
)

// InsertBuilder describes INSERT INTO <table> (<fields>) followed by either
// VALUES rows or a source SELECT, never both. Builders are immutable: every
// mutator returns a new builder and leaves the receiver untouched.
type InsertBuilder struct {
	table  string
	fields []string
	rows   *RowSet
	source *SelectBuilder
}

// Insert starts an INSERT into table over fields.
func Insert(table string, fields ...string) (*InsertBuilder, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	rows, err := NewRowSet(fields...)
	if err != nil {
		if ce, ok := err.(*ConstructionError); ok {
			ce.Table = table
		}
		return nil, err
	}
	return &InsertBuilder{
		table:  table,
		fields: rows.Fields(),
		rows:   rows,
	}, nil
}

// InsertFor starts an INSERT for a struct type: the table is the pluralized
// snake_case type name and the fields are its mapped columns.
func InsertFor(model any) (*InsertBuilder, error) {
	t := reflect.TypeOf(model)
	meta, err := schema.Introspect(t)
	if err != nil {
		return nil, &ConstructionError{Reason: err.Error()}
	}
	return Insert(meta.TableName, meta.Columns()...)
}

func (ib *InsertBuilder) Table() string { return ib.table }

func (ib *InsertBuilder) Fields() []string {
	return append([]string(nil), ib.fields...)
}

// RowCount returns the number of rows added so far.
func (ib *InsertBuilder) RowCount() int { return ib.rows.Len() }

// Source returns a copy of the source statement, or nil.
func (ib *InsertBuilder) Source() *SelectBuilder {
	if ib.source == nil {
		return nil
	}
	return ib.source.Copy()
}

// Copy returns a deep, independent clone.
func (ib *InsertBuilder) Copy() *InsertBuilder {
	out := &InsertBuilder{
		table:  ib.table,
		fields: append([]string(nil), ib.fields...),
		rows:   ib.rows.Clone(),
	}
	if ib.source != nil {
		out.source = ib.source.Copy()
	}
	return out
}

// AddRow returns a copy with row appended.
func (ib *InsertBuilder) AddRow(row Row) (*InsertBuilder, error) {
	return ib.AddRows(row)
}

// AddRows returns a copy with rows appended in order. It fails without
// adding anything if any row is rejected.
func (ib *InsertBuilder) AddRows(rows ...Row) (*InsertBuilder, error) {
	if ib.source != nil {
		return nil, ErrSourceConflict
	}
	out := ib.Copy()
	if err := out.rows.AddRows(rows...); err != nil {
		return nil, err
	}
	return out, nil
}

// From returns a copy that inserts the rows selected by src.
func (ib *InsertBuilder) From(src *SelectBuilder) (*InsertBuilder, error) {
	if src == nil {
		return nil, &ConstructionError{Table: ib.table, Reason: "source statement is nil"}
	}
	if ib.rows.Len() > 0 {
		return nil, ErrRowsConflict
	}
	out := ib.Copy()
	out.source = src.Copy()
	return out, nil
}

// Generate returns a copy that fills field with gen for keyed and model rows
// added afterwards that leave it out.
func (ib *InsertBuilder) Generate(field string, gen schema.IDGenerator) (*InsertBuilder, error) {
	out := ib.Copy()
	if err := out.rows.Generate(field, gen); err != nil {
		if ce, ok := err.(*ConstructionError); ok {
			ce.Table = ib.table
		}
		return nil, err
	}
	return out, nil
}

// GenerateWith is Generate with a generator from the schema registry,
// such as "uuid" or "ulid".
func (ib *InsertBuilder) GenerateWith(field, generator string) (*InsertBuilder, error) {
	gen, ok := schema.LookupGenerator(generator)
	if !ok {
		return nil, &ConstructionError{Table: ib.table, Reason: fmt.Sprintf("unknown generator %q", generator)}
	}
	return ib.Generate(field, gen)
}

// Compile renders the statement with the standard dialect.
func (ib *InsertBuilder) Compile() (Compiled, error) {
	return defaultCompiler.Compile(ib)
}

// CompileWith renders the statement for d.
func (ib *InsertBuilder) CompileWith(d dialect.Dialect) (Compiled, error) {
	return compileWith(d, ib)
}

func (ib *InsertBuilder) lower() (ast.Node, error) {
	if ib.source == nil && ib.rows.Len() == 0 {
		return nil, &EmptyStatementError{Table: ib.table}
	}
	if ib.source != nil && len(ib.source.fields) != len(ib.fields) {
		return nil, &FieldCountMismatchError{Target: len(ib.fields), Source: len(ib.source.fields)}
	}

	stmt := ast.NewInsertStmt()
	stmt.Table = ast.NewTable("", ib.table, "")
	for _, f := range ib.fields {
		stmt.Columns = append(stmt.Columns, ast.NewColumn("", f, ""))
	}
	if ib.source != nil {
		stmt.Source = ib.source.lowerSelect()
		return stmt, nil
	}
	stmt.Rows = append(stmt.Rows, ib.rows.lower()...)
	return stmt, nil
}
