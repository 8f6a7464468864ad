package visitor

import (
	"errors"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
	"github.com/Konsultn-Engineering/sqlbuild/cache"
	"github.com/Konsultn-Engineering/sqlbuild/dialect"
)

var ErrEmptyInsert = errors.New("insert has neither rows nor a source")

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{}
	},
}

type SQLVisitor struct {
	sb      strings.Builder
	binder  *Binder
	dialect dialect.Dialect
	qcache  cache.QueryCache
}

// NewSQLVisitor returns a pooled visitor. q may be nil to disable caching.
func NewSQLVisitor(d dialect.Dialect, q cache.QueryCache) *SQLVisitor {
	if d == nil {
		d = dialect.NewStandardDialect()
	}
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.qcache = q
	v.sb.Reset()
	if v.binder == nil || v.binder.dialect != d {
		v.binder = NewBinder(d)
	} else {
		v.binder.Reset()
	}
	return v
}

func (v *SQLVisitor) Binder() *Binder {
	return v.binder
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.qcache = nil
	v.sb.Reset()
	v.binder.Reset()
	v.binder.SetInline(false)
	visitorPool.Put(v)
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	v.binder.Reset()
}

// Build renders root and returns the SQL text with its args in bind order.
// With a cache, the SQL text is looked up by the tree's shape fingerprint
// and the args are always collected from root itself. The returned args
// slice is owned by the caller.
func (v *SQLVisitor) Build(root ast.Node) (string, []any, error) {
	v.Reset()

	var fp uint64
	if v.qcache != nil {
		fp = root.Fingerprint()
		if sql, ok := v.qcache.Get(fp); ok {
			if err := root.Accept(argCollector{binder: v.binder}); err != nil {
				return "", nil, err
			}
			return sql, v.binder.Values(), nil
		}
	}

	if err := root.Accept(v); err != nil {
		return "", nil, err
	}

	sql := v.sb.String()
	if v.qcache != nil {
		v.qcache.Set(fp, sql)
	}
	return sql, v.binder.Values(), nil
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	v.sb.WriteString("SELECT ")

	for i, col := range s.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
	}

	if s.From != nil {
		v.sb.WriteString(" FROM ")
		if err := s.From.Accept(v); err != nil {
			return err
		}
	}

	if s.Where != nil {
		if err := s.Where.Accept(v); err != nil {
			return err
		}
	}

	return nil
}

func (v *SQLVisitor) VisitInsert(stmt *ast.InsertStmt) error {
	//	INSERT INTO table_name (column_list)
	//	{ VALUES (row), (row) | SELECT ... }

	v.sb.WriteString("INSERT INTO ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	v.sb.WriteString(" (")
	for i, col := range stmt.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		// target columns are never table-qualified
		v.sb.WriteString(v.dialect.QuoteIdentifier(col.Name))
	}
	v.sb.WriteByte(')')

	if stmt.Source != nil {
		v.sb.WriteByte(' ')
		return stmt.Source.Accept(v)
	}

	if len(stmt.Rows) == 0 {
		return ErrEmptyInsert
	}

	v.sb.WriteString(" VALUES ")
	for r, row := range stmt.Rows {
		if r > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteByte('(')
		for i, slot := range row {
			if i > 0 {
				v.sb.WriteString(", ")
			}
			if err := slot.Accept(v); err != nil {
				return err
			}
		}
		v.sb.WriteByte(')')
	}

	return nil
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Table))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(c.Name))

	if c.Alias != "" && c.Alias != c.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	if t.Schema != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Schema))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Name))

	if t.Alias != "" && t.Alias != t.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	v.sb.WriteString(v.binder.Bind(val.Val))
	return nil
}

func (v *SQLVisitor) VisitDefault(*ast.Default) error {
	v.sb.WriteString(ast.KeywordDefault)
	return nil
}

func (v *SQLVisitor) VisitArray(a *ast.Array) error {
	v.sb.WriteByte('(')
	for i := range a.Values {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteString(v.binder.Bind(a.Values[i].Val))
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(v); err != nil {
		return err
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	v.sb.WriteByte(' ')

	return expr.Right.Accept(v)
}

func (v *SQLVisitor) VisitUnaryExpr(expr *ast.UnaryExpr) error {
	if expr.IsPrefix {
		v.sb.WriteString(expr.Operator)
		v.sb.WriteByte(' ')
		return expr.Operand.Accept(v)
	}

	if err := expr.Operand.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	return nil
}

func (v *SQLVisitor) VisitWhereClause(clause *ast.WhereClause) error {
	if clause == nil || clause.First == nil {
		return nil
	}

	v.sb.WriteString(" WHERE ")

	for cond := clause.First; cond != nil; cond = cond.Next {
		if cond != clause.First {
			op := cond.Operator
			if op == "" {
				op = ast.OpAnd
			}
			v.sb.WriteByte(' ')
			v.sb.WriteString(op)
			v.sb.WriteByte(' ')
		}

		if err := cond.Condition.Accept(v); err != nil {
			return err
		}
	}

	return nil
}

var _ ast.Visitor = (*SQLVisitor)(nil)
