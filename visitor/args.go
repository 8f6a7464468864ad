package visitor

import "github.com/Konsultn-Engineering/sqlbuild/ast"

// argCollector walks a tree in render order and binds its values without
// writing SQL. It pairs a cached SQL text with the values of the statement
// being compiled.
type argCollector struct {
	binder *Binder
}

func (c argCollector) VisitSelect(s *ast.SelectStmt) error {
	if s.Where != nil {
		return s.Where.Accept(c)
	}
	return nil
}

func (c argCollector) VisitInsert(stmt *ast.InsertStmt) error {
	if stmt.Source != nil {
		return stmt.Source.Accept(c)
	}
	if len(stmt.Rows) == 0 {
		return ErrEmptyInsert
	}
	for _, row := range stmt.Rows {
		for _, slot := range row {
			if err := slot.Accept(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c argCollector) VisitColumn(*ast.Column) error   { return nil }
func (c argCollector) VisitTable(*ast.Table) error     { return nil }
func (c argCollector) VisitDefault(*ast.Default) error { return nil }

func (c argCollector) VisitValue(val *ast.Value) error {
	c.binder.Bind(val.Val)
	return nil
}

func (c argCollector) VisitArray(a *ast.Array) error {
	for i := range a.Values {
		c.binder.Bind(a.Values[i].Val)
	}
	return nil
}

func (c argCollector) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(c); err != nil {
		return err
	}
	return expr.Right.Accept(c)
}

func (c argCollector) VisitUnaryExpr(expr *ast.UnaryExpr) error {
	return expr.Operand.Accept(c)
}

func (c argCollector) VisitWhereClause(clause *ast.WhereClause) error {
	if clause == nil {
		return nil
	}
	for cond := clause.First; cond != nil; cond = cond.Next {
		if err := cond.Condition.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

var _ ast.Visitor = argCollector{}
