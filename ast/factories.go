package ast

// Columns builds one column node per name, all qualified by table.
func Columns(table string, names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = NewColumn(table, name, "")
	}
	return nodes
}

// Compare builds "table.column op ?".
func Compare(table, column, op string, value any) *BinaryExpr {
	return NewBinaryExpr(NewColumn(table, column, ""), op, NewValue(value))
}

// InList builds "table.column op (?, ...)" for OpIn and OpNotIn.
func InList(table, column, op string, values []any) *BinaryExpr {
	return NewBinaryExpr(NewColumn(table, column, ""), op, NewArray(values))
}

// NullCheck builds "table.column IS NULL", or IS NOT NULL when isNull is false.
func NullCheck(table, column string, isNull bool) *UnaryExpr {
	op := OpIsNotNull
	if isNull {
		op = OpIsNull
	}
	return NewUnaryExpr(NewColumn(table, column, ""), op, false)
}
