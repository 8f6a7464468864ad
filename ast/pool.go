package ast

import (
	"sync"
)

// Trees are lowered per compile and released right after rendering, so
// every node type the lowering allocates is pooled.
var (
	selectStmtPool = sync.Pool{
		New: func() any {
			return &SelectStmt{
				Columns: make([]Node, 0, 16),
			}
		},
	}

	insertStmtPool = sync.Pool{
		New: func() any {
			return &InsertStmt{
				Columns: make([]*Column, 0, 16),
				Rows:    make([][]Node, 0, 8),
			}
		},
	}

	whereClausePool = sync.Pool{
		New: func() any { return &WhereClause{} },
	}

	whereConditionPool = sync.Pool{
		New: func() any { return &WhereCondition{} },
	}

	columnPool = sync.Pool{
		New: func() any { return &Column{} },
	}

	tablePool = sync.Pool{
		New: func() any { return &Table{} },
	}

	valuePool = sync.Pool{
		New: func() any { return &Value{} },
	}

	binaryExprPool = sync.Pool{
		New: func() any { return &BinaryExpr{} },
	}

	unaryExprPool = sync.Pool{
		New: func() any { return &UnaryExpr{} },
	}

	arrayPool = sync.Pool{
		New: func() any {
			return &Array{Values: make([]Value, 0, 8)}
		},
	}
)
