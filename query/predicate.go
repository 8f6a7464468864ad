package query

import (
	"sort"
	"strings"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
)

type condition struct {
	column string
	cmp    Comparison
}

// Predicate is an ordered conjunction of column comparisons. The zero value
// is an empty predicate. A Predicate is immutable; And returns a new one.
// Construction errors are kept and reported when the predicate is attached.
type Predicate struct {
	conds []condition
	err   error
}

// Where starts a predicate with column compared to value. value is a
// Comparison, an operator object such as map[string]any{"gt": 50}, or a
// bare scalar compared for equality.
func Where(column string, value any) Predicate {
	return Predicate{}.And(column, value)
}

// WhereMap builds a predicate from a mapping. Entries are ordered by column
// name so the rendering is stable.
func WhereMap(m map[string]any) Predicate {
	columns := make([]string, 0, len(m))
	for c := range m {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	var p Predicate
	for _, c := range columns {
		p = p.And(c, m[c])
	}
	return p
}

// And appends column compared to value.
func (p Predicate) And(column string, value any) Predicate {
	if p.err != nil {
		return p
	}
	if strings.TrimSpace(column) == "" {
		return Predicate{conds: p.conds, err: &ConstructionError{Reason: "predicate column name is empty"}}
	}

	cmps, err := comparisons(column, value)
	if err != nil {
		return Predicate{conds: p.conds, err: err}
	}

	conds := make([]condition, len(p.conds), len(p.conds)+len(cmps))
	copy(conds, p.conds)
	for _, c := range cmps {
		conds = append(conds, condition{column: column, cmp: c})
	}
	return Predicate{conds: conds}
}

// Err returns the first error met while building the predicate.
func (p Predicate) Err() error { return p.err }

// Len returns the number of conditions.
func (p Predicate) Len() int { return len(p.conds) }

// Empty reports whether the predicate has no conditions.
func (p Predicate) Empty() bool { return len(p.conds) == 0 }

// lowerInto appends the conditions to stmt's WHERE clause, AND-joined,
// with every column qualified by table.
func (p Predicate) lowerInto(stmt *ast.SelectStmt, table string) {
	for _, c := range p.conds {
		stmt.AddWhereCondition(c.cmp.lower(table, c.column), ast.OpAnd)
	}
}
