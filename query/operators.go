package query

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
)

// Operator is the closed set of comparisons a predicate can express.
type Operator int

const (
	OpEq Operator = iota + 1
	OpNe
	OpGt
	OpLt
	OpGte
	OpLte
	OpIn
	OpNotIn
	OpNull
)

var operatorKeys = map[string]Operator{
	"eq":   OpEq,
	"ne":   OpNe,
	"gt":   OpGt,
	"lt":   OpLt,
	"gte":  OpGte,
	"lte":  OpLte,
	"in":   OpIn,
	"nin":  OpNotIn,
	"null": OpNull,
}

// ParseOperator resolves an operator key such as "gt".
func ParseOperator(key string) (Operator, error) {
	if op, ok := operatorKeys[key]; ok {
		return op, nil
	}
	return 0, &UnknownOperatorError{Operator: key}
}

// String returns the operator key.
func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpGt:
		return "gt"
	case OpLt:
		return "lt"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	case OpIn:
		return "in"
	case OpNotIn:
		return "nin"
	case OpNull:
		return "null"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// SQL returns the token the operator renders as. OpNull has none of its
// own; it renders IS NULL or IS NOT NULL depending on its value.
func (o Operator) SQL() string {
	switch o {
	case OpEq:
		return ast.OpEqual
	case OpNe:
		return ast.OpNotEqual
	case OpGt:
		return ast.OpGreaterThan
	case OpLt:
		return ast.OpLessThan
	case OpGte:
		return ast.OpGreaterThanOrEqual
	case OpLte:
		return ast.OpLessThanOrEqual
	case OpIn:
		return ast.OpIn
	case OpNotIn:
		return ast.OpNotIn
	case OpNull:
		return ast.OpIsNull
	default:
		return ""
	}
}

func (o Operator) valid() bool {
	return o >= OpEq && o <= OpNull
}

// Comparison is an operator applied to a comparand.
type Comparison struct {
	Op    Operator
	Value any
}

func Eq(v any) Comparison  { return Comparison{Op: OpEq, Value: v} }
func Ne(v any) Comparison  { return Comparison{Op: OpNe, Value: v} }
func Gt(v any) Comparison  { return Comparison{Op: OpGt, Value: v} }
func Lt(v any) Comparison  { return Comparison{Op: OpLt, Value: v} }
func Gte(v any) Comparison { return Comparison{Op: OpGte, Value: v} }
func Lte(v any) Comparison { return Comparison{Op: OpLte, Value: v} }

// In and NotIn accept the values inline or as a single slice.
func In(values ...any) Comparison    { return Comparison{Op: OpIn, Value: spread(values)} }
func NotIn(values ...any) Comparison { return Comparison{Op: OpNotIn, Value: spread(values)} }

func spread(values []any) []any {
	if len(values) == 1 {
		return toList(values[0])
	}
	return append([]any(nil), values...)
}

func IsNull() Comparison    { return Comparison{Op: OpNull, Value: true} }
func IsNotNull() Comparison { return Comparison{Op: OpNull, Value: false} }

// comparisons normalizes a predicate value: a Comparison, an operator object
// keyed by operator name, or a bare scalar meaning equality. Operator objects
// with several keys yield one comparison per key, ordered by key.
func comparisons(column string, value any) ([]Comparison, error) {
	switch v := value.(type) {
	case Comparison:
		if v.Op == OpIn || v.Op == OpNotIn {
			v.Value = toList(v.Value)
		}
		if err := v.check(column); err != nil {
			return nil, err
		}
		return []Comparison{v}, nil
	case map[string]any:
		if len(v) == 0 {
			return nil, &ConstructionError{Reason: fmt.Sprintf("empty operator object for column %s", column)}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]Comparison, 0, len(keys))
		for _, k := range keys {
			op, ok := operatorKeys[k]
			if !ok {
				return nil, &UnknownOperatorError{Column: column, Operator: k}
			}
			c := Comparison{Op: op, Value: v[k]}
			if op == OpIn || op == OpNotIn {
				c.Value = toList(v[k])
			}
			if err := c.check(column); err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return []Comparison{Eq(value)}, nil
	}
}

func (c Comparison) check(column string) error {
	if !c.Op.valid() {
		return &UnknownOperatorError{Column: column, Operator: c.Op.String()}
	}
	switch c.Op {
	case OpIn, OpNotIn:
		list, ok := c.Value.([]any)
		if !ok || len(list) == 0 {
			return &ConstructionError{Reason: fmt.Sprintf("%s on column %s needs at least one value", c.Op, column)}
		}
	case OpNull:
		if _, ok := c.Value.(bool); !ok {
			return &ConstructionError{Reason: fmt.Sprintf("null on column %s takes true or false", column)}
		}
	}
	return nil
}

// toList spreads any slice or array into []any; other values become a
// one-element list.
func toList(v any) []any {
	if list, ok := v.([]any); ok {
		return append([]any(nil), list...)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// lower renders the comparison against a qualified column.
func (c Comparison) lower(table, column string) ast.Node {
	switch c.Op {
	case OpIn, OpNotIn:
		return ast.InList(table, column, c.Op.SQL(), c.Value.([]any))
	case OpNull:
		return ast.NullCheck(table, column, c.Value.(bool))
	default:
		return ast.Compare(table, column, c.Op.SQL(), c.Value)
	}
}
