package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		key  string
		want Operator
		sql  string
	}{
		{"eq", OpEq, "="},
		{"ne", OpNe, "<>"},
		{"gt", OpGt, ">"},
		{"lt", OpLt, "<"},
		{"gte", OpGte, ">="},
		{"lte", OpLte, "<="},
		{"in", OpIn, "IN"},
		{"nin", OpNotIn, "NOT IN"},
		{"null", OpNull, "IS NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			op, err := ParseOperator(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.key, op.String())
			assert.Equal(t, tt.sql, op.SQL())
		})
	}

	_, err := ParseOperator("GT")
	var ue *UnknownOperatorError
	assert.ErrorAs(t, err, &ue)
}

func TestPredicateIsImmutable(t *testing.T) {
	base := Where("a", 1)
	left := base.And("b", 2)
	right := base.And("c", 3)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, left.Len())
	assert.Equal(t, 2, right.Len())
	assert.Equal(t, "c", right.conds[1].column)
	assert.Equal(t, "b", left.conds[1].column)
}

func TestPredicateKeepsFirstError(t *testing.T) {
	p := Where("a", map[string]any{"bogus": 1}).And("b", 2)
	require.Error(t, p.Err())
	assert.Equal(t, 0, p.Len())

	var ue *UnknownOperatorError
	assert.ErrorAs(t, p.Err(), &ue)
}

func TestInSpreadsSlices(t *testing.T) {
	assert.Equal(t, []any{1, 2}, In([]int{1, 2}).Value)
	assert.Equal(t, []any{"a", "b"}, NotIn("a", "b").Value)
	assert.Equal(t, []any{[]byte("raw")}, In([]byte("raw")).Value)

	values := []any{1, 2}
	cmp := In(values...)
	values[0] = 99
	assert.Equal(t, []any{1, 2}, cmp.Value)
}
