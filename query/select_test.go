package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbuild/dialect"
)

func TestSelectCompile(t *testing.T) {
	base := Must(Select("t2", "x", "y"))

	tests := []struct {
		name     string
		where    Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no predicate",
			wantSQL:  "SELECT t2.x, t2.y FROM t2",
			wantArgs: []any{},
		},
		{
			name:     "bare scalar is equality",
			where:    Where("x", 7),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.x = ?",
			wantArgs: []any{7},
		},
		{
			name:     "operator object",
			where:    Where("x", map[string]any{"gt": 50}),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.x > ?",
			wantArgs: []any{50},
		},
		{
			name:     "entries conjoined in insertion order",
			where:    Where("y", Ne("a")).And("x", Gte(1)).And("x", Lte(9)),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.y <> ? AND t2.x >= ? AND t2.x <= ?",
			wantArgs: []any{"a", 1, 9},
		},
		{
			name:     "operator object with several keys",
			where:    Where("x", map[string]any{"lt": 10, "gt": 1}),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.x > ? AND t2.x < ?",
			wantArgs: []any{1, 10},
		},
		{
			name:     "in and null",
			where:    Where("x", In([]int{1, 2})).And("y", IsNotNull()).And("x", map[string]any{"nin": []any{3}}),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.x IN (?, ?) AND t2.y IS NOT NULL AND t2.x NOT IN (?)",
			wantArgs: []any{1, 2, 3},
		},
		{
			name:     "map predicate ordered by column",
			where:    WhereMap(map[string]any{"y": 2, "x": map[string]any{"eq": 1}}),
			wantSQL:  "SELECT t2.x, t2.y FROM t2 WHERE t2.x = ? AND t2.y = ?",
			wantArgs: []any{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := base.Where(tt.where)
			require.NoError(t, err)

			out, err := stmt.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, out.SQL)
			assert.Equal(t, tt.wantArgs, out.Args)
		})
	}
}

func TestSelectWhereReplacesAndCopies(t *testing.T) {
	base := Must(Select("t", "a"))
	first := Must(base.Where(Where("a", 1)))
	second := Must(first.Where(Where("a", 2)))

	assert.True(t, base.Predicate().Empty())
	assert.Equal(t, []any{1}, Must(first.Compile()).Args)
	assert.Equal(t, []any{2}, Must(second.Compile()).Args)
	assert.Equal(t, "SELECT t.a FROM t WHERE t.a = ?", Must(second.Compile()).SQL)

	cleared := Must(second.Where(Predicate{}))
	assert.Equal(t, "SELECT t.a FROM t", Must(cleared.Compile()).SQL)
}

func TestSelectUnknownOperator(t *testing.T) {
	base := Must(Select("t", "a"))

	stmt, err := base.Where(Where("a", map[string]any{"between": 1}))
	assert.Nil(t, stmt)
	var ue *UnknownOperatorError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "a", ue.Column)
	assert.Equal(t, "between", ue.Operator)

	_, err = base.Where(Where("a", Comparison{Op: Operator(42), Value: 1}))
	assert.ErrorAs(t, err, &ue)

	_, err = base.WhereMap(map[string]any{"a": map[string]any{"like": "x%"}})
	assert.ErrorAs(t, err, &ue)
}

func TestSelectConstructionErrors(t *testing.T) {
	var ce *ConstructionError

	_, err := Select("t")
	assert.ErrorAs(t, err, &ce)
	_, err = Select("t", "a", "a")
	assert.ErrorAs(t, err, &ce)
	_, err = Select(" ", "a")
	assert.ErrorAs(t, err, &ce)

	base := Must(Select("t", "a"))
	_, err = base.Where(Where("", 1))
	assert.ErrorAs(t, err, &ce)
	_, err = base.Where(Where("a", In()))
	assert.ErrorAs(t, err, &ce)
	_, err = base.Where(Where("a", map[string]any{}))
	assert.ErrorAs(t, err, &ce)
	_, err = base.Where(Where("a", map[string]any{"null": "yes"}))
	assert.ErrorAs(t, err, &ce)
}

func TestSelectCompileWithPostgres(t *testing.T) {
	stmt := Must(Must(Select("t2", "x", "y")).Where(Where("x", Gt(50)).And("y", In(1, 2))))

	out, err := stmt.CompileWith(dialect.NewPostgresDialect())
	require.NoError(t, err)
	assert.Equal(t, `SELECT "t2"."x", "t2"."y" FROM "t2" WHERE "t2"."x" > $1 AND "t2"."y" IN ($2, $3)`, out.SQL)
	assert.Equal(t, []any{50, 1, 2}, out.Args)
}
