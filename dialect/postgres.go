package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (Postgres) Name() string { return "postgres" }

func (p Postgres) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return fmt.Sprintf("E'\\\\x%x'", b) // hex bytea literal
	}
	return renderLiteral(v)
}
