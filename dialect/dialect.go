package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder returns the token for the n-th bound value, 1-based.
	Placeholder(n int) string
	RenderValue(v any) string
}

// ByName resolves a dialect from its configuration name.
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", "standard", "ansi":
		return NewStandardDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	default:
		return nil, fmt.Errorf("unknown dialect: %s", name)
	}
}

// renderLiteral inlines v as a SQL literal. Only used for debug output,
// never for executed SQL.
func renderLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05.000000") + "'"
	case []byte:
		return fmt.Sprintf("X'%x'", val)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}
