package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// NamingStrategy maps Go identifiers to table and column names.
type NamingStrategy interface {
	ColumnName(fieldName string) string
	TableName(structName string) string
}

type snakeCaseStrategy struct {
	plural bool
}

// DefaultNamingStrategy returns snake_case columns with plural snake_case tables.
func DefaultNamingStrategy() NamingStrategy {
	return snakeCaseStrategy{plural: true}
}

// SingularNamingStrategy returns snake_case columns and singular tables.
func SingularNamingStrategy() NamingStrategy {
	return snakeCaseStrategy{plural: false}
}

func (s snakeCaseStrategy) ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

func (s snakeCaseStrategy) TableName(structName string) string {
	snake := toSnakeCase(structName)
	if !s.plural {
		return snake
	}
	return pluralize(snake)
}

// toSnakeCase converts any naming convention to snake_case.
// Handles acronyms and digits: UserID -> user_id, OAuth2Token -> o_auth2_token.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	switch name {
	case "ID":
		return "id"
	case "UUID":
		return "uuid"
	case "URL":
		return "url"
	case "API":
		return "api"
	case "JSON":
		return "json"
	}

	// If already snake_case (contains underscores and no uppercase), return as-is
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 10)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// aB -> a_b, a1B -> a1_b, ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// pluralize converts singular nouns to their plural forms.
func pluralize(name string) string {
	if name == "" {
		return ""
	}

	// pluralize only the last word of a snake_case name: blog_post -> blog_posts
	prefix, last := "", name
	if idx := strings.LastIndexByte(name, '_'); idx >= 0 {
		prefix, last = name[:idx+1], name[idx+1:]
	}

	switch last {
	case "person":
		return prefix + "people"
	case "datum":
		return prefix + "data"
	case "criterion":
		return prefix + "criteria"
	}

	return prefix + preserveCase(last, pluralizeClient.Pluralize(last, 2, false))
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// preserveCase keeps an all-lowercase original lowercase in the result.
func preserveCase(original, result string) string {
	if strings.ToLower(original) == original {
		return strings.ToLower(result)
	}
	return result
}
