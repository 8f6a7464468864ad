package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// ParsedTag is the insert-relevant part of a `db` struct tag.
//
// Supported tag syntax:
//
//	`db:"column_name"`                 // Basic column mapping
//	`db:"column:custom_name"`          // Explicit column name
//	`db:"default"`                     // Zero value renders as DEFAULT
//	`db:"column:id;generator:uuid"`    // Generated when zero
//	`db:"-"`                           // Skip field entirely
type ParsedTag struct {
	ColumnName string
	Skip       bool
	// Default leaves a zero-valued field to the column's schema default.
	Default   bool
	Generator string
}

func parseTag(fieldName string, tag reflect.StructTag, naming NamingStrategy) (*ParsedTag, error) {
	tagValue := tag.Get("db")

	parsed := &ParsedTag{
		ColumnName: naming.ColumnName(fieldName),
	}

	switch {
	case tagValue == "":
		return parsed, nil
	case tagValue == "-":
		return &ParsedTag{Skip: true}, nil
	case !strings.ContainsAny(tagValue, ";:") && tagValue != "default":
		parsed.ColumnName = tagValue
		return parsed, nil
	}

	for _, option := range strings.Split(tagValue, ";") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}

		key, value, hasValue := strings.Cut(option, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "column", "name":
			if value == "" {
				return nil, fmt.Errorf("field %s: empty column name", fieldName)
			}
			parsed.ColumnName = value
		case "default":
			parsed.Default = true
		case "generator", "gen":
			if !hasValue || value == "" {
				return nil, fmt.Errorf("field %s: generator needs a name", fieldName)
			}
			parsed.Generator = value
		default:
			// Ignore unknown options for forward compatibility
		}
	}

	return parsed, nil
}
