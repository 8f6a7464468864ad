package ast

// Comparison operators
const (
	OpEqual              = "="
	OpNotEqual           = "<>"
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
)

// OpAnd joins WHERE conditions.
const OpAnd = "AND"

// Set Operations
const (
	OpIn    = "IN"
	OpNotIn = "NOT IN"
)

// Null Operations
const (
	OpIsNull    = "IS NULL"
	OpIsNotNull = "IS NOT NULL"
)

// KeywordDefault is rendered for a VALUES slot left to the column default.
const KeywordDefault = "DEFAULT"
