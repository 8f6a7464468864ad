package query

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceConflict is returned when rows are added to an insert that
	// already selects from a source statement.
	ErrSourceConflict = errors.New("insert already has a source statement")

	// ErrRowsConflict is returned when a source statement is attached to an
	// insert that already holds rows.
	ErrRowsConflict = errors.New("insert already has rows")
)

// ConstructionError reports an invalid table, field list or argument.
type ConstructionError struct {
	Table  string
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("invalid statement: %s", e.Reason)
	}
	return fmt.Sprintf("invalid statement on %s: %s", e.Table, e.Reason)
}

// ShapeError reports a positional row whose length differs from the field list.
type ShapeError struct {
	Fields int
	Values int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row has %d values, expected %d", e.Values, e.Fields)
}

// UnknownOperatorError reports an operator key outside the recognized set.
type UnknownOperatorError struct {
	Column   string
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("unknown operator %q", e.Operator)
	}
	return fmt.Sprintf("unknown operator %q on column %s", e.Operator, e.Column)
}

// FieldCountMismatchError reports an INSERT ... SELECT whose target and source
// field lists differ in length.
type FieldCountMismatchError struct {
	Target int
	Source int
}

func (e *FieldCountMismatchError) Error() string {
	return fmt.Sprintf("insert has %d fields but source selects %d", e.Target, e.Source)
}

// EmptyStatementError reports an insert compiled with neither rows nor a source.
type EmptyStatementError struct {
	Table string
}

func (e *EmptyStatementError) Error() string {
	return fmt.Sprintf("insert into %s has no rows and no source", e.Table)
}
