package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/sqlbuild/database"
	"github.com/Konsultn-Engineering/sqlbuild/query"
)

var ErrNothingToCreate = errors.New("nothing to create")

// Engine runs statements and model inserts against one database.
type Engine struct {
	db database.Database
}

func New(db database.Database) *Engine {
	return &Engine{db: db}
}

func (e *Engine) Database() database.Database {
	return e.db
}

// Exec compiles and executes stmt.
func (e *Engine) Exec(ctx context.Context, stmt query.Statement) (database.Result, error) {
	return database.Exec(ctx, e.db, stmt)
}

// Query compiles stmt and returns its rows.
func (e *Engine) Query(ctx context.Context, stmt query.Statement) (database.Rows, error) {
	return database.Query(ctx, e.db, stmt)
}

// Create inserts input, which is *T, T, []T or []*T for a struct type T,
// as a single multi-row INSERT.
func (e *Engine) Create(ctx context.Context, input any) (database.Result, error) {
	stmt, err := buildCreate(input)
	if err != nil {
		return nil, err
	}
	return e.Exec(ctx, stmt)
}

// InsertFrom copies the rows selected by src into table.
func (e *Engine) InsertFrom(ctx context.Context, table string, fields []string, src *query.SelectBuilder) (database.Result, error) {
	stmt, err := query.Insert(table, fields...)
	if err != nil {
		return nil, err
	}
	if stmt, err = stmt.From(src); err != nil {
		return nil, err
	}
	return e.Exec(ctx, stmt)
}

func buildCreate(input any) (*query.InsertBuilder, error) {
	val := reflect.ValueOf(input)
	if !val.IsValid() {
		return nil, fmt.Errorf("Create expects *T, T, []T or []*T, got nil")
	}

	var rows []query.Row
	var elemType reflect.Type

	switch {
	case val.Kind() == reflect.Ptr && val.Type().Elem().Kind() == reflect.Struct,
		val.Kind() == reflect.Struct:
		elemType = val.Type()
		rows = append(rows, query.Model(input))
	case val.Kind() == reflect.Slice:
		elemType = val.Type().Elem()
		for i := 0; i < val.Len(); i++ {
			rows = append(rows, query.Model(val.Index(i).Interface()))
		}
	default:
		return nil, fmt.Errorf("Create expects *T, T, []T or []*T, got %s", val.Type())
	}

	if len(rows) == 0 {
		return nil, ErrNothingToCreate
	}
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	stmt, err := query.InsertFor(reflect.New(elemType).Interface())
	if err != nil {
		return nil, err
	}
	return stmt.AddRows(rows...)
}
