package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Konsultn-Engineering/sqlbuild/ast"
	"github.com/Konsultn-Engineering/sqlbuild/schema"
)

// Row is one row of insert data: Values, Record or a Model.
type Row interface {
	extract(fields []string, gens map[string]schema.IDGenerator) ([]slot, error)
}

// Values is a positional row; its length must match the field list.
type Values []any

// Record is a keyed row. Keys outside the field list are ignored and fields
// without a key render as DEFAULT.
type Record map[string]any

// Model wraps a struct (or pointer to one) as a keyed row, mapped through
// its `db` tags.
func Model(v any) Row {
	return modelRow{v: v}
}

type modelRow struct {
	v any
}

// slot is a single VALUES entry. A default slot is rendered as DEFAULT and
// never bound.
type slot struct {
	value     any
	isDefault bool
}

func (s slot) lower() ast.Node {
	if s.isDefault {
		return ast.DefaultValue
	}
	return ast.NewValue(s.value)
}

func (r Values) extract(fields []string, _ map[string]schema.IDGenerator) ([]slot, error) {
	if len(r) != len(fields) {
		return nil, &ShapeError{Fields: len(fields), Values: len(r)}
	}
	slots := make([]slot, len(r))
	for i, v := range r {
		slots[i] = slot{value: v}
	}
	return slots, nil
}

func (r Record) extract(fields []string, gens map[string]schema.IDGenerator) ([]slot, error) {
	return extractKeyed(r, fields, gens, nil)
}

func (m modelRow) extract(fields []string, gens map[string]schema.IDGenerator) ([]slot, error) {
	rv := reflect.ValueOf(m.v)
	if !rv.IsValid() {
		return nil, &ConstructionError{Reason: "model row is nil"}
	}
	meta, err := schema.Introspect(rv.Type())
	if err != nil {
		return nil, &ConstructionError{Reason: err.Error()}
	}
	record, err := meta.Extract(rv)
	if err != nil {
		return nil, &ConstructionError{Reason: err.Error()}
	}
	return extractKeyed(record, fields, gens, meta)
}

// extractKeyed orders a keyed row by fields. Missing fields are filled by a
// registered generator, then by the model's generator tag, else DEFAULT.
func extractKeyed(record map[string]any, fields []string, gens map[string]schema.IDGenerator, meta *schema.EntityMeta) ([]slot, error) {
	slots := make([]slot, len(fields))
	for i, f := range fields {
		if v, ok := record[f]; ok {
			slots[i] = slot{value: v}
			continue
		}

		gen := gens[f]
		if gen == nil && meta != nil {
			if fm, ok := meta.ColumnMap[f]; ok && fm.Tag.Generator != "" {
				g, ok := schema.LookupGenerator(fm.Tag.Generator)
				if !ok {
					return nil, &ConstructionError{Reason: fmt.Sprintf("unknown generator %q for field %s", fm.Tag.Generator, f)}
				}
				gen = g
			}
		}
		if gen == nil {
			slots[i] = slot{isDefault: true}
			continue
		}

		v, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", f, err)
		}
		slots[i] = slot{value: v}
	}
	return slots, nil
}

// RowSet is the ordered row data of an insert. Every row holds exactly one
// slot per field.
type RowSet struct {
	fields     []string
	rows       [][]slot
	generators map[string]schema.IDGenerator
}

// NewRowSet returns an empty row set over fields.
func NewRowSet(fields ...string) (*RowSet, error) {
	if err := validateFields("", fields); err != nil {
		return nil, err
	}
	return &RowSet{fields: append([]string(nil), fields...)}, nil
}

// Fields returns a copy of the field list.
func (rs *RowSet) Fields() []string {
	return append([]string(nil), rs.fields...)
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	return len(rs.rows)
}

// Generate fills field with gen for keyed rows added afterwards that do not
// provide it. Positional rows are never touched.
func (rs *RowSet) Generate(field string, gen schema.IDGenerator) error {
	if gen == nil {
		return &ConstructionError{Reason: fmt.Sprintf("nil generator for field %s", field)}
	}
	if !rs.hasField(field) {
		return &ConstructionError{Reason: fmt.Sprintf("generated field %s is not in the field list", field)}
	}
	if rs.generators == nil {
		rs.generators = make(map[string]schema.IDGenerator)
	}
	rs.generators[field] = gen
	return nil
}

// AddRow appends one row.
func (rs *RowSet) AddRow(row Row) error {
	return rs.AddRows(row)
}

// AddRows appends rows in order. If any row is rejected none are added.
func (rs *RowSet) AddRows(rows ...Row) error {
	extracted := make([][]slot, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			return &ConstructionError{Reason: fmt.Sprintf("row %d is nil", i)}
		}
		slots, err := row.extract(rs.fields, rs.generators)
		if err != nil {
			return err
		}
		extracted = append(extracted, slots)
	}
	rs.rows = append(rs.rows, extracted...)
	return nil
}

// Clone returns a deep copy.
func (rs *RowSet) Clone() *RowSet {
	out := &RowSet{
		fields: append([]string(nil), rs.fields...),
		rows:   make([][]slot, len(rs.rows)),
	}
	for i, row := range rs.rows {
		out.rows[i] = append([]slot(nil), row...)
	}
	if rs.generators != nil {
		out.generators = make(map[string]schema.IDGenerator, len(rs.generators))
		for k, g := range rs.generators {
			out.generators[k] = g
		}
	}
	return out
}

func (rs *RowSet) hasField(field string) bool {
	for _, f := range rs.fields {
		if f == field {
			return true
		}
	}
	return false
}

func (rs *RowSet) lower() [][]ast.Node {
	out := make([][]ast.Node, len(rs.rows))
	for i, row := range rs.rows {
		nodes := make([]ast.Node, len(row))
		for j, s := range row {
			nodes[j] = s.lower()
		}
		out[i] = nodes
	}
	return out
}

func validateFields(table string, fields []string) error {
	if len(fields) == 0 {
		return &ConstructionError{Table: table, Reason: "field list is empty"}
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return &ConstructionError{Table: table, Reason: "field name is empty"}
		}
		if _, dup := seen[f]; dup {
			return &ConstructionError{Table: table, Reason: fmt.Sprintf("field %s listed twice", f)}
		}
		seen[f] = struct{}{}
	}
	return nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return &ConstructionError{Reason: "table name is empty"}
	}
	return nil
}
