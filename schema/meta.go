package schema

import (
	"fmt"
	"reflect"
	"sync"
)

// EntityMeta describes how a struct type maps onto a table.
type EntityMeta struct {
	Type      reflect.Type
	Name      string
	TableName string
	Fields    []*FieldMeta
	ColumnMap map[string]*FieldMeta
}

type FieldMeta struct {
	Name   string
	DBName string
	Index  []int
	Tag    *ParsedTag
}

var entityCache sync.Map // map[reflect.Type]*EntityMeta

// Introspect returns the cached metadata for t using the default naming
// strategy. Pointer types are dereferenced.
func Introspect(t reflect.Type) (*EntityMeta, error) {
	if t == nil {
		return nil, fmt.Errorf("invalid model type: nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("invalid model type: %s", t.Kind())
	}
	if meta, ok := entityCache.Load(t); ok {
		return meta.(*EntityMeta), nil
	}
	meta, err := buildMeta(t, DefaultNamingStrategy())
	if err != nil {
		return nil, err
	}
	actual, _ := entityCache.LoadOrStore(t, meta)
	return actual.(*EntityMeta), nil
}

func buildMeta(t reflect.Type, naming NamingStrategy) (*EntityMeta, error) {
	meta := &EntityMeta{
		Type:      t,
		Name:      t.Name(),
		TableName: naming.TableName(t.Name()),
		ColumnMap: make(map[string]*FieldMeta, t.NumField()),
	}

	if err := collectFields(meta, t, nil, naming); err != nil {
		return nil, err
	}
	if len(meta.Fields) == 0 {
		return nil, fmt.Errorf("model %s has no mapped fields", t.Name())
	}
	return meta, nil
}

// collectFields walks exported fields, flattening embedded structs.
func collectFields(meta *EntityMeta, t reflect.Type, parent []int, naming NamingStrategy) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), parent...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("db") == "" {
			if err := collectFields(meta, sf.Type, index, naming); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		tag, err := parseTag(sf.Name, sf.Tag, naming)
		if err != nil {
			return fmt.Errorf("model %s: %w", meta.Name, err)
		}
		if tag.Skip {
			continue
		}
		if _, dup := meta.ColumnMap[tag.ColumnName]; dup {
			return fmt.Errorf("model %s: column %q mapped twice", meta.Name, tag.ColumnName)
		}

		field := &FieldMeta{
			Name:   sf.Name,
			DBName: tag.ColumnName,
			Index:  index,
			Tag:    tag,
		}
		meta.Fields = append(meta.Fields, field)
		meta.ColumnMap[field.DBName] = field
	}
	return nil
}

// Columns returns the mapped column names in declaration order.
func (m *EntityMeta) Columns() []string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = f.DBName
	}
	return cols
}

// Extract reads v into a column -> value record. Zero-valued fields tagged
// default or with a generator are left out so the caller can fill them.
func (m *EntityMeta) Extract(v reflect.Value) (map[string]any, error) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot extract nil %s", m.Name)
		}
		v = v.Elem()
	}
	if v.Type() != m.Type {
		return nil, fmt.Errorf("cannot extract %s from %s", m.Name, v.Type())
	}

	record := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		fv, ok := fieldByIndex(v, f.Index)
		if !ok {
			continue
		}
		if (f.Tag.Default || f.Tag.Generator != "") && fv.IsZero() {
			continue
		}
		record[f.DBName] = fv.Interface()
	}
	return record, nil
}

// fieldByIndex follows index, reporting false when it crosses a nil
// embedded pointer.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}
