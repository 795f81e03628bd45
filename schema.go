package ftquery

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kailas-cloud/ftquery/internal/db"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

const tagKey = "ftquery"

// schemaMeta holds parsed struct tag metadata, cached per Index.
type schemaMeta struct {
	typ reflect.Type // struct type for reconstruction
	ptr bool         // T is *struct

	idIdx  int
	idName string

	// Mapping from struct field index to document field name.
	fields []fieldMapping
}

type fieldMapping struct {
	structIdx int
	name      string
	kind      db.FieldType
	indexed   bool
}

// parseSchema reflects on T and extracts ftquery struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("ftquery: type parameter must be a struct")
	}
	meta := &schemaMeta{idIdx: -1}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		meta.ptr = true
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("ftquery: type %s is not a struct", t)
	}
	meta.typ = t

	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		if err := applyTag(meta, i, f, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("ftquery: no field with `ftquery:\"...,id\"` tag in %s", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's ftquery tag.
func applyTag(meta *schemaMeta, idx int, f reflect.StructField, tag string) error {
	name, modifier, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	if !settable(f.Type) {
		return fmt.Errorf("ftquery: field %s has unsupported type %s", f.Name, f.Type)
	}

	m := fieldMapping{structIdx: idx, name: name, indexed: true}
	switch modifier {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("ftquery: duplicate id tag on field %s", f.Name)
		}
		meta.idIdx, meta.idName = idx, name
		m.indexed = false
	case "tag":
		m.kind = db.FieldTag
	case "numeric":
		m.kind = db.FieldNumeric
	case "text":
		m.kind = db.FieldText
	case "":
		// Mapped from rows, not declared in the index schema.
		m.indexed = false
	default:
		return fmt.Errorf("ftquery: unknown modifier %q on field %s", modifier, f.Name)
	}
	meta.fields = append(meta.fields, m)
	return nil
}

func settable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// schema builds the query schema for index from the tagged fields.
func (m *schemaMeta) schema(index, keyPrefix string) (*db.Schema, error) {
	b := db.NewSchema(index).Prefix(keyPrefix).PrimaryKey(m.idName)
	for _, f := range m.fields {
		if f.indexed {
			b.Field(f.name, f.kind)
		}
	}
	s, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("ftquery: index %q: %w", index, err)
	}
	return s, nil
}

// fromRow builds a T from a matched row. Fields missing from the row keep
// their zero value.
func fromRow[T any](m *schemaMeta, row result.Row) (T, error) {
	var zero T
	p := reflect.New(m.typ)
	v := p.Elem()
	for _, f := range m.fields {
		raw, ok := row[f.name]
		if !ok {
			continue
		}
		if err := setValue(v.Field(f.structIdx), raw); err != nil {
			return zero, fmt.Errorf("field %s: %w", f.name, err)
		}
	}

	out := v
	if m.ptr {
		out = p
	}
	rec, ok := out.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("type assertion to %T failed", zero)
	}
	return rec, nil
}

func setValue(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil {
				return err
			}
			n = int64(f)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	}
	return nil
}
