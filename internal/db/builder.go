package db

import (
	"sort"
	"strings"
)

// SchemaBuilder is a fluent builder for query schemas.
type SchemaBuilder struct {
	s Schema
}

// NewSchema starts building a schema for the named index.
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{
		s: Schema{
			Name:       name,
			PrimaryKey: "id",
			Fields:     make(map[string]FieldType),
		},
	}
}

// Prefix sets the key prefix of documents in the index.
func (b *SchemaBuilder) Prefix(prefix string) *SchemaBuilder {
	b.s.KeyPrefix = prefix
	return b
}

// PrimaryKey sets the primary-key field.
func (b *SchemaBuilder) PrimaryKey(field string) *SchemaBuilder {
	b.s.PrimaryKey = field
	return b
}

// Tag declares TAG fields.
func (b *SchemaBuilder) Tag(names ...string) *SchemaBuilder {
	return b.field(FieldTag, names)
}

// Numeric declares NUMERIC fields.
func (b *SchemaBuilder) Numeric(names ...string) *SchemaBuilder {
	return b.field(FieldNumeric, names)
}

// Text declares TEXT fields.
func (b *SchemaBuilder) Text(names ...string) *SchemaBuilder {
	return b.field(FieldText, names)
}

// Field declares a single field of type t.
func (b *SchemaBuilder) Field(name string, t FieldType) *SchemaBuilder {
	return b.field(t, []string{name})
}

func (b *SchemaBuilder) field(t FieldType, names []string) *SchemaBuilder {
	for _, n := range names {
		b.s.Fields[n] = t
	}
	return b
}

// Build validates and returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if err := b.s.Validate(); err != nil {
		return nil, err
	}
	s := b.s
	return &s, nil
}

// MustBuild calls Build and panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// String returns a debug representation resembling an FT.CREATE SCHEMA clause.
func (s *Schema) String() string {
	parts := []string{s.Name}
	if s.KeyPrefix != "" {
		parts = append(parts, "PREFIX", s.KeyPrefix)
	}
	parts = append(parts, "SCHEMA")

	names := make([]string, 0, len(s.Fields))
	for n := range s.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		parts = append(parts, n, s.Fields[n].String())
	}
	return strings.Join(parts, " ")
}
