package db

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType enumerates the FT field types the query dialect distinguishes.
type FieldType int

const (
	// FieldTag is a tag field, matched as @f:{v}. Unknown fields default to it.
	FieldTag FieldType = iota
	// FieldNumeric is a numeric field, matched as @f:[v v].
	FieldNumeric
	// FieldText is a full-text field, matched as @f:(v).
	FieldText
)

// ParseFieldType maps a config name (tag, numeric, text) to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(s) {
	case "", "tag":
		return FieldTag, nil
	case "numeric":
		return FieldNumeric, nil
	case "text":
		return FieldText, nil
	default:
		return FieldTag, fmt.Errorf("unknown field type %q", s)
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldNumeric:
		return "NUMERIC"
	case FieldText:
		return "TEXT"
	default:
		return "TAG"
	}
}

// Schema describes an existing FT index as far as querying needs it.
type Schema struct {
	Name       string
	KeyPrefix  string
	PrimaryKey string
	Fields     map[string]FieldType
}

// FieldType returns the type of field, FieldTag when unknown.
func (s *Schema) FieldType(field string) FieldType {
	if s == nil {
		return FieldTag
	}
	if t, ok := s.Fields[field]; ok {
		return t
	}
	return FieldTag
}

// Validate checks that the schema is well-formed.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(s.Name) {
		return errors.New("index name contains invalid characters")
	}
	if s.PrimaryKey != "" && !IsValidIdentifier(s.PrimaryKey) {
		return fmt.Errorf("primary key %q contains invalid characters", s.PrimaryKey)
	}
	for name := range s.Fields {
		if !IsValidIdentifier(name) {
			return fmt.Errorf("field name %q contains invalid characters", name)
		}
	}
	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
