package order

import (
	"fmt"
	"strings"
)

// Direction is the sort direction of a single field.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc/desc in any case. Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Ascending reports whether d sorts ascending. Anything but Desc is ascending.
func (d Direction) Ascending() bool { return d != Desc }

// Field is one entry of a sort specification.
type Field struct {
	Name      string
	Direction Direction
}

// Spec is an ordered sort specification. Earlier fields take precedence.
type Spec []Field

// Set adds field with direction d, replacing the direction if field is already present.
func (s Spec) Set(field string, d Direction) Spec {
	for i := range s {
		if s[i].Name == field {
			s[i].Direction = d
			return s
		}
	}
	return append(s, Field{Name: field, Direction: d})
}

// Names returns the field names in order.
func (s Spec) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
