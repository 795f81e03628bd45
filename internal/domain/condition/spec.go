// Package condition models filter conditions as a recursive tagged union and
// compiles them into the flat query-string syntax of the search engine.
//
// A condition is one of three kinds:
//
//	Lit("status:1")                          literal, passed through verbatim
//	Op("AND", Lit("a"), Lit("b"))            operator form: operator token, then operands
//	Hash(Field("status", Lit(1)))            hash form: field -> value or candidate set
//
// Operator and hash forms nest arbitrarily deep.
package condition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the shapes a Spec can take.
type Kind uint8

const (
	// KindLiteral is an opaque scalar.
	KindLiteral Kind = iota
	// KindList is an ordered sequence; operator form when its head is a literal.
	KindList
	// KindMap is an ordered field -> value mapping (hash form).
	KindMap
)

// Operator tokens with a dedicated handler. Anything else is emitted as a simple condition.
const (
	OpAnd   = "AND"
	OpOr    = "OR"
	OpNot   = "NOT"
	OpIn    = "IN"
	OpNotIn = "NOT IN"
	OpWild  = "WILD"
)

// Spec is a condition specification. The zero value is the empty literal.
type Spec struct {
	kind   Kind
	text   string
	absent bool
	items  []Spec
	pairs  []Pair
}

// Pair is a single hash-form entry.
type Pair struct {
	Field string
	Value Spec
}

// Lit creates a literal from a Go scalar. nil yields the absent marker.
func Lit(v any) Spec {
	switch t := v.(type) {
	case nil:
		return Null()
	case Spec:
		return t
	case string:
		return Spec{text: t}
	case int:
		return Spec{text: strconv.Itoa(t)}
	case int64:
		return Spec{text: strconv.FormatInt(t, 10)}
	case int32:
		return Spec{text: strconv.FormatInt(int64(t), 10)}
	case uint:
		return Spec{text: strconv.FormatUint(uint64(t), 10)}
	case uint64:
		return Spec{text: strconv.FormatUint(t, 10)}
	case float64:
		return Spec{text: strconv.FormatFloat(t, 'g', -1, 64)}
	case float32:
		return Spec{text: strconv.FormatFloat(float64(t), 'g', -1, 32)}
	case bool:
		return Spec{text: strconv.FormatBool(t)}
	case fmt.Stringer:
		return Spec{text: t.String()}
	default:
		return Spec{text: fmt.Sprint(t)}
	}
}

// Null returns the absent marker. Hash-form entries holding it are skipped.
func Null() Spec { return Spec{absent: true} }

// List creates an ordered sequence.
func List(items ...Spec) Spec {
	return Spec{kind: KindList, items: items}
}

// Values creates a list of literals, typically a candidate set for IN.
func Values(vs ...any) Spec {
	items := make([]Spec, len(vs))
	for i, v := range vs {
		items[i] = Lit(v)
	}
	return List(items...)
}

// Op creates an operator-form condition.
func Op(op string, operands ...Spec) Spec {
	return List(append([]Spec{Lit(op)}, operands...)...)
}

// And joins operands with AND.
func And(operands ...Spec) Spec { return Op(OpAnd, operands...) }

// Or joins operands with OR.
func Or(operands ...Spec) Spec { return Op(OpOr, operands...) }

// Not negates a single operand.
func Not(operand Spec) Spec { return Op(OpNot, operand) }

// In tests field membership in a candidate set.
func In(field string, values Spec) Spec { return Op(OpIn, Lit(field), values) }

// NotIn tests field non-membership in a candidate set.
func NotIn(field string, values Spec) Spec { return Op(OpNotIn, Lit(field), values) }

// Wild passes wildcard or proximity terms through to the engine.
func Wild(operands ...Spec) Spec { return Op(OpWild, operands...) }

// Hash creates a hash-form condition. Entry order is preserved.
func Hash(pairs ...Pair) Spec {
	return Spec{kind: KindMap, pairs: pairs}
}

// Field creates a hash-form entry.
func Field(name string, value Spec) Pair {
	return Pair{Field: name, Value: value}
}

// FromAny converts plain Go values into a Spec. Slices become lists and
// maps become hash form with keys in sorted order.
func FromAny(v any) Spec {
	switch t := v.(type) {
	case Spec:
		return t
	case []Spec:
		return List(t...)
	case []any:
		items := make([]Spec, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return List(items...)
	case []string:
		items := make([]Spec, len(t))
		for i, item := range t {
			items[i] = Lit(item)
		}
		return List(items...)
	case []int:
		items := make([]Spec, len(t))
		for i, item := range t {
			items[i] = Lit(item)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			pairs[i] = Field(k, FromAny(t[k]))
		}
		return Hash(pairs...)
	default:
		return Lit(t)
	}
}

// Kind reports the shape of the spec.
func (s Spec) Kind() Kind { return s.kind }

// IsAbsent reports whether s is the absent marker.
func (s Spec) IsAbsent() bool { return s.kind == KindLiteral && s.absent }

// IsComposite reports whether s is a list or a map.
func (s Spec) IsComposite() bool { return s.kind != KindLiteral }

// IsEmpty reports whether s is an empty literal, list or map.
func (s Spec) IsEmpty() bool {
	switch s.kind {
	case KindList:
		return len(s.items) == 0
	case KindMap:
		return len(s.pairs) == 0
	default:
		return s.text == ""
	}
}

// Items returns the elements of a list.
func (s Spec) Items() []Spec { return s.items }

// Pairs returns the entries of a map.
func (s Spec) Pairs() []Pair { return s.pairs }

// Text returns the text of a literal.
func (s Spec) Text() string { return s.text }

// String renders s without compiling it. Lists render as [a b], maps as {f:v g:w}.
func (s Spec) String() string {
	switch s.kind {
	case KindList:
		parts := make([]string, len(s.items))
		for i, item := range s.items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindMap:
		parts := make([]string, len(s.pairs))
		for i, p := range s.pairs {
			parts[i] = p.Field + ":" + p.Value.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return s.text
	}
}
