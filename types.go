package ftquery

import (
	"github.com/kailas-cloud/ftquery/internal/db"
	"github.com/kailas-cloud/ftquery/internal/domain/condition"
	"github.com/kailas-cloud/ftquery/internal/domain/search/order"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	queryuc "github.com/kailas-cloud/ftquery/internal/usecase/query"
)

// Condition is a query condition tree.
type Condition = condition.Spec

// Pair is one field/value entry of a hash condition.
type Pair = condition.Pair

// Row is the field mapping of one matched document.
type Row = result.Row

// Query is a fluent query over records of type T.
type Query[T any] = queryuc.Query[T]

// Model binds a query to an index and tells it how to build records.
type Model[T any] = queryuc.Model[T]

// Direction is a sort direction.
type Direction = order.Direction

// Sort directions.
const (
	Asc  = order.Asc
	Desc = order.Desc
)

// FieldType is the type of an indexed field.
type FieldType = db.FieldType

// Field types.
const (
	FieldTag     = db.FieldTag
	FieldNumeric = db.FieldNumeric
	FieldText    = db.FieldText
)

// Condition builders.
var (
	Lit     = condition.Lit
	Values  = condition.Values
	List    = condition.List
	Null    = condition.Null
	Op      = condition.Op
	And     = condition.And
	Or      = condition.Or
	Not     = condition.Not
	In      = condition.In
	NotIn   = condition.NotIn
	Wild    = condition.Wild
	Hash    = condition.Hash
	Field   = condition.Field
	FromAny = condition.FromAny
)

// Compile renders a condition as the engine-neutral query text.
func Compile(c Condition) (string, error) {
	return condition.Build(c)
}
