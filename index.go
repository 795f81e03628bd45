package ftquery

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	queryuc "github.com/kailas-cloud/ftquery/internal/usecase/query"
)

// Index is a typed handle on a registered index. Records are built from
// rows using T's ftquery struct tags.
type Index[T any] struct {
	client *Client
	model  Model[T]
}

// NewIndex creates a typed handle for a registered index.
// T must be a struct (or pointer to struct) with ftquery tags.
func NewIndex[T any](client *Client, name string) (*Index[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("new index %q: %w", name, err)
	}
	s, err := client.schema(name)
	if err != nil {
		return nil, fmt.Errorf("new index %q: %w", name, err)
	}
	return &Index[T]{
		client: client,
		model: Model[T]{
			Index:      s.Name,
			PrimaryKey: s.PrimaryKey,
			KeyPrefix:  s.KeyPrefix,
			Hydrate: func(row result.Row) (T, error) {
				return fromRow[T](meta, row)
			},
		},
	}, nil
}

// AfterFind sets a hook run on every hydrated record.
func (idx *Index[T]) AfterFind(fn func(ctx context.Context, record T) error) *Index[T] {
	idx.model.AfterFind = fn
	return idx
}

// Find starts a query over the index.
func (idx *Index[T]) Find() *Query[T] {
	return queryuc.New(idx.client.source, idx.model)
}

// Get returns the record with the given primary key. ok is false when
// nothing matched.
func (idx *Index[T]) Get(ctx context.Context, id string) (record T, ok bool, err error) {
	return idx.Find().
		Where(Hash(Field(idx.model.PrimaryKey, Lit(id)))).
		One(ctx)
}

// Count returns the number of records matching where.
func (idx *Index[T]) Count(ctx context.Context, where Condition) (int, error) {
	return idx.Find().Where(where).Count(ctx)
}

// Delete removes every record matching where and returns how many were removed.
func (idx *Index[T]) Delete(ctx context.Context, where Condition) (int, error) {
	return idx.Find().Where(where).DeleteAll(ctx, idx.client.deleter)
}
