package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/ftquery/internal/db"
	"github.com/kailas-cloud/ftquery/internal/domain"
	"github.com/kailas-cloud/ftquery/internal/domain/search"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

// store is the consumer interface for index access (ISP).
type store interface {
	Executor(index string) (db.Executor, error)
	Del(ctx context.Context, keys ...string) (int, error)
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/query.Source and usecase/query.Deleter.
type Repo struct {
	store store
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Executor acquires a fresh executor for index.
func (r *Repo) Executor(index string) (search.Executor, error) {
	exec, err := r.store.Executor(index)
	if err != nil {
		return nil, mapError(err)
	}
	return &executor{Executor: exec}, nil
}

// Del removes documents by key.
func (r *Repo) Del(ctx context.Context, keys ...string) (int, error) {
	n, err := r.store.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return n, nil
}

// Verify checks that every named index exists in the search engine.
func (r *Repo) Verify(ctx context.Context, names []string) error {
	for _, name := range names {
		ok, err := r.store.IndexExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
		}
	}
	return nil
}

// executor translates storage errors into domain errors.
type executor struct {
	db.Executor
}

func (e *executor) Search(ctx context.Context) ([]result.Document, error) {
	docs, err := e.Executor.Search(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return docs, nil
}

func (e *executor) Count(ctx context.Context) (int, error) {
	n, err := e.Executor.Count(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, db.ErrIndexNotFound):
		return fmt.Errorf("%w: %w", domain.ErrIndexNotFound, err)
	case errors.Is(err, db.ErrQuerySyntax):
		return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	default:
		return err
	}
}
