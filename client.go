package ftquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/ftquery/internal/db"
	dbRedis "github.com/kailas-cloud/ftquery/internal/db/redis"
	"github.com/kailas-cloud/ftquery/internal/domain"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	indexrepo "github.com/kailas-cloud/ftquery/internal/repository/index"
	queryuc "github.com/kailas-cloud/ftquery/internal/usecase/query"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the ftquery entry point. It is safe for concurrent use; the
// queries it hands out are not.
type Client struct {
	store   db.Store
	repo    *indexrepo.Repo
	schemas map[string]*db.Schema
	source  queryuc.Source
	deleter queryuc.Deleter
}

// New connects to the database and waits until it answers.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}
	if err := errors.Join(cfg.errs...); err != nil {
		return nil, fmt.Errorf("ftquery: %w", err)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("ftquery: database address required (use WithRedis or WithAddrs)")
	}
	if len(cfg.schemas) == 0 {
		return nil, errors.New("ftquery: at least one index required (use WithIndex or WithStructIndex)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		DB:         cfg.db,
		Schemas:    cfg.schemas,
		MaxResults: cfg.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("ftquery: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ftquery: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	schemas := make(map[string]*db.Schema, len(cfg.schemas))
	for _, s := range cfg.schemas {
		schemas[s.Name] = s
	}

	repo := indexrepo.New(store)
	return &Client{
		store:   store,
		repo:    repo,
		schemas: schemas,
		source:  observedSource{inner: repo, obs: obs},
		deleter: observedDeleter{inner: repo, obs: obs},
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Verify checks that every registered index exists.
func (c *Client) Verify(ctx context.Context) error {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	return c.repo.Verify(ctx, names)
}

// Rows starts an untyped query over a registered index. Running it against
// an unregistered index fails with ErrIndexNotFound.
func (c *Client) Rows(index string) *Query[Row] {
	m := Model[Row]{
		Index:   index,
		Hydrate: func(row result.Row) (Row, error) { return row, nil },
	}
	if s, ok := c.schemas[index]; ok {
		m.PrimaryKey, m.KeyPrefix = s.PrimaryKey, s.KeyPrefix
	}
	return queryuc.New(c.source, m)
}

// Deleter returns the document deleter to pass to Query.DeleteAll.
func (c *Client) Deleter() queryuc.Deleter { return c.deleter }

func (c *Client) schema(index string) (*db.Schema, error) {
	s, ok := c.schemas[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", domain.ErrIndexNotFound, index)
	}
	return s, nil
}
