package ftquery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftquery/internal/db"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	maxResults       int
	readinessTimeout time.Duration

	schemas []*db.Schema
	errs    []error

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithAddrs sets several seed addresses, for a cluster or a replica set.
func WithAddrs(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
	})
}

// WithCredentials sets an ACL username and password.
func WithCredentials(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithDB selects a logical database.
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithMaxResults sets the LIMIT sent for searches that set no limit.
// Default: 10000.
func WithMaxResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxResults = n
	})
}

// WithReadinessTimeout bounds how long New waits for the database.
// Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithIndex registers an existing index. Fields not listed are treated as tags.
func WithIndex(name, keyPrefix string, fields map[string]FieldType) Option {
	return optionFunc(func(c *clientConfig) {
		b := db.NewSchema(name).Prefix(keyPrefix)
		for f, t := range fields {
			b.Field(f, t)
		}
		c.addSchema(b.Build())
	})
}

// WithStructIndex registers an existing index whose fields and primary key
// are read from the ftquery struct tags of T.
func WithStructIndex[T any](name, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		meta, err := parseSchema[T]()
		if err != nil {
			c.errs = append(c.errs, err)
			return
		}
		c.addSchema(meta.schema(name, keyPrefix))
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func (c *clientConfig) addSchema(s *db.Schema, err error) {
	if err != nil {
		c.errs = append(c.errs, err)
		return
	}
	c.schemas = append(c.schemas, s)
}
