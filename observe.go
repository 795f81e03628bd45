package ftquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	queryuc "github.com/kailas-cloud/ftquery/internal/usecase/query"
)

// sdkMetrics holds prometheus metrics registered for the client.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ftquery",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total client operations by index, type and status.",
		}, []string{"index", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ftquery",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Client operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("ftquery: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("ftquery: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for client operations.
type observer struct {
	logger  *zap.Logger
	metrics *sdkMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(index, op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(index, op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Warn("operation failed",
				zap.String("index", index),
				zap.String("op", op),
				zap.Duration("duration", dur),
				zap.Error(err),
			)
		} else {
			o.logger.Debug("operation completed",
				zap.String("index", index),
				zap.String("op", op),
				zap.Duration("duration", dur),
			)
		}
	}
}

// observedSource hands out executors whose Search and Count are observed.
type observedSource struct {
	inner queryuc.Source
	obs   *observer
}

func (s observedSource) Executor(index string) (queryuc.Executor, error) {
	exec, err := s.inner.Executor(index)
	if err != nil {
		return nil, err
	}
	return &observedExecutor{Executor: exec, index: index, obs: s.obs}, nil
}

type observedExecutor struct {
	queryuc.Executor
	index string
	obs   *observer
}

func (e *observedExecutor) Search(ctx context.Context) ([]result.Document, error) {
	start := time.Now()
	docs, err := e.Executor.Search(ctx)
	e.obs.observe(e.index, "search", start, err)
	return docs, err
}

func (e *observedExecutor) Count(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := e.Executor.Count(ctx)
	e.obs.observe(e.index, "count", start, err)
	return n, err
}

// observedDeleter observes document deletes. The index label is empty
// because keys may span indexes.
type observedDeleter struct {
	inner queryuc.Deleter
	obs   *observer
}

func (d observedDeleter) Del(ctx context.Context, keys ...string) (int, error) {
	start := time.Now()
	n, err := d.inner.Del(ctx, keys...)
	d.obs.observe("", "delete", start, err)
	return n, err
}
