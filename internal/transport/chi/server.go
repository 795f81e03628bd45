package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftquery/internal/domain"
	"github.com/kailas-cloud/ftquery/internal/domain/search/order"
	"github.com/kailas-cloud/ftquery/internal/domain/search/page"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/ftquery/internal/usecase/health"
	queryuc "github.com/kailas-cloud/ftquery/internal/usecase/query"
)

// maxBodyBytes caps request bodies; conditions are small.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Index describes a search index exposed over HTTP.
type Index struct {
	Name       string
	PrimaryKey string
	KeyPrefix  string
}

// Limits bounds the page size of search requests.
type Limits struct {
	Default int
	Max     int
}

// Server serves the query API on a chi router.
type Server struct {
	source        queryuc.Source
	deleter       queryuc.Deleter
	indexes       map[string]Index
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	source queryuc.Source,
	deleter queryuc.Deleter,
	indexes []Index,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	byName := make(map[string]Index, len(indexes))
	for _, idx := range indexes {
		byName[idx.Name] = idx
	}
	s := &Server{
		source:  source,
		deleter: deleter,
		indexes: byName,
		health:  health,
		limits:  limits,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		invalidOperandHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusNotFound, codeIndexNotFound),
		sentinelHandler(domain.ErrUnsupportedOperation, http.StatusNotImplemented, codeNotImplemented),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/indexes/{index}", func(r chirouter.Router) {
		r.Post("/search", s.Search)
		r.Post("/count", s.Count)
		r.Post("/compile", s.Compile)
		r.Post("/delete", s.Delete)
	})
}

// Search handles POST /indexes/{index}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req := newQueryRequest()
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.query(r, req, s.limits.Default)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	rows, err := q.Rows(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Items: rows})
}

// Count handles POST /indexes/{index}/count.
func (s *Server) Count(w http.ResponseWriter, r *http.Request) {
	req := newQueryRequest()
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.query(r, req, page.Unset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	n, err := q.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

// Compile handles POST /indexes/{index}/compile.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	req := newQueryRequest()
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.query(r, req, page.Unset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	compiled, err := q.Compile()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CompileResponse{Query: compiled})
}

// Delete handles POST /indexes/{index}/delete.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	req := newQueryRequest()
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.query(r, req, page.Unset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	n, err := q.DeleteAll(r.Context(), s.deleter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// query builds a row query for the index named in the route. defaultLimit
// applies when the request carries no limit.
func (s *Server) query(r *http.Request, req QueryRequest, defaultLimit int) (*queryuc.Query[result.Row], error) {
	name := chirouter.URLParam(r, "index")
	idx, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
	}

	q := queryuc.New(s.source, queryuc.Model[result.Row]{
		Index:      idx.Name,
		PrimaryKey: idx.PrimaryKey,
		KeyPrefix:  idx.KeyPrefix,
		Hydrate:    func(row result.Row) (result.Row, error) { return row, nil },
	}).Where(req.Where)

	for _, f := range req.OrderBy {
		if strings.TrimSpace(f.Field) == "" {
			return nil, fmt.Errorf("%w: order_by field is required", domain.ErrInvalidRequest)
		}
		d, err := order.ParseDirection(f.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		q.AddOrderBy(f.Field, d)
	}

	limit := int(req.Limit)
	if limit == page.Unset {
		limit = defaultLimit
	}
	if s.limits.Max > 0 && limit > s.limits.Max {
		return nil, fmt.Errorf("%w: limit must be at most %d", domain.ErrInvalidRequest, s.limits.Max)
	}
	if req.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidRequest)
	}
	q.Limit(limit).Offset(req.Offset)
	return q, nil
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidOperand,
		domain.ErrInvalidQuery,
		domain.ErrInvalidRequest,
		domain.ErrIndexNotFound,
		domain.ErrUnsupportedOperation,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidOperandHandler handles ErrInvalidOperand with the offending operator and operand count.
func invalidOperandHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidOperand) {
		return false
	}
	var ioe *domain.InvalidOperandError
	if errors.As(err, &ioe) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":     codeInvalidOperand,
			"message":  msg,
			"operator": ioe.Operator,
			"operands": ioe.Count,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeInvalidOperand, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
