package chi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/kailas-cloud/ftquery/internal/domain/condition"
	"github.com/kailas-cloud/ftquery/internal/domain/search/page"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeUnauthorized     errorCode = "unauthorized"
	codeValidationFailed errorCode = "validation_failed"
	codeInvalidOperand   errorCode = "invalid_operand"
	codeInvalidQuery     errorCode = "invalid_query"
	codeIndexNotFound    errorCode = "index_not_found"
	codeNotImplemented   errorCode = "not_implemented"
	codeInternalError    errorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// OrderField is one entry of order_by.
type OrderField struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"`
}

// QueryRequest is the body shared by the search, count, compile and delete routes.
type QueryRequest struct {
	Where   condition.Spec `json:"where"`
	OrderBy []OrderField   `json:"order_by,omitempty"`
	Limit   Limit          `json:"limit"`
	Offset  int            `json:"offset,omitempty"`
}

func newQueryRequest() QueryRequest {
	return QueryRequest{Limit: Limit(page.Unset)}
}

// Limit accepts a JSON number or a string of decimal digits. Anything else,
// including null, leaves the limit unset.
type Limit int

// UnmarshalJSON implements json.Unmarshaler.
func (l *Limit) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Limit(page.ParseLimit(s))
		return nil
	}
	*l = Limit(page.ParseLimit(string(data)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Limit) MarshalJSON() ([]byte, error) {
	if int(l) < 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// SearchResponse is the body of a search response.
type SearchResponse struct {
	Items []result.Row `json:"items"`
}

// CountResponse is the body of a count response.
type CountResponse struct {
	Count int `json:"count"`
}

// CompileResponse is the body of a compile response.
type CompileResponse struct {
	Query string `json:"query"`
}

// DeleteResponse is the body of a delete response.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

// HealthResponse is the body of a health response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
