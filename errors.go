package ftquery

import "github.com/kailas-cloud/ftquery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidOperand       = domain.ErrInvalidOperand
	ErrInvalidQuery         = domain.ErrInvalidQuery
	ErrInvalidRequest       = domain.ErrInvalidRequest
	ErrIndexNotFound        = domain.ErrIndexNotFound
	ErrUnsupportedOperation = domain.ErrUnsupportedOperation
)

// InvalidOperandError carries the operator and operand count of an ErrInvalidOperand.
type InvalidOperandError = domain.InvalidOperandError
