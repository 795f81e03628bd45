package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperand signals an operator called with the wrong number of operands.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrUnsupportedOperation signals a query capability the search engine does not provide.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrInvalidRequest signals a malformed query request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrIndexNotFound signals a search index that is not configured or does not exist.
	ErrIndexNotFound = errors.New("index not found")
	// ErrInvalidQuery signals a compiled condition the search engine rejected.
	ErrInvalidQuery = errors.New("invalid query")
)

// InvalidOperandError wraps ErrInvalidOperand with the offending operator and operand count.
type InvalidOperandError struct {
	Operator string
	Count    int
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("%s: operator %q requires exactly one operand, got %d",
		ErrInvalidOperand.Error(), e.Operator, e.Count)
}

func (e *InvalidOperandError) Unwrap() error { return ErrInvalidOperand }

// UnsupportedError wraps ErrUnsupportedOperation with the name of the rejected operation.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return ErrUnsupportedOperation.Error() + ": " + e.Op
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedOperation }

// NewUnsupported creates an unsupported operation error for op.
func NewUnsupported(op string) error {
	return &UnsupportedError{Op: op}
}
