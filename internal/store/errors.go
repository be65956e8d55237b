package store

import (
	"errors"
	"fmt"

	"github.com/quadrantdb/quadrant/internal/pattern"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// ErrCodeConfiguration marks null/empty connection parameters at
	// construction time.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeConnectivity marks failure to reach or authenticate to the
	// backend at construction or schema-bootstrap time. Construction
	// fails entirely; no partially-initialized store is returned.
	ErrCodeConnectivity ErrorCode = "CONNECTIVITY"

	// ErrCodeInvalidPattern marks a pattern binding both object and
	// literal. Raised before any backend call; no data is touched.
	ErrCodeInvalidPattern ErrorCode = "INVALID_PATTERN"

	// ErrCodeStore marks any driver-level failure during an operation,
	// wrapping the underlying cause. Always follows rollback-and-release.
	ErrCodeStore ErrorCode = "STORE"
)

// StoreError is the single error type adapters surface. Each public
// operation catches driver failures at its boundary, releases the
// transaction and connection, and raises exactly one StoreError carrying
// the original cause. Nothing is retried.
type StoreError struct {
	Code    ErrorCode
	Backend string // "sqlite", "sqlserver", "oracle", "neo4j"
	Op      string // "insert", "delete", "select", "contains", ...
	Err     error
}

func (e *StoreError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s [%s]: cannot %s data: %v", e.Code, e.Backend, e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Code, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewError wraps a driver failure for an operation.
func NewError(code ErrorCode, backend, op string, err error) *StoreError {
	return &StoreError{Code: code, Backend: backend, Op: op, Err: err}
}

// WrapPatternErr maps the classifier's object/literal conflict onto the
// invalid-pattern code; anything else becomes a general store failure.
func WrapPatternErr(backend, op string, err error) *StoreError {
	if errors.Is(err, pattern.ErrObjectAndLiteral) {
		return NewError(ErrCodeInvalidPattern, backend, op, err)
	}
	return NewError(ErrCodeStore, backend, op, err)
}

// IsConfiguration reports whether err is a configuration failure.
// Uses errors.As to handle wrapped errors.
func IsConfiguration(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool { return hasCode(err, ErrCodeConnectivity) }

// IsInvalidPattern reports whether err is the object/literal conflict.
func IsInvalidPattern(err error) bool { return hasCode(err, ErrCodeInvalidPattern) }

func hasCode(err error, code ErrorCode) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
