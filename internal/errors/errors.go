// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDatabase      = errors.New("database error")
	ErrEmptyImport   = errors.New("import file contains no trades")
)

// ValidationError carries the full list of rule violations for a single
// trade. Validation never short-circuits, so Messages holds every failed
// rule, not just the first.
type ValidationError struct {
	TradeID  string
	Messages []string
}

func (e *ValidationError) Error() string {
	if e.TradeID != "" {
		return fmt.Sprintf("trade %s failed validation: %s", e.TradeID, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("trade failed validation: %s", strings.Join(e.Messages, "; "))
}

// NewValidationError creates a ValidationError for the given trade.
func NewValidationError(tradeID string, messages []string) *ValidationError {
	return &ValidationError{TradeID: tradeID, Messages: messages}
}

// RowError is one rejected row in a batch import.
type RowError struct {
	Row      int
	Messages []string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, strings.Join(e.Messages, "; "))
}

// ImportError reports a rejected batch import. The whole batch is refused
// when any row fails; Rows itemizes every failing row.
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	parts := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		parts[i] = r.Error()
	}
	return fmt.Sprintf("import rejected, %d invalid row(s): %s", len(e.Rows), strings.Join(parts, "; "))
}

// StoreError represents a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
