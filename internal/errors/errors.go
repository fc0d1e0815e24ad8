package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// InsufficientBalanceError rejects an outbound movement larger than the
// product's balance at validation time.
type InsufficientBalanceError struct {
	ProductID string
	Requested int
	Balance   int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, current balance: %d", e.Balance)
}

func NewInsufficientBalanceError(productID string, requested, balance int) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		ProductID: productID,
		Requested: requested,
		Balance:   balance,
	}
}

func IsInsufficientBalanceError(err error) (*InsufficientBalanceError, bool) {
	var ie *InsufficientBalanceError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// DependencyError is returned when a delete is blocked by rows that still
// reference the target.
type DependencyError struct {
	Message    string
	Dependents int
}

func (e *DependencyError) Error() string {
	return e.Message
}

func NewDependencyError(message string, dependents int) *DependencyError {
	return &DependencyError{
		Message:    message,
		Dependents: dependents,
	}
}

func IsDependencyError(err error) (*DependencyError, bool) {
	var de *DependencyError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	var ue *UnauthorizedError
	if stderrors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
