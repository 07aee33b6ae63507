package services

import (
	"errors"
)

// Error kinds. Every error a service returns is, or wraps, one of these or is
// treated as an infrastructure failure.
var (
	ErrValidation     = errors.New("validation error")
	ErrLimitExceeded  = errors.New("limit exceeded")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrAllocation     = errors.New("account number allocation failed")
	ErrPartialPosting = errors.New("partial ledger posting")
)

var (
	ErrMissingCustomer     = newError(ErrValidation, "No customer selected")
	ErrInvalidAmount       = newError(ErrValidation, "Amount must be greater than zero")
	ErrSameAccount         = newError(ErrValidation, "Source and destination accounts must differ")
	ErrInvalidTransition   = newError(ErrValidation, "Transaction status cannot be changed to the requested status")
	ErrInvalidStatus       = newError(ErrValidation, "Invalid transaction status")
	ErrAccountDisabled     = newError(ErrValidation, "Account is disabled")
	ErrMaxAccounts         = newError(ErrLimitExceeded, "Maximum number of accounts exceeded")
	ErrInsufficientBalance = newError(ErrLimitExceeded, "Insufficient balance")
	ErrAccountNotFound     = newError(ErrNotFound, "Account does not exist")
	ErrNoAccountOwner      = newError(ErrNotFound, "No customer attached to this account")
	ErrTransactionNotFound = newError(ErrNotFound, "Transaction not found")
	ErrCustomerNotFound    = newError(ErrNotFound, "Customer not found")
	ErrEmailTaken          = newError(ErrConflict, "A customer with this email already exists")
	ErrSettlementRace      = newError(ErrConflict, "Transaction was updated by another request")
	ErrInvalidCredentials  = newError(ErrUnauthorized, "Invalid credentials")
	ErrNotAccountOwner     = newError(ErrForbidden, "Account does not belong to this customer")
)

// Error is a business error carrying the message shown to callers.
type Error struct {
	kind    error
	Message string
}

func newError(kind error, message string) *Error {
	return &Error{kind: kind, Message: message}
}

// ValidationError builds an ad hoc validation failure.
func ValidationError(message string) *Error {
	return newError(ErrValidation, message)
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

// UnauthorizedError builds an ad hoc authentication failure.
func UnauthorizedError(message string) *Error {
	return newError(ErrUnauthorized, message)
}
