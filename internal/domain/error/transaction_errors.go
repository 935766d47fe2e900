// Package error defines domain-specific errors for the Fianzas Manager application.
package error

import (
	"errors"
	"fmt"
)

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionKind is returned when the transaction kind is invalid.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidTransactionAmount is returned when the amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrInvalidExpenseStatus is returned when the expense status is not a known value.
	ErrInvalidExpenseStatus = errors.New("invalid expense status")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryKindMismatch is returned when the category type does not match the transaction kind.
	ErrCategoryKindMismatch = errors.New("category type does not match transaction kind")

	// ErrCategoryNotOwnedByUser is returned when the category is neither global nor owned by the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrAccountNotFoundForTransaction is returned when the specified account is not found.
	ErrAccountNotFoundForTransaction = errors.New("account not found")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionKind   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidExpenseStatus     TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010007"
	ErrCodeTxnCategoryKindMismatch  TransactionErrorCode = "TXN-010008"
	ErrCodeTxnAccountNotFound       TransactionErrorCode = "TXN-010009"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010010"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010011"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010012"

	// Materialization errors (02XXXX)
	ErrCodePartialMaterialization TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MaterializationError reports a materialization run that stopped partway.
// Occurrences 1..Succeeded remain persisted; FailedAt is the 1-based index of
// the occurrence whose insert failed. Callers must surface this as a visible
// outcome rather than rolling back the persisted prefix.
type MaterializationError struct {
	Succeeded int
	Total     int
	FailedAt  int
	Err       error
}

// Error implements the error interface.
func (e *MaterializationError) Error() string {
	return fmt.Sprintf("%d of %d succeeded, failed at occurrence %d: %v",
		e.Succeeded, e.Total, e.FailedAt, e.Err)
}

// Unwrap returns the underlying error.
func (e *MaterializationError) Unwrap() error {
	return e.Err
}
