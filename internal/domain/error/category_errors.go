// Package error defines domain-specific errors for the Fianzas Manager application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateName is returned when another category of the same type and
	// owner scope already carries this name (compared case-insensitively).
	ErrDuplicateName = errors.New("category name already exists in scope")

	// ErrParentNotFound is returned when the requested parent category does not exist in scope.
	ErrParentNotFound = errors.New("parent category not found")

	// ErrTypeMismatch is returned when a child's type differs from its parent's type.
	ErrTypeMismatch = errors.New("category type differs from parent type")

	// ErrDepthExceeded is returned when an operation would push a category past the maximum depth.
	ErrDepthExceeded = errors.New("category depth limit exceeded")

	// ErrCircularReference is returned when re-parenting would create a cycle.
	ErrCircularReference = errors.New("category cannot be its own ancestor")

	// ErrHasChildren is returned when deleting a category that still has child categories.
	ErrHasChildren = errors.New("category has child categories")

	// ErrHasTransactions is returned when deleting a category still referenced by transactions.
	ErrHasTransactions = errors.New("category is referenced by transactions")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidColorFormat is returned when the category color format is invalid.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrNotAuthorizedToModifyCategory is returned when user is not authorized to modify a category.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")

	// ErrGlobalCategoryReadOnly is returned when a user attempts to change a seeded global category.
	ErrGlobalCategoryReadOnly = errors.New("global categories are read-only")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeDuplicateName         CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010007"
	ErrCodeGlobalReadOnly        CategoryErrorCode = "CAT-010008"

	// Hierarchy errors (02XXXX)
	ErrCodeParentNotFound    CategoryErrorCode = "CAT-020001"
	ErrCodeTypeMismatch      CategoryErrorCode = "CAT-020002"
	ErrCodeDepthExceeded     CategoryErrorCode = "CAT-020003"
	ErrCodeCircularReference CategoryErrorCode = "CAT-020004"

	// Deletion errors (03XXXX)
	ErrCodeHasChildren     CategoryErrorCode = "CAT-030001"
	ErrCodeHasTransactions CategoryErrorCode = "CAT-030002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
