// Package error defines domain-specific errors for the Fianzas Manager application.
package error

import "errors"

// Schedule domain errors, raised by date normalization and recurrence expansion.
var (
	// ErrInvalidDate is returned when (year, month, day) is not a real calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidRecurrenceSpec is returned for a negative cap or an unknown frequency.
	ErrInvalidRecurrenceSpec = errors.New("invalid recurrence specification")
)

// ScheduleErrorCode defines error codes for schedule errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type ScheduleErrorCode string

const (
	ErrCodeInvalidDate           ScheduleErrorCode = "SCH-010001"
	ErrCodeInvalidRecurrenceSpec ScheduleErrorCode = "SCH-010002"
)

// ScheduleError represents a schedule error with code and message.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError creates a new ScheduleError with the given code and message.
func NewScheduleError(code ScheduleErrorCode, message string, err error) *ScheduleError {
	return &ScheduleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
