// Package error defines domain-specific errors for the GranaBot backend.
package error

import "errors"

// Alert domain errors.
var (
	// ErrAlertNotFound is returned when an alert is not found in the system.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrAlertAlreadyPaid is returned when attempting to pay an alert that
	// is no longer pending.
	ErrAlertAlreadyPaid = errors.New("alert already paid")

	// ErrNotAuthorizedToModifyAlert is returned when the alert does not
	// belong to the caller.
	ErrNotAuthorizedToModifyAlert = errors.New("not authorized to modify alert")

	// ErrInvalidAlertStatus is returned when the alert status is unknown.
	ErrInvalidAlertStatus = errors.New("invalid alert status")
)

// AlertErrorCode defines error codes for alert errors.
// Format: ALE-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAlertStatus AlertErrorCode = "ALE-010001"
	ErrCodeAlertAlreadyPaid   AlertErrorCode = "ALE-010002"

	// Lookup errors (02XXXX)
	ErrCodeAlertNotFound      AlertErrorCode = "ALE-020001"
	ErrCodeNotAuthorizedAlert AlertErrorCode = "ALE-020002"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
