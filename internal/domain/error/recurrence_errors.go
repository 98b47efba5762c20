// Package error defines domain-specific errors for the GranaBot backend.
package error

import "errors"

// Recurrence domain errors.
var (
	// ErrRecurrenceNotFound is returned when a recurrence rule is not found
	// or does not belong to the caller.
	ErrRecurrenceNotFound = errors.New("recurrence rule not found")

	// ErrInvalidRecurrenceKind is returned when the rule kind is neither
	// expense nor income.
	ErrInvalidRecurrenceKind = errors.New("invalid recurrence kind")

	// ErrInvalidRecurrenceAmount is returned when the amount is zero or negative.
	ErrInvalidRecurrenceAmount = errors.New("invalid recurrence amount")

	// ErrInvalidFrequency is returned when the frequency is unknown.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvalidInterval is returned when the interval is below one.
	ErrInvalidInterval = errors.New("recurrence interval must be at least 1")

	// ErrMissingDayOfMonth is returned when a monthly rule carries no
	// day-of-month anchor.
	ErrMissingDayOfMonth = errors.New("monthly recurrence requires day_of_month")

	// ErrInvalidDayOfMonth is returned when day_of_month is outside 1-31.
	ErrInvalidDayOfMonth = errors.New("day_of_month must be between 1 and 31")

	// ErrMissingWeekday is returned when a weekly rule carries no weekday anchor.
	ErrMissingWeekday = errors.New("weekly recurrence requires weekday")

	// ErrInvalidWeekday is returned when the weekday value is unknown.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidDateRange is returned when end_date precedes start_date.
	ErrInvalidDateRange = errors.New("end_date must not precede start_date")

	// ErrNoMoreOccurrences is returned by occurrence computation when the
	// bounded search cannot find a next occurrence.
	ErrNoMoreOccurrences = errors.New("no more occurrences")
)

// RecurrenceErrorCode defines error codes for recurrence errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurrenceErrorCode string

const (
	// Validation errors (01XXXX) — configuration problems rejected before
	// any persistence attempt.
	ErrCodeInvalidRecurrenceKind   RecurrenceErrorCode = "REC-010001"
	ErrCodeInvalidRecurrenceAmount RecurrenceErrorCode = "REC-010002"
	ErrCodeInvalidFrequency        RecurrenceErrorCode = "REC-010003"
	ErrCodeInvalidInterval         RecurrenceErrorCode = "REC-010004"
	ErrCodeMissingDayOfMonth       RecurrenceErrorCode = "REC-010005"
	ErrCodeInvalidDayOfMonth       RecurrenceErrorCode = "REC-010006"
	ErrCodeMissingWeekday          RecurrenceErrorCode = "REC-010007"
	ErrCodeInvalidWeekday          RecurrenceErrorCode = "REC-010008"
	ErrCodeInvalidDateRange        RecurrenceErrorCode = "REC-010009"
	ErrCodeMissingRecurrenceFields RecurrenceErrorCode = "REC-010010"

	// Lookup errors (02XXXX)
	ErrCodeRecurrenceNotFound RecurrenceErrorCode = "REC-020001"
)

// RecurrenceError represents a recurrence error with code and message.
type RecurrenceError struct {
	Code    RecurrenceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurrenceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurrenceError) Unwrap() error {
	return e.Err
}

// NewRecurrenceError creates a new RecurrenceError with the given code and message.
func NewRecurrenceError(code RecurrenceErrorCode, message string, err error) *RecurrenceError {
	return &RecurrenceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsConfigError reports whether err is a recurrence configuration error,
// i.e. a validation-coded RecurrenceError. Configuration errors are always
// rejected before any persistence attempt.
func IsConfigError(err error) bool {
	var recErr *RecurrenceError
	if !errors.As(err, &recErr) {
		return false
	}
	switch recErr.Code {
	case ErrCodeInvalidRecurrenceKind,
		ErrCodeInvalidRecurrenceAmount,
		ErrCodeInvalidFrequency,
		ErrCodeInvalidInterval,
		ErrCodeMissingDayOfMonth,
		ErrCodeInvalidDayOfMonth,
		ErrCodeMissingWeekday,
		ErrCodeInvalidWeekday,
		ErrCodeInvalidDateRange,
		ErrCodeMissingRecurrenceFields:
		return true
	default:
		return false
	}
}
