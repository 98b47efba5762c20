// Package error defines domain-specific errors for the GranaBot backend.
package error

import "errors"

// Auth domain errors. Token issuance lives outside this service; these
// errors only cover validation of externally issued tokens.
var (
	// ErrMissingToken is returned when no bearer token is supplied.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidToken is returned when the token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeMissingToken AuthErrorCode = "AUT-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUT-010002"
	ErrCodeRateLimited  AuthErrorCode = "AUT-010003"
)
