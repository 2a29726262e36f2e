package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Lookup errors
	ErrMsgMeetNotFound   = "meet not found"
	ErrMsgResultNotFound = "result not found"

	// Credential errors
	ErrMsgUnauthorized    = "invalid credentials"
	ErrMsgTooManyAttempts = "too many failed credential attempts"
	ErrMsgMeetInactive    = "meet is not active"

	// Transport errors
	ErrMsgUnavailable = "service unavailable"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrMeetNotFound   = errors.New(ErrMsgMeetNotFound)
	ErrResultNotFound = errors.New(ErrMsgResultNotFound)

	ErrUnauthorized    = errors.New(ErrMsgUnauthorized)
	ErrTooManyAttempts = errors.New(ErrMsgTooManyAttempts)
	ErrMeetInactive    = errors.New(ErrMsgMeetInactive)

	// ErrUnavailable marks a failure the caller may retry later: transport
	// errors and 5xx responses seen by the API client.
	ErrUnavailable = errors.New(ErrMsgUnavailable)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
