package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthSessionExpired     ErrorCode = "AUTH-002"
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-003"
	ErrCodeAuthForbidden          ErrorCode = "AUTH-004"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionRestoreFailed  ErrorCode = "SESSION-001"
	ErrCodeCredentialsReadFailed ErrorCode = "SESSION-002"
	ErrCodeCredentialsSaveFailed ErrorCode = "SESSION-003"

	// Employee errors (EMP-001 to EMP-099)
	ErrCodeEmployeeValidation    ErrorCode = "EMP-001"
	ErrCodeEmployeeSalaryInvalid ErrorCode = "EMP-002"
	ErrCodeEmployeeNotFound      ErrorCode = "EMP-003"

	// Network errors (NET-001 to NET-099)
	ErrCodeTransport         ErrorCode = "NET-001"
	ErrCodeTimeout           ErrorCode = "NET-002"
	ErrCodeMalformedResponse ErrorCode = "NET-003"
	ErrCodeServerRejected    ErrorCode = "NET-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid  ErrorCode = "CONFIG-001"
	ErrCodeConfigNotFound ErrorCode = "CONFIG-002"
)

// StaffdeckError represents an enhanced error with code and suggestions
type StaffdeckError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *StaffdeckError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *StaffdeckError) Unwrap() error {
	return e.Cause
}

// New creates a new StaffdeckError
func New(code ErrorCode, message string) *StaffdeckError {
	return &StaffdeckError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new StaffdeckError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *StaffdeckError {
	return &StaffdeckError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *StaffdeckError) WithSuggestion(suggestion string) *StaffdeckError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *StaffdeckError) WithSuggestions(suggestions ...string) *StaffdeckError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf returns the error code of err, or the empty code when err is not
// a StaffdeckError.
func CodeOf(err error) ErrorCode {
	var deckErr *StaffdeckError
	if errors.As(err, &deckErr) {
		return deckErr.Code
	}
	return ""
}

// Category predicates for the four client failure classes: bad credentials,
// authorization expiry, validation rejection, transport failure.

// IsAuthFailure reports whether err is a bad-credentials failure
func IsAuthFailure(err error) bool {
	return CodeOf(err) == ErrCodeAuthInvalidCredentials
}

// IsUnauthorized reports whether err is an authorization expiry (HTTP 401)
func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeAuthSessionExpired
}

// IsValidation reports whether err is a server-side rejection carrying a
// structured message
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeServerRejected, ErrCodeEmployeeValidation, ErrCodeEmployeeSalaryInvalid:
		return true
	}
	return false
}

// IsTransport reports whether err is a transport-level failure (timeout,
// network error, malformed response)
func IsTransport(err error) bool {
	switch CodeOf(err) {
	case ErrCodeTransport, ErrCodeTimeout, ErrCodeMalformedResponse:
		return true
	}
	return false
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a not-logged-in error
func NewNotLoggedInError() *StaffdeckError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'staffdeck auth login' to authenticate")
}

// NewForbiddenError creates a permission error for a named action
func NewForbiddenError(action string) *StaffdeckError {
	return New(ErrCodeAuthForbidden, fmt.Sprintf("your role does not permit: %s", action)).
		WithSuggestion("Contact an administrator if you need this permission")
}

// NewSalaryInvalidError creates an error for non-numeric salary input
func NewSalaryInvalidError(raw string) *StaffdeckError {
	return New(ErrCodeEmployeeSalaryInvalid, fmt.Sprintf("salary must be numeric, got %q", raw)).
		WithSuggestion("Provide the salary as a plain number, e.g. --salary 75000")
}

// NewTimeoutError creates a request timeout error
func NewTimeoutError(cause error) *StaffdeckError {
	return Wrap(ErrCodeTimeout, "request timed out", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API URL in ~/.staffdeck/config.yaml")
}
