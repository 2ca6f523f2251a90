package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired       ErrorCode = "AUTH-001"
	ErrCodeCredentialRejected ErrorCode = "AUTH-002"
	ErrCodeSessionExpired     ErrorCode = "AUTH-003"
	ErrCodeRefreshFailed      ErrorCode = "AUTH-004"
	ErrCodeRegistrationFailed ErrorCode = "AUTH-005"

	// Author profile errors (PROFILE-001 to PROFILE-099)
	ErrCodeProfileNotFound ErrorCode = "PROFILE-001"
	ErrCodeProfilePending  ErrorCode = "PROFILE-002"
	ErrCodeProfileRejected ErrorCode = "PROFILE-003"
	ErrCodeApplyFailed     ErrorCode = "PROFILE-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPIStatus      ErrorCode = "API-002"
	ErrCodeAPIEnvelope    ErrorCode = "API-003"
	ErrCodeAPIUnavailable ErrorCode = "API-004"

	// Book errors (BOOK-001 to BOOK-099)
	ErrCodeBookNotFound     ErrorCode = "BOOK-001"
	ErrCodeBookInvalid      ErrorCode = "BOOK-002"
	ErrCodeBookUploadFailed ErrorCode = "BOOK-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeConfigRead       ErrorCode = "IO-001"
	ErrCodeConfigInvalid    ErrorCode = "IO-002"
	ErrCodeCredentialsRead  ErrorCode = "IO-003"
	ErrCodeCredentialsWrite ErrorCode = "IO-004"
)

// QuillError represents an enhanced error with code, suggestions, and documentation
type QuillError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *QuillError) Error() string {
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

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *QuillError) Unwrap() error {
	return e.Cause
}

// New creates a new QuillError
func New(code ErrorCode, message string) *QuillError {
	return &QuillError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new QuillError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *QuillError {
	return &QuillError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *QuillError) WithSuggestion(suggestion string) *QuillError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *QuillError) WithSuggestions(suggestions ...string) *QuillError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *QuillError) WithDocs(url string) *QuillError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewAuthRequiredError creates an error for commands that need a login first
func NewAuthRequiredError() *QuillError {
	return New(ErrCodeAuthRequired, "not logged in").
		WithSuggestion("Run 'quill auth login' to authenticate").
		WithSuggestion("Run 'quill auth register' if you do not have an account yet")
}

// NewCredentialRejectedError creates an error for a failed login attempt
func NewCredentialRejectedError(cause error) *QuillError {
	return Wrap(ErrCodeCredentialRejected, "invalid email or password", cause).
		WithSuggestion("Check your email address and password").
		WithSuggestion("Run 'quill auth forgot-password' if you lost your password")
}

// NewSessionExpiredError creates an error for an invalidated session
func NewSessionExpiredError() *QuillError {
	return New(ErrCodeSessionExpired, "your session has expired").
		WithSuggestion("Run 'quill auth login' to authenticate again")
}

// NewProfileRequiredError creates an error for author-only commands without a profile
func NewProfileRequiredError() *QuillError {
	return New(ErrCodeProfileNotFound, "no author application on file").
		WithSuggestion("Run 'quill apply' to apply as an author")
}

// NewProfilePendingError creates an error for commands gated on approval
func NewProfilePendingError() *QuillError {
	return New(ErrCodeProfilePending, "your author application is still under review").
		WithSuggestion("Run 'quill auth status' to check your application status")
}

// NewProfileRejectedError creates an error for rejected applications
func NewProfileRejectedError() *QuillError {
	return New(ErrCodeProfileRejected, "your author application was rejected").
		WithSuggestion("Run 'quill auth status' to see the review outcome").
		WithSuggestion("Contact support if you believe this is a mistake")
}

// NewAPIUnavailableError creates an error for transport-level failures
func NewAPIUnavailableError(cause error) *QuillError {
	return Wrap(ErrCodeAPIUnavailable, "could not reach the QuillForge API", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Check the api_url setting in ~/.quill/config.yaml")
}
