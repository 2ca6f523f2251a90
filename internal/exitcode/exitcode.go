package exitcode

import (
	"os"
	"strings"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure or a missing login
	AuthError = 3

	// NotAnAuthor indicates the account has no approved author profile
	NotAnAuthor = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication failures
	if strings.Contains(errMsg, "[auth-") {
		return AuthError
	}
	if strings.Contains(errMsg, "not logged in") || strings.Contains(errMsg, "session has expired") {
		return AuthError
	}

	// Author eligibility failures
	if strings.Contains(errMsg, "[profile-") {
		return NotAnAuthor
	}

	// Network problems
	if strings.Contains(errMsg, "could not reach") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "timeout") {
		return NetworkError
	}

	// Usage problems
	if strings.Contains(errMsg, "required flag") ||
		strings.Contains(errMsg, "unknown flag") ||
		strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}
