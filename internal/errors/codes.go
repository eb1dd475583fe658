package errors

import (
	"fmt"
	"os"
)

// Exit codes for different error scenarios
const (
	ExitSuccess          = 0 // Success
	ExitGeneralError     = 1 // General error (network failure, unknown error)
	ExitInvalidArguments = 2 // Invalid arguments/usage
	ExitNotFound         = 3 // Resource not found (e.g. no url history yet)
	ExitAuthError        = 5 // Authentication or authorization failure
)

// ExitWithError prints error message and exits with the general code
func ExitWithError(err error, message string) {
	if message != "" {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitGeneralError)
}

// ExitWithCode prints error message and exits with specific code
func ExitWithCode(code int, message string) {
	if message != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
	os.Exit(code)
}
