// Package exitcode provides standardized exit codes for mvi
package exitcode

import (
	"github.com/arthur-debert/mvi/pkg/errors"
)

// Exit codes for the mvi CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ValidationError = 3
	FileSystemError = 4
	Declined        = 10
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case Declined:
		return "Declined by user"
	default:
		return "Unknown error"
	}
}

// FromError maps an error returned by a run to the process exit status.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	switch errors.GetErrorCode(err) {
	case errors.ErrNoFiles:
		return Success
	case errors.ErrParse, errors.ErrConflict, errors.ErrCycle, errors.ErrInvalidInput:
		return ValidationError
	case errors.ErrConfirmationDeclined, errors.ErrCollisionDeclined:
		return Declined
	case errors.ErrIO, errors.ErrFileNotFound:
		return FileSystemError
	case errors.ErrConfigLoad, errors.ErrConfigParse:
		return ConfigError
	default:
		return GeneralError
	}
}
