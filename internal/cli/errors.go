package cli

import (
	stderrors "errors"

	"github.com/arthur-debert/mvi/pkg/errors"
)

// ErrorMessage renders err for the terminal, without the error code that
// MviError.Error carries for logs
func ErrorMessage(err error) string {
	var mviErr *errors.MviError
	if !stderrors.As(err, &mviErr) {
		return err.Error()
	}
	if mviErr.Wrapped != nil {
		return mviErr.Message + ": " + mviErr.Wrapped.Error()
	}
	return mviErr.Message
}
