package types

// ConfirmationRequest represents a request for user confirmation before a
// destructive step
type ConfirmationRequest struct {
	// ID is a unique identifier for this confirmation within the run
	ID string

	// Title is the question put to the user
	Title string

	// Description provides detailed information about what will happen
	Description string

	// Items lists specific paths that will be affected
	Items []string

	// Default indicates the default response if user just presses enter
	// true = default to "yes", false = default to "no"
	Default bool
}

// Confirmer asks the user a yes/no question. Implementations must not
// return true on read errors.
type Confirmer interface {
	Confirm(req ConfirmationRequest) (bool, error)
}

// Confirmation IDs used by the executor
const (
	ConfirmDeleteBatch = "delete-batch"
	ConfirmOverwrite   = "overwrite"
	ConfirmSameFile    = "same-file"
)
