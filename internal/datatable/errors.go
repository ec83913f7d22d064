package datatable

import "errors"

var (
	// ErrInvalidColumn indicates a malformed column definition.
	ErrInvalidColumn = errors.New("datatable: invalid column")
	// ErrDuplicateColumn indicates two columns share a key.
	ErrDuplicateColumn = errors.New("datatable: duplicate column key")
	// ErrUnknownColumn indicates state refers to a column that does not exist.
	ErrUnknownColumn = errors.New("datatable: unknown column")
	// ErrActionUnavailable indicates no handler is registered for an action kind.
	ErrActionUnavailable = errors.New("datatable: action unavailable")
	// ErrConfirmationRequired indicates a destructive action was invoked without confirmation.
	ErrConfirmationRequired = errors.New("datatable: confirmation required")
	// ErrInvalidRowID indicates an action was invoked without a row identity.
	ErrInvalidRowID = errors.New("datatable: invalid row id")
)
