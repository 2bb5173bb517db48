package errs

import "errors"

// Error taxonomy shared by the usecase and handler layers.
// Concrete errors are attached to one of these with Mark.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrPartialMatch       = errors.New("partial match")
	ErrConflict           = errors.New("conflict")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
