package errs

import "errors"

// Sentinel errors shared by the command and query usecase layers. Handlers
// map these to HTTP statuses with errors.Is.
var (
	// Availability / validation errors
	ErrInvalidRange     = errors.New("start date must be before end date")
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceInactive = errors.New("resource is inactive")
	ErrCapacityExceeded = errors.New("party size exceeds resource capacity")
	ErrValidation       = errors.New("validation failed")

	// Reservation lifecycle errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidTransition   = errors.New("invalid lifecycle transition")
	ErrConflict            = errors.New("reservation conflict")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrSequenceUnavailable     = errors.New("reservation number sequence unavailable")
)
