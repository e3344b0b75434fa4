package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrAlreadyExists     = errors.New("entity already exists")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrCardNotFound      = errors.New("card not found")
	ErrCardAlreadyUsed   = errors.New("card already used")
	ErrInconsistentState = errors.New("card references a missing or inactive package")
	ErrRateLimited       = errors.New("too many attempts")
	ErrUnauthorized      = errors.New("invalid credentials")

	// Storage-layer errors
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context for query")
	ErrOperationFailed    = errors.New("operation failed")
)
