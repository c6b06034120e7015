package service

import "errors"

var (
	// ErrProductNotFound is returned when an update targets an identifier with no stored product.
	ErrProductNotFound = errors.New("product not found")
)

// DatabaseError is returned when listing products fails in the storage layer.
// It carries the message of the underlying connection or query error.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string {
	return "database connection or query error: " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
