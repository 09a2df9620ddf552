package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDataAccess            = errors.New("data access failure")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
