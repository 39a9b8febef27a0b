package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// IsNotFound reports whether err means the requested player does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
