package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// isClientError reports errors caused by the request rather than by the service or its stores.
func isClientError(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
