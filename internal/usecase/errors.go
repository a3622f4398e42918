package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrLockWindowClosed is a business-rule outcome, not a system failure:
	// the slate's first game is too close and picks can no longer change.
	ErrLockWindowClosed = errors.New("picks closed for this slate")
)
