package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for every authentication failure.
	// Callers must render it as-is so the response never reveals whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("email or password incorrect")

	// ErrGrantExists is returned when the (position, menu) pair is already granted.
	ErrGrantExists = errors.New("access grant already exists")

	// ErrGrantNotFound is returned when a grant cannot be found by its surrogate id.
	ErrGrantNotFound = errors.New("access grant not found")

	// ErrPositionRequired is returned when a grant mutation is missing the position.
	ErrPositionRequired = errors.New("position is required")

	// ErrMenuRequired is returned when a grant mutation is missing the menu.
	ErrMenuRequired = errors.New("menu is required")
)
