package account

import "errors"

var (
	// ErrUsernameTaken is returned when a username is already held by another
	// account, compared case-insensitively.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAccountNotFound is returned when the account row does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("database error")
)
