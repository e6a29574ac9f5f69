package auth

import (
	"errors"
)

var (
	// ErrMissingToken is returned when no bearer token is supplied.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserInactive is returned when the token's user was deactivated.
	ErrUserInactive = errors.New("user is inactive")
)
