package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials indicates a failed login or an unknown token.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput indicates invalid registration input.
	ErrInvalidInput = errors.New("invalid user input")
)
