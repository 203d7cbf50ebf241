package store

import "errors"

var (
	// ErrNotFound is returned when a row is absent or owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrBudgetExists is returned when a budget for the same category and month already exists.
	ErrBudgetExists = errors.New("budget already exists for this category and month")
	// ErrInvalidCredentials is returned by Authenticate for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
