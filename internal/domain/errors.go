package domain

import "errors"

var (
	// ErrValidation is wrapped with detail when quiz input is malformed.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrAccountNotFound is returned when credentials match no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrQuizNotFound indicates no quiz matches the given join code.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidTransition indicates a play-session call that is illegal in
	// the current state, e.g. submitting during feedback.
	ErrInvalidTransition = errors.New("invalid session transition")
)
