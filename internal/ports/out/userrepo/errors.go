package userrepo

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("email already taken")
)
