package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidRecord      = errors.New("invalid user record")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("invalid token")
	ErrRoleMismatch       = errors.New("role mismatch")
)
