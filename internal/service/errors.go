package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidResetCode       = errors.New("invalid code or email")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("conflict")
)
