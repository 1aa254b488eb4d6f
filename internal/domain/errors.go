package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAuthUnavailable = errors.New("auth not configured")
	ErrConfigMissing   = errors.New("configuration missing")
)
