package domain

import "errors"

// Authorization failures.
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
)

// Lookup misses. Each wraps ErrNotFound so callers can match either.
var (
	ErrNotFound      = errors.New("not found")
	ErrUserNotFound  = notFound("user not found")
	ErrToolNotFound  = notFound("tool not found")
	ErrOrderNotFound = notFound("order not found")
)

var (
	ErrInvalidID         = errors.New("invalid identifier")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrQueueFull         = errors.New("notification queue full")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }
