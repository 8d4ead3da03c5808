package services

import "fmt"

// ValidationError reports malformed or missing user input. Recoverable; the
// operation performs no state change.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// GenerationError reports a response-generator failure. A single failed
// attempt surfaces immediately; retries are the caller's business.
type GenerationError struct {
	Generator string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generator failed: %v", e.Generator, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// BusyError rejects a chat send while a previous response is still in flight.
type BusyError struct{ Message string }

func (e *BusyError) Error() string { return e.Message }

// StorageError wraps unparseable persisted state. Callers treat the sequence
// as empty and log; it is never fatal.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("unreadable stored state at %s: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
