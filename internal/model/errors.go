package model

import "errors"

var (
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrMalformedStore is returned when the backing store exists but its contents can't be decoded.
	ErrMalformedStore = errors.New("malformed store")
	// ErrIOFailure is returned when the backing store can't be read or written.
	ErrIOFailure = errors.New("io failure")
	// ErrInvalidInput is returned when user input is rejected before any change is applied.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind classifies the failures of the application.
type ErrorKind string

const (
	ErrorKindUnknown        ErrorKind = "unknown"
	ErrorKindMalformedStore ErrorKind = "malformed_store"
	ErrorKindIOFailure      ErrorKind = "io_failure"
	ErrorKindInvalidInput   ErrorKind = "invalid_input"
)

// KindOf returns the kind of a wrapped error. A nil error has no kind and returns
// an empty kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedStore):
		return ErrorKindMalformedStore
	case errors.Is(err, ErrIOFailure):
		return ErrorKindIOFailure
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotValid):
		return ErrorKindInvalidInput
	}
	return ErrorKindUnknown
}
