package domain

import "errors"

var (
	// ErrNotFound: referenced hotel/booking/favorite id is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCriteria: malformed search input.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrInvalidRange: checkOut not strictly after checkIn, or guests < 1.
	ErrInvalidRange = errors.New("invalid stay range")

	// ErrPersistence wraps a document store read/write failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrAuthRequired: operation attempted without an active session.
	ErrAuthRequired = errors.New("authentication required")
)
