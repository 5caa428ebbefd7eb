// Package entity defines the entities and errors used in the application.
// It includes the URL record, which binds a long URL to its click counter,
// along with the error kinds every layer reports through.
package entity

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrInvalidArgument is returned when an input or a construction dependency is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyExists is returned when a custom short URI is already taken.
	ErrAlreadyExists = errors.New("short uri already exists")
	// ErrNotFound is returned when no record is bound to the requested short URI.
	ErrNotFound = errors.New("short uri not found")
	// ErrResourceExhausted is returned when no free short URI was generated within the attempt budget.
	ErrResourceExhausted = errors.New("unable to generate unique short uri")
	// ErrCapacityExceeded is returned when the store holds more items than the configured ceiling.
	ErrCapacityExceeded = errors.New("total items limit exceeded")
)

// URL is the record stored under a short URI.
//
// The original URL is fixed at construction. The access count starts at zero
// and only ever grows; a new record is the only way to get a fresh counter.
type URL struct {
	originalURL string
	accessCount atomic.Uint64
}

// NewURL creates a record for originalURL with a zero access count.
func NewURL(originalURL string) *URL {
	return &URL{originalURL: originalURL}
}

// OriginalURL returns the long URL the record points to.
func (u *URL) OriginalURL() string {
	return u.originalURL
}

// AccessCount returns the number of successful lookups of the record.
func (u *URL) AccessCount() uint64 {
	return u.accessCount.Load()
}

// IncrementAccessCount atomically adds one click and returns the new count.
func (u *URL) IncrementAccessCount() uint64 {
	return u.accessCount.Add(1)
}
