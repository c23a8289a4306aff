package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")

	// ErrSeatsTaken is returned by an inventory transaction when at least one
	// targeted seat was no longer available when the write was applied.
	ErrSeatsTaken = errors.New("seat(s) are no longer available")

	// ErrStoreUnavailable marks store faults that are expected to clear on
	// their own (lock timeouts, serialization failures, lost connections).
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)

// BookingErrorKind classifies a failed booking. Kinds are errors themselves so
// callers can write errors.Is(err, domain.ErrSeatsUnavailable).
type BookingErrorKind string

const (
	ErrShowtimeNotFound       BookingErrorKind = "ShowtimeNotFound"
	ErrNoSeatsRequested       BookingErrorKind = "NoSeatsRequested"
	ErrInvalidSeatsFormat     BookingErrorKind = "InvalidSeatsFormat"
	ErrNotEnoughSeats         BookingErrorKind = "NotEnoughSeats"
	ErrSeatsUnavailable       BookingErrorKind = "SeatsUnavailable"
	ErrSeatsNoLongerAvailable BookingErrorKind = "SeatsNoLongerAvailable"
	ErrStore                  BookingErrorKind = "StoreError"
)

func (k BookingErrorKind) Error() string {
	return string(k)
}

// BookingError is the typed failure of a booking attempt. Message is safe to
// show to end users; Err holds the underlying cause for StoreError only.
type BookingError struct {
	Kind      BookingErrorKind
	Message   string
	Seats     []string
	Requested int
	Available int
	Transient bool
	Err       error
}

func (e *BookingError) Error() string {
	var sb strings.Builder

	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}

	return sb.String()
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func (e *BookingError) Is(target error) bool {
	kind, ok := target.(BookingErrorKind)
	return ok && kind == e.Kind
}

// Retryable reports whether the failure came from contention or the store
// rather than from the request itself. Callers should re-read availability
// before trying again.
func (e *BookingError) Retryable() bool {
	return e.Kind == ErrSeatsNoLongerAvailable || e.Kind == ErrStore
}
