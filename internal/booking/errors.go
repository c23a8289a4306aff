package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

const storeErrorMessage = "We couldn't complete your booking right now. Please try again."

func errShowtimeNotFound() *domain.BookingError {
	return &domain.BookingError{
		Kind:    domain.ErrShowtimeNotFound,
		Message: "Showtime not found.",
	}
}

func errNoSeatsRequested() *domain.BookingError {
	return &domain.BookingError{
		Kind:    domain.ErrNoSeatsRequested,
		Message: "No seats requested.",
	}
}

func errInvalidSeatsFormat() *domain.BookingError {
	return &domain.BookingError{
		Kind:    domain.ErrInvalidSeatsFormat,
		Message: "Invalid seats format; must be list or int.",
	}
}

func errNotEnoughSeats(requested, available int) *domain.BookingError {
	return &domain.BookingError{
		Kind:      domain.ErrNotEnoughSeats,
		Message:   fmt.Sprintf("Not enough seats available. Requested %d, available %d.", requested, available),
		Requested: requested,
		Available: available,
	}
}

func errSeatsUnavailable(missing []string) *domain.BookingError {
	return &domain.BookingError{
		Kind:    domain.ErrSeatsUnavailable,
		Message: fmt.Sprintf("Some seats are not available: %s", strings.Join(missing, ", ")),
		Seats:   missing,
	}
}

func errSeatsNoLongerAvailable(seats []string) *domain.BookingError {
	return &domain.BookingError{
		Kind:      domain.ErrSeatsNoLongerAvailable,
		Message:   "One or more seats were no longer available. Please refresh and try different seats.",
		Seats:     seats,
		Transient: true,
	}
}

func errStore(cause error) *domain.BookingError {
	return &domain.BookingError{
		Kind:      domain.ErrStore,
		Message:   storeErrorMessage,
		Transient: isTransient(cause),
		Err:       cause,
	}
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
