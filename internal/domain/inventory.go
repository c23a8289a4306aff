package domain

import "context"

// InventoryTx is the view of the inventory inside one atomic unit of work.
type InventoryTx interface {
	GetShowtime(ctx context.Context, showtimeID string) (*Showtime, error)

	// ReserveSeats flips every seat to unavailable only if all of them are
	// still available when the unit of work commits. Otherwise the whole unit
	// fails with ErrSeatsTaken, either from this call or from WithinTx.
	ReserveSeats(ctx context.Context, showtimeID string, seatIDs []string) error

	// InsertBooking stores the booking and fills in ID and CreatedAt.
	InsertBooking(ctx context.Context, booking *Booking) error
}

type InventoryTxRunner interface {
	// WithinTx runs fn in a single atomic unit of work. If fn returns an error
	// or the context ends before commit, none of its writes become visible.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx InventoryTx) error) error
}

type InventoryStore interface {
	InventoryTxRunner

	GetShowtime(ctx context.Context, showtimeID string) (*Showtime, error)
	GetBooking(ctx context.Context, showtimeID, bookingID string) (*Booking, error)
	ListBookingsByShowtime(ctx context.Context, showtimeID string) ([]Booking, error)
	SeedShowtime(ctx context.Context, showtime Showtime) error
}
