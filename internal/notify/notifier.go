// Package notify tells the outside world about confirmed bookings. Sinks are
// called after the booking has committed and never affect its outcome.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type SeatLine struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type BookingConfirmed struct {
	BookingID     string          `json:"bookingId"`
	ShowtimeID    string          `json:"showtimeId"`
	MovieTitle    string          `json:"movieTitle"`
	ScreenName    string          `json:"screenName"`
	StartTime     time.Time       `json:"startTime"`
	Seats         []SeatLine      `json:"seats"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	BookedAt      time.Time       `json:"bookedAt"`
}

type Notifier interface {
	BookingConfirmed(ctx context.Context, event BookingConfirmed) error
}

// Fanout delivers an event to every sink, even when some of them fail.
type Fanout []Notifier

func (f Fanout) BookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	var errs []error

	for _, n := range f {
		if err := n.BookingConfirmed(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) BookingConfirmed(context.Context, BookingConfirmed) error {
	return nil
}
