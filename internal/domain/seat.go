package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SeatCategory string

const (
	SeatCategoryVIP     SeatCategory = "vip"
	SeatCategoryPremium SeatCategory = "premium"
	SeatCategoryRegular SeatCategory = "regular"
)

type Seat struct {
	ID        string
	Category  SeatCategory
	Price     decimal.Decimal
	Available bool
}

// Showtime is a single screening with its own seat inventory. Seat IDs are
// unique within a showtime; Seats keeps the order the inventory was seeded in.
type Showtime struct {
	ID        string
	MovieID   string
	ScreenID  string
	StartTime time.Time
	Duration  int
	Seats     []Seat
}

// AvailableSeatIDs returns the IDs of seats that are still available, in
// inventory order.
func (s *Showtime) AvailableSeatIDs() []string {
	ids := make([]string, 0, len(s.Seats))

	for _, seat := range s.Seats {
		if seat.Available {
			ids = append(ids, seat.ID)
		}
	}

	return ids
}

// TotalPrice sums the prices of the given seats. Unknown IDs are ignored.
func (s *Showtime) TotalPrice(seatIDs []string) decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(s.Seats))
	for _, seat := range s.Seats {
		prices[seat.ID] = seat.Price
	}

	total := decimal.Zero
	for _, id := range seatIDs {
		total = total.Add(prices[id])
	}

	return total
}

func (s *Showtime) Clone() *Showtime {
	clone := *s
	clone.Seats = make([]Seat, len(s.Seats))
	copy(clone.Seats, s.Seats)

	return &clone
}
