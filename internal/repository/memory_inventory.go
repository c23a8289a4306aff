package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

// MemoryInventoryStore keeps showtimes and bookings in process memory. Reads
// inside a unit of work see a snapshot; writes are staged and applied at
// commit under the store lock after re-checking seat availability.
type MemoryInventoryStore struct {
	mu        sync.RWMutex
	showtimes map[string]*domain.Showtime
	bookings  map[string][]*domain.Booking
}

func NewMemoryInventoryStore() *MemoryInventoryStore {
	return &MemoryInventoryStore{
		showtimes: make(map[string]*domain.Showtime),
		bookings:  make(map[string][]*domain.Booking),
	}
}

type stagedReservation struct {
	showtimeID string
	seatIDs    []string
}

type memoryTx struct {
	store        *MemoryInventoryStore
	reservations []stagedReservation
	bookings     []*domain.Booking
}

func (m *MemoryInventoryStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.InventoryTx) error) error {

	tx := &memoryTx{store: m}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return m.commit(ctx, tx)
}

func (m *MemoryInventoryStore) commit(ctx context.Context, tx *memoryTx) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, r := range tx.reservations {
		showtime, ok := m.showtimes[r.showtimeID]
		if !ok {
			return domain.ErrRecordNotFound
		}

		available := make(map[string]bool, len(showtime.Seats))
		for _, seat := range showtime.Seats {
			available[seat.ID] = seat.Available
		}

		for _, id := range r.seatIDs {
			if !available[id] {
				return domain.ErrSeatsTaken
			}
		}
	}

	for _, r := range tx.reservations {
		showtime := m.showtimes[r.showtimeID]

		for i := range showtime.Seats {
			if slices.Contains(r.seatIDs, showtime.Seats[i].ID) {
				showtime.Seats[i].Available = false
			}
		}
	}

	now := time.Now().UTC()
	for _, b := range tx.bookings {
		b.CreatedAt = now

		stored := *b
		stored.Seats = slices.Clone(b.Seats)
		m.bookings[b.ShowtimeID] = append(m.bookings[b.ShowtimeID], &stored)
	}

	return nil
}

func (tx *memoryTx) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	return tx.store.GetShowtime(ctx, showtimeID)
}

func (tx *memoryTx) ReserveSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	tx.reservations = append(tx.reservations, stagedReservation{
		showtimeID: showtimeID,
		seatIDs:    slices.Clone(seatIDs),
	})

	return nil
}

func (tx *memoryTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.NewString()
	tx.bookings = append(tx.bookings, booking)

	return nil
}

func (m *MemoryInventoryStore) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	showtime, ok := m.showtimes[showtimeID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return showtime.Clone(), nil
}

func (m *MemoryInventoryStore) GetBooking(ctx context.Context, showtimeID, bookingID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.bookings[showtimeID] {
		if b.ID == bookingID {
			booking := *b
			booking.Seats = slices.Clone(b.Seats)
			return &booking, nil
		}
	}

	return nil, domain.ErrRecordNotFound
}

func (m *MemoryInventoryStore) ListBookingsByShowtime(ctx context.Context, showtimeID string) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bookings := make([]domain.Booking, 0, len(m.bookings[showtimeID]))
	for _, b := range m.bookings[showtimeID] {
		booking := *b
		booking.Seats = slices.Clone(b.Seats)
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// SeedShowtime stores showtime, replacing any previous inventory and bookings
// under the same ID.
func (m *MemoryInventoryStore) SeedShowtime(ctx context.Context, showtime domain.Showtime) error {
	seen := make(map[string]bool, len(showtime.Seats))
	for _, seat := range showtime.Seats {
		if seen[seat.ID] {
			return fmt.Errorf("showtime %s: duplicate seat %s", showtime.ID, seat.ID)
		}
		seen[seat.ID] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.showtimes[showtime.ID] = showtime.Clone()
	delete(m.bookings, showtime.ID)

	return nil
}
