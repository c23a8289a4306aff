package mocks

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockInventoryStore runs the WithinTx callback against the domain.InventoryTx
// given to Return, then returns the configured commit error:
//
//	store.On("WithinTx", mock.Anything).Return(tx, nil)
type MockInventoryStore struct {
	mock.Mock
}

func (m *MockInventoryStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.InventoryTx) error) error {

	args := m.Called(ctx)

	if tx, ok := args.Get(0).(domain.InventoryTx); ok {
		if err := fn(ctx, tx); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockInventoryStore) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockInventoryStore) GetBooking(ctx context.Context, showtimeID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, showtimeID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockInventoryStore) ListBookingsByShowtime(ctx context.Context, showtimeID string) ([]domain.Booking, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockInventoryStore) SeedShowtime(ctx context.Context, showtime domain.Showtime) error {
	args := m.Called(ctx, showtime)
	return args.Error(0)
}

type MockInventoryTx struct {
	mock.Mock
}

func (m *MockInventoryTx) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockInventoryTx) ReserveSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	args := m.Called(ctx, showtimeID, seatIDs)
	return args.Error(0)
}

func (m *MockInventoryTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
