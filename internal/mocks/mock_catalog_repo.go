package mocks

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockCatalogRepo) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockCatalogRepo) ListShowtimesByMovie(ctx context.Context, movieID string) ([]domain.ShowtimeDetails, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeDetails), args.Error(1)
}

func (m *MockCatalogRepo) GetShowtimeDetails(ctx context.Context, showtimeID string) (*domain.ShowtimeDetails, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShowtimeDetails), args.Error(1)
}

func (m *MockCatalogRepo) SeedCatalog(
	ctx context.Context,
	movies []domain.Movie,
	screens []domain.Screen,
	showtimes []domain.Showtime) error {

	args := m.Called(ctx, movies, screens, showtimes)
	return args.Error(0)
}
