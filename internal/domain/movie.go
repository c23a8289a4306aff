package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID          string
	Title       string
	DurationMin int
	Language    string
	Genres      []string
	Rating      decimal.Decimal
}

type Screen struct {
	ID        string
	Name      string
	Rows      int
	Cols      int
	BasePrice decimal.Decimal
}

// ShowtimeDetails is the presentation view of a showtime, joined with its
// movie and screen.
type ShowtimeDetails struct {
	ShowtimeID string
	MovieID    string
	MovieTitle string
	ScreenID   string
	ScreenName string
	StartTime  time.Time
	Duration   int
}

type CatalogRepository interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	GetMovie(ctx context.Context, id string) (*Movie, error)
	ListShowtimesByMovie(ctx context.Context, movieID string) ([]ShowtimeDetails, error)
	GetShowtimeDetails(ctx context.Context, showtimeID string) (*ShowtimeDetails, error)
	SeedCatalog(ctx context.Context, movies []Movie, screens []Screen, showtimes []Showtime) error
}
