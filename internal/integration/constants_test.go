package integration_test

import (
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TestMovieId       = "m1"
	TestMovieTitle    = "Dil Chahta Hai"
	TestMovieDuration = 150

	TestScreenId   = "s1"
	TestScreenName = "Screen 1"

	TestShowtimeId = "st1"

	TestPhone = "+919327252376"
	TestName  = "Ishita"
	TestEmail = "ishita@example.com"
)

var (
	TestStartTime = time.Date(2025, time.September, 20, 18, 30, 0, 0, time.UTC)

	TestMovie = domain.Movie{
		ID:          TestMovieId,
		Title:       TestMovieTitle,
		DurationMin: TestMovieDuration,
		Language:    "Hindi",
		Genres:      []string{"Drama", "Friendship"},
		Rating:      decimal.RequireFromString("8.0"),
	}

	TestScreen = domain.Screen{
		ID:        TestScreenId,
		Name:      TestScreenName,
		Rows:      2,
		Cols:      3,
		BasePrice: decimal.NewFromInt(250),
	}
)

// testShowtime has seats A1 A2 A3 (vip, 250) and B1 B2 (regular, 150).
func testShowtime() domain.Showtime {
	vip := decimal.NewFromInt(250)
	regular := decimal.NewFromInt(150)

	return domain.Showtime{
		ID:        TestShowtimeId,
		MovieID:   TestMovieId,
		ScreenID:  TestScreenId,
		StartTime: TestStartTime,
		Duration:  TestMovieDuration,
		Seats: []domain.Seat{
			{ID: "A1", Category: domain.SeatCategoryVIP, Price: vip, Available: true},
			{ID: "A2", Category: domain.SeatCategoryVIP, Price: vip, Available: true},
			{ID: "A3", Category: domain.SeatCategoryVIP, Price: vip, Available: true},
			{ID: "B1", Category: domain.SeatCategoryRegular, Price: regular, Available: true},
			{ID: "B2", Category: domain.SeatCategoryRegular, Price: regular, Available: true},
		},
	}
}
