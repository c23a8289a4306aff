// Package seed generates the demo data set: a handful of movies and screens,
// a week of showtimes with per-seat pricing and a few returning contacts.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultDays = 7

	firstShowHour = 10
	lastShowHour  = 23
	cleaningGap   = 20 * time.Minute
)

var (
	minSeatPrice = decimal.NewFromInt(100)

	morningDiscount  = decimal.NewFromInt(50)
	eveningSurcharge = decimal.NewFromInt(30)
	weekendSurcharge = decimal.NewFromInt(20)
	premiumSurcharge = decimal.NewFromInt(50)
	vipSurcharge     = decimal.NewFromInt(100)
)

// DefaultStart is the first day of the generated schedule.
var DefaultStart = time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)

var Movies = []domain.Movie{
	{ID: "m1", Title: "Dil Chahta Hai", DurationMin: 150, Language: "Hindi", Genres: []string{"Drama", "Friendship"}, Rating: decimal.RequireFromString("8.0")},
	{ID: "m2", Title: "3 Idiots", DurationMin: 170, Language: "Hindi", Genres: []string{"Comedy", "Drama"}, Rating: decimal.RequireFromString("8.5")},
	{ID: "m3", Title: "Andhadhun", DurationMin: 140, Language: "Hindi", Genres: []string{"Thriller", "Mystery"}, Rating: decimal.RequireFromString("8.2")},
	{ID: "m4", Title: "Zindagi Na Milegi Dobara", DurationMin: 155, Language: "Hindi", Genres: []string{"Adventure", "Drama"}, Rating: decimal.RequireFromString("8.3")},
	{ID: "m5", Title: "Chhichhore", DurationMin: 145, Language: "Hindi", Genres: []string{"Comedy", "Drama"}, Rating: decimal.RequireFromString("7.9")},
}

// Contacts are returning customers whose conversations start with their
// name and email filled in.
var Contacts = []domain.Contact{
	{Phone: "+919327252376", Name: "Ishita", Email: "ishitaamin3094@gmail.com"},
	{Phone: "+919888888888", Name: "Rohit", Email: "rohit@example.com"},
	{Phone: "+919777777777", Name: "Priya", Email: "priya@example.com"},
}

var Screens = []domain.Screen{
	{ID: "s1", Name: "Screen 1", Rows: 10, Cols: 12, BasePrice: decimal.NewFromInt(250)},
	{ID: "s2", Name: "Screen 2", Rows: 8, Cols: 10, BasePrice: decimal.NewFromInt(200)},
	{ID: "s3", Name: "Screen 3", Rows: 6, Cols: 8, BasePrice: decimal.NewFromInt(180)},
}

type Plan struct {
	Movies    []domain.Movie
	Screens   []domain.Screen
	Showtimes []domain.Showtime
}

// DefaultPlan is the demo data set: every movie and screen plus a week of
// showtimes starting at DefaultStart.
func DefaultPlan() Plan {
	return Plan{
		Movies:    Movies,
		Screens:   Screens,
		Showtimes: Showtimes(Movies, Screens, DefaultStart, DefaultDays),
	}
}

// Showtimes schedules every screen for the given number of days. Each day a
// screen opens at 10:00 and runs back-to-back shows, with a 20 minute gap,
// for as long as the next show starts before 23:00. Movies are assigned
// round-robin across all screens and days. IDs are st1, st2, ... in
// schedule order.
func Showtimes(movies []domain.Movie, screens []domain.Screen, start time.Time, days int) []domain.Showtime {
	if len(movies) == 0 {
		return nil
	}

	var showtimes []domain.Showtime
	next := 0

	for day := range days {
		date := start.AddDate(0, 0, day)
		opening := time.Date(date.Year(), date.Month(), date.Day(), firstShowHour, 0, 0, 0, date.Location())
		closing := time.Date(date.Year(), date.Month(), date.Day(), lastShowHour, 0, 0, 0, date.Location())

		for _, screen := range screens {
			for at := opening; at.Before(closing); {
				movie := movies[next%len(movies)]
				next++

				showtimes = append(showtimes, domain.Showtime{
					ID:        fmt.Sprintf("st%d", len(showtimes)+1),
					MovieID:   movie.ID,
					ScreenID:  screen.ID,
					StartTime: at,
					Duration:  movie.DurationMin,
					Seats:     SeatMap(screen, at),
				})

				at = at.Add(time.Duration(movie.DurationMin)*time.Minute + cleaningGap)
			}
		}
	}

	return showtimes
}

// SeatMap lays out a screen's seats row by row (A1, A2, ..., B1, ...), all
// available and priced for a show starting at startTime.
func SeatMap(screen domain.Screen, startTime time.Time) []domain.Seat {
	seats := make([]domain.Seat, 0, screen.Rows*screen.Cols)

	for row := range screen.Rows {
		category := Category(row, screen.Rows)
		price := Price(screen.BasePrice, startTime, category)

		for col := 1; col <= screen.Cols; col++ {
			seats = append(seats, domain.Seat{
				ID:        fmt.Sprintf("%s%d", RowLabel(row), col),
				Category:  category,
				Price:     price,
				Available: true,
			})
		}
	}

	return seats
}

// RowLabel names a zero-based row: A..Z, then AA, AB, ...
func RowLabel(row int) string {
	label := ""

	for row >= 0 {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
	}

	return label
}

// Category puts the first two rows in vip and the last two in regular.
// Everything in between is premium.
func Category(row, rows int) domain.SeatCategory {
	switch {
	case row < 2:
		return domain.SeatCategoryVIP
	case row < rows-2:
		return domain.SeatCategoryPremium
	default:
		return domain.SeatCategoryRegular
	}
}

// Price applies time-of-day, weekend and category adjustments to a screen's
// base price. The result is never below 100.
func Price(base decimal.Decimal, startTime time.Time, category domain.SeatCategory) decimal.Decimal {
	price := base

	switch hour := startTime.Hour(); {
	case hour < 13:
		price = price.Sub(morningDiscount)
	case hour >= 18:
		price = price.Add(eveningSurcharge)
	}

	if day := startTime.Weekday(); day == time.Saturday || day == time.Sunday {
		price = price.Add(weekendSurcharge)
	}

	switch category {
	case domain.SeatCategoryPremium:
		price = price.Add(premiumSurcharge)
	case domain.SeatCategoryVIP:
		price = price.Add(vipSurcharge)
	}

	return decimal.Max(price, minSeatPrice)
}

// Apply writes the plan's catalog (when catalog is non-nil) and then resets
// the inventory of every showtime in the plan.
func Apply(ctx context.Context, catalog domain.CatalogRepository, inventory domain.InventoryStore, plan Plan) error {
	if catalog != nil {
		err := catalog.SeedCatalog(ctx, plan.Movies, plan.Screens, plan.Showtimes)
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	for _, showtime := range plan.Showtimes {
		err := inventory.SeedShowtime(ctx, showtime)
		if err != nil {
			return fmt.Errorf("failed to seed showtime %s: %w", showtime.ID, err)
		}
	}

	return nil
}

// ApplyContacts creates or refreshes every contact.
func ApplyContacts(ctx context.Context, repo domain.ContactRepository, contacts []domain.Contact) error {
	for _, contact := range contacts {
		err := repo.Upsert(ctx, &contact)
		if err != nil {
			return fmt.Errorf("failed to seed contact %s: %w", contact.Phone, err)
		}
	}

	return nil
}
