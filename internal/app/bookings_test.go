package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/mailer"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/metinatakli/showtime-booking/internal/notify"
	"github.com/metinatakli/showtime-booking/internal/repository"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testStartTime = time.Date(2025, time.September, 20, 18, 30, 0, 0, time.UTC)

func testShowtime() domain.Showtime {
	return domain.Showtime{
		ID:        "st1",
		MovieID:   "m1",
		ScreenID:  "s1",
		StartTime: testStartTime,
		Duration:  150,
		Seats: []domain.Seat{
			{ID: "A1", Category: domain.SeatCategoryVIP, Price: decimal.NewFromInt(250), Available: true},
			{ID: "A2", Category: domain.SeatCategoryVIP, Price: decimal.NewFromInt(250), Available: true},
			{ID: "A3", Category: domain.SeatCategoryVIP, Price: decimal.NewFromInt(250), Available: true},
			{ID: "B1", Category: domain.SeatCategoryRegular, Price: decimal.NewFromInt(150), Available: true},
			{ID: "B2", Category: domain.SeatCategoryRegular, Price: decimal.NewFromInt(150), Available: true},
		},
	}
}

func testShowtimeDetails() *domain.ShowtimeDetails {
	return &domain.ShowtimeDetails{
		ShowtimeID: "st1",
		MovieID:    "m1",
		MovieTitle: "Dil Chahta Hai",
		ScreenID:   "s1",
		ScreenName: "Screen 1",
		StartTime:  testStartTime,
		Duration:   150,
	}
}

type BookingsTestSuite struct {
	suite.Suite
	app       *Application
	inventory *repository.MemoryInventoryStore
	catalog   *mocks.MockCatalogRepo
	mailer    *mailer.MockMailer
}

func (s *BookingsTestSuite) SetupTest() {
	s.inventory = repository.NewMemoryInventoryStore()
	s.Require().NoError(s.inventory.SeedShowtime(context.Background(), testShowtime()))

	s.catalog = new(mocks.MockCatalogRepo)
	s.catalog.On("GetShowtimeDetails", mock.Anything, "st1").Return(testShowtimeDetails(), nil).Maybe()

	s.mailer = mailer.NewMockMailer()

	s.app = newTestApplication(func(a *Application) {
		a.inventory = s.inventory
		a.catalog = s.catalog
		a.notifier = notify.Fanout{notify.NewMailNotifier(s.mailer)}
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func (s *BookingsTestSuite) post(url, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.app.Routes().ServeHTTP(w, r)
	s.app.Wait()

	return w
}

func (s *BookingsTestSuite) TestCreateBooking() {
	tests := []struct {
		name           string
		url            string
		body           string
		before         func()
		wantStatus     int
		wantResult     *api.BookingResult
		wantErrMessage string
	}{
		{
			name:       "should book the first contiguous seats for a count",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": 2}`,
			wantStatus: http.StatusCreated,
			wantResult: &api.BookingResult{
				Success: true,
				Message: ptr(bookingConfirmedMessage),
				Seats:   &[]string{"A1", "A2"},
			},
		},
		{
			name:       "should book an explicit seat list for a known user",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": ["B1", "B2"], "userId": "u1", "userEmail": "rohit@example.com"}`,
			wantStatus: http.StatusCreated,
			wantResult: &api.BookingResult{
				Success: true,
				Message: ptr(bookingConfirmedMessage),
				Seats:   &[]string{"B1", "B2"},
			},
		},
		{
			name: "should name the seats that are already taken",
			url:  "/showtimes/st1/bookings",
			body: `{"seats": ["A1", "A3"]}`,
			before: func() {
				_, err := s.app.booker.Book(context.Background(), "st1", domain.SeatIDs("A1"), domain.Requester{})
				s.Require().NoError(err)
			},
			wantStatus: http.StatusConflict,
			wantResult: &api.BookingResult{
				Success: false,
				Message: ptr("Some seats are not available: A1"),
				Seats:   &[]string{"A1"},
			},
		},
		{
			name:       "should report an unknown showtime",
			url:        "/showtimes/st404/bookings",
			body:       `{"seats": 1}`,
			wantStatus: http.StatusNotFound,
			wantResult: &api.BookingResult{Success: false, Message: ptr("Showtime not found.")},
		},
		{
			name:       "should reject an empty seat list",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": []}`,
			wantStatus: http.StatusBadRequest,
			wantResult: &api.BookingResult{Success: false, Message: ptr("No seats requested.")},
		},
		{
			name:       "should reject a missing seats field",
			url:        "/showtimes/st1/bookings",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantResult: &api.BookingResult{Success: false, Message: ptr("No seats requested.")},
		},
		{
			name:       "should reject seats of the wrong shape",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": {"row": "A"}}`,
			wantStatus: http.StatusBadRequest,
			wantResult: &api.BookingResult{Success: false, Message: ptr("Invalid seats format; must be list or int.")},
		},
		{
			name:       "should reject an empty seats object",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": {}}`,
			wantStatus: http.StatusBadRequest,
			wantResult: &api.BookingResult{Success: false, Message: ptr("Invalid seats format; must be list or int.")},
		},
		{
			name:       "should reject seat lists with non-id entries",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": [true, null]}`,
			wantStatus: http.StatusBadRequest,
			wantResult: &api.BookingResult{Success: false, Message: ptr("Invalid seats format; must be list or int.")},
		},
		{
			name:       "should report when the showtime has too few seats left",
			url:        "/showtimes/st1/bookings",
			body:       `{"seats": 9}`,
			wantStatus: http.StatusConflict,
			wantResult: &api.BookingResult{
				Success: false,
				Message: ptr("Not enough seats available. Requested 9, available 5."),
			},
		},
		{
			name:           "should fail validation for an invalid email",
			url:            "/showtimes/st1/bookings",
			body:           `{"seats": 1, "userEmail": "not-an-email"}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a valid email address",
		},
		{
			name:           "should reject malformed JSON",
			url:            "/showtimes/st1/bookings",
			body:           `{"seats": [`,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "body contains badly-formed JSON",
		},
		{
			name:           "should reject unknown fields",
			url:            "/showtimes/st1/bookings",
			body:           `{"seats": 1, "coupon": "FREE"}`,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: `body contains unknown key "coupon"`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.before != nil {
				tt.before()
			}

			w := s.post(tt.url, tt.body)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResult != nil {
				var result api.BookingResult
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&result))

				diff := cmp.Diff(tt.wantResult, &result, cmpopts.IgnoreFields(api.BookingResult{}, "BookingId"))
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)

				s.Equal(tt.wantResult.Success, result.BookingId != nil)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingFlipsInventoryAndStoresBooking() {
	w := s.post("/showtimes/st1/bookings", `{"seats": ["B2", 1], "userEmail": "priya@example.com"}`)
	s.Require().Equal(http.StatusConflict, w.Code)

	w = s.post("/showtimes/st1/bookings", `{"seats": ["B2", "A3"], "userEmail": "priya@example.com"}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	var result api.BookingResult
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&result))
	s.Require().NotNil(result.BookingId)

	showtime, err := s.inventory.GetShowtime(context.Background(), "st1")
	s.Require().NoError(err)
	s.Equal([]string{"A1", "A2", "B1"}, showtime.AvailableSeatIDs())

	stored, err := s.inventory.GetBooking(context.Background(), "st1", *result.BookingId)
	s.Require().NoError(err)
	s.Equal([]string{"B2", "A3"}, stored.Seats)
	s.True(decimal.NewFromInt(400).Equal(stored.TotalPrice))
	s.Equal(ptr("priya@example.com"), stored.UserEmail)
}

func (s *BookingsTestSuite) TestCreateBookingSendsConfirmation() {
	w := s.post("/showtimes/st1/bookings", `{"seats": ["A1", "B1"], "userEmail": "rohit@example.com"}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	emails := s.mailer.GetSentEmails()
	s.Require().Len(emails, 1)
	s.Equal("rohit@example.com", emails[0].Recipient)
	s.Equal("booking_confirmation.tmpl", emails[0].TemplateFile)

	event, ok := emails[0].Data.(notify.BookingConfirmed)
	s.Require().True(ok)
	s.Equal("Dil Chahta Hai", event.MovieTitle)
	s.Equal("Screen 1", event.ScreenName)
	s.Equal(testStartTime, event.StartTime)
	s.True(decimal.NewFromInt(400).Equal(event.TotalPrice))

	s.Require().Len(event.Seats, 2)
	s.Equal("A1", event.Seats[0].ID)
	s.Equal("vip", event.Seats[0].Category)
	s.True(decimal.NewFromInt(250).Equal(event.Seats[0].Price))
	s.Equal("B1", event.Seats[1].ID)
	s.True(decimal.NewFromInt(150).Equal(event.Seats[1].Price))
}

func (s *BookingsTestSuite) TestCreateBookingWithoutEmailSendsNothing() {
	w := s.post("/showtimes/st1/bookings", `{"seats": 1}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	s.Empty(s.mailer.GetSentEmails())
}

func (s *BookingsTestSuite) TestNotificationFailureDoesNotAffectTheBooking() {
	s.mailer.Err = errors.New("smtp: connection refused")

	w := s.post("/showtimes/st1/bookings", `{"seats": 1, "userEmail": "rohit@example.com"}`)
	s.Equal(http.StatusCreated, w.Code)

	showtime, err := s.inventory.GetShowtime(context.Background(), "st1")
	s.Require().NoError(err)
	s.Len(showtime.AvailableSeatIDs(), 4)
}

func (s *BookingsTestSuite) TestCreateBookingStoreFailures() {
	tests := []struct {
		name        string
		commitErr   error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "should answer 503 when the store is temporarily unavailable",
			commitErr:   fmt.Errorf("begin: %w", domain.ErrStoreUnavailable),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "We couldn't complete your booking right now. Please try again.",
		},
		{
			name:        "should answer 500 for other store faults without leaking the cause",
			commitErr:   errors.New("pq: relation \"showtime_seats\" does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "We couldn't complete your booking right now. Please try again.",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			store := new(mocks.MockInventoryStore)
			store.On("WithinTx", mock.Anything).Return(nil, tt.commitErr)

			app := newTestApplication(func(a *Application) {
				a.inventory = store
			})

			w, r := executeRequest(s.T(), http.MethodPost, "/showtimes/st1/bookings", map[string]any{"seats": 1})
			app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			var result api.BookingResult
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&result))
			s.False(result.Success)
			s.Equal(tt.wantMessage, *result.Message)
			s.NotContains(w.Body.String(), "relation")

			store.AssertExpectations(s.T())
		})
	}
}

func (s *BookingsTestSuite) TestGetBooking() {
	booked, err := s.app.booker.Book(
		context.Background(),
		"st1",
		domain.SeatCount(2),
		domain.Requester{UserID: ptr("u2"), UserEmail: ptr("rohit@example.com")},
	)
	s.Require().NoError(err)

	tests := []struct {
		name         string
		url          string
		wantStatus   int
		wantResponse *api.Booking
	}{
		{
			name:       "should return a stored booking",
			url:        fmt.Sprintf("/showtimes/st1/bookings/%s", booked.ID),
			wantStatus: http.StatusOK,
			wantResponse: &api.Booking{
				Id:         booked.ID,
				ShowtimeId: "st1",
				Seats:      []string{"A1", "A2"},
				Status:     "confirmed",
				TotalPrice: decimal.NewFromInt(500),
				UserId:     ptr("u2"),
				UserEmail:  ptr(openapi_types.Email("rohit@example.com")),
			},
		},
		{
			name:       "should return not found for an unknown booking",
			url:        "/showtimes/st1/bookings/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "should return not found for a booking of another showtime",
			url:        fmt.Sprintf("/showtimes/st2/bookings/%s", booked.ID),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.Booking
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))

				diff := cmp.Diff(tt.wantResponse, &response,
					cmpopts.IgnoreFields(api.Booking{}, "CreatedAt"),
					cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
				)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: ErrNotFound,
			})
		})
	}
}

func TestBookingErrorStatus(t *testing.T) {
	tests := []struct {
		err  *domain.BookingError
		want int
	}{
		{err: &domain.BookingError{Kind: domain.ErrShowtimeNotFound}, want: http.StatusNotFound},
		{err: &domain.BookingError{Kind: domain.ErrNoSeatsRequested}, want: http.StatusBadRequest},
		{err: &domain.BookingError{Kind: domain.ErrInvalidSeatsFormat}, want: http.StatusBadRequest},
		{err: &domain.BookingError{Kind: domain.ErrNotEnoughSeats}, want: http.StatusConflict},
		{err: &domain.BookingError{Kind: domain.ErrSeatsUnavailable}, want: http.StatusConflict},
		{err: &domain.BookingError{Kind: domain.ErrSeatsNoLongerAvailable}, want: http.StatusConflict},
		{err: &domain.BookingError{Kind: domain.ErrStore, Transient: true}, want: http.StatusServiceUnavailable},
		{err: &domain.BookingError{Kind: domain.ErrStore}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			if got := bookingErrorStatus(tt.err); got != tt.want {
				t.Errorf("bookingErrorStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
