package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/notify"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const bookingConfirmedMessage = "Booking confirmed."

// customer is who gets told about a confirmed booking.
type customer struct {
	name  string
	email string
	phone string
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request, showtimeId string) {
	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	requester := domain.Requester{
		UserID:    input.UserId,
		UserEmail: input.UserEmail,
	}

	booking, err := app.booker.Book(r.Context(), showtimeId, toSeatsRequest(input.Seats), requester)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	var recipient customer
	if input.UserEmail != nil {
		recipient.email = *input.UserEmail
	}

	app.notifyBookingConfirmed(r, booking, recipient)

	err = app.writeJSON(w, http.StatusCreated, toBookingResult(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request, showtimeId string, bookingId string) {
	booking, err := app.inventory.GetBooking(r.Context(), showtimeId, bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.Booking{
		Id:         booking.ID,
		ShowtimeId: booking.ShowtimeID,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		UserId:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}

	if booking.UserEmail != nil {
		email := openapi_types.Email(*booking.UserEmail)
		resp.UserEmail = &email
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// notifyBookingConfirmed hands the booking to the notifier in the background.
// Failures are logged only; the booking has already committed.
func (app *Application) notifyBookingConfirmed(r *http.Request, booking *domain.Booking, recipient customer) {
	app.background(r, "notify_booking_confirmed", func(ctx context.Context, logger *slog.Logger) {
		event := app.bookingConfirmedEvent(ctx, logger, booking, recipient)

		err := app.notifier.BookingConfirmed(ctx, event)
		if err != nil {
			logger.Error("failed to send booking confirmation", "booking_id", booking.ID, "error", err)
			return
		}

		logger.Info("booking confirmation sent", "booking_id", booking.ID)
	})
}

// bookingConfirmedEvent enriches a booking with catalog details and per-seat
// prices. Lookup failures leave the affected fields empty.
func (app *Application) bookingConfirmedEvent(
	ctx context.Context,
	logger *slog.Logger,
	booking *domain.Booking,
	recipient customer) notify.BookingConfirmed {

	event := notify.BookingConfirmed{
		BookingID:     booking.ID,
		ShowtimeID:    booking.ShowtimeID,
		TotalPrice:    booking.TotalPrice,
		CustomerName:  recipient.name,
		CustomerEmail: recipient.email,
		CustomerPhone: recipient.phone,
		BookedAt:      booking.CreatedAt,
		Seats:         make([]notify.SeatLine, 0, len(booking.Seats)),
	}

	details, err := app.catalog.GetShowtimeDetails(ctx, booking.ShowtimeID)
	if err != nil {
		logger.Warn("failed to load showtime details for confirmation", "showtime_id", booking.ShowtimeID, "error", err)
	} else {
		event.MovieTitle = details.MovieTitle
		event.ScreenName = details.ScreenName
		event.StartTime = details.StartTime
	}

	seats := make(map[string]domain.Seat)

	showtime, err := app.inventory.GetShowtime(ctx, booking.ShowtimeID)
	if err != nil {
		logger.Warn("failed to load seat prices for confirmation", "showtime_id", booking.ShowtimeID, "error", err)
	} else {
		for _, seat := range showtime.Seats {
			seats[seat.ID] = seat
		}
	}

	for _, id := range booking.Seats {
		seat := seats[id]

		event.Seats = append(event.Seats, notify.SeatLine{
			ID:       id,
			Category: string(seat.Category),
			Price:    seat.Price,
		})
	}

	return event
}

func toBookingResult(booking *domain.Booking) api.BookingResult {
	message := bookingConfirmedMessage

	return api.BookingResult{
		Success:   true,
		Message:   &message,
		BookingId: &booking.ID,
		Seats:     &booking.Seats,
	}
}

func toSeatsRequest(selection api.SeatsSelection) domain.SeatsRequest {
	raw, err := selection.MarshalJSON()
	if err != nil {
		return domain.SeatsRequest{}
	}

	return domain.ParseSeatsRequest(raw)
}
