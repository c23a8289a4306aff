package app

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
)

// validPhone reports whether phone is an E.164 number and writes a validation
// error response when it is not.
func (app *Application) validPhone(w http.ResponseWriter, r *http.Request, phone string) bool {
	err := app.validator.Var(phone, "required,phone")
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return false
	}

	app.validationErrorResponse(w, r, []api.ValidationError{{
		Field: "phone",
		Issue: appvalidator.ValidationMessage(validationErrs[0]),
	}})

	return false
}

func (app *Application) GetConversation(w http.ResponseWriter, r *http.Request, phone string) {
	if !app.validPhone(w, r, phone) {
		return
	}

	conversation, err := app.conversations.Get(r.Context(), phone)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiConversation(conversation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateConversation fills the slots present in the request and leaves the
// others as they are.
func (app *Application) UpdateConversation(w http.ResponseWriter, r *http.Request, phone string) {
	if !app.validPhone(w, r, phone) {
		return
	}

	var input api.UpdateConversationRequest

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

	var seats *domain.SeatsRequest
	if input.Seats != nil {
		req := toSeatsRequest(*input.Seats)
		if !req.Valid() {
			app.validationErrorResponse(w, r, []api.ValidationError{{
				Field: "seats",
				Issue: "must be a list of seat IDs or a number of seats",
			}})
			return
		}

		seats = &req
	}

	conversation, err := app.conversations.Get(r.Context(), phone)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if input.Stage != nil {
		conversation.Stage = domain.ConversationStage(*input.Stage)
	}
	if input.MovieTitle != nil {
		conversation.MovieTitle = *input.MovieTitle
	}
	if input.ShowtimeId != nil {
		conversation.ShowtimeID = *input.ShowtimeId
	}
	if seats != nil {
		conversation.Seats = seats
	}
	if input.Name != nil {
		conversation.Name = *input.Name
	}
	if input.Email != nil {
		conversation.Email = *input.Email
	}

	err = app.conversations.Save(r.Context(), conversation)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiConversation(conversation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteConversation(w http.ResponseWriter, r *http.Request, phone string) {
	if !app.validPhone(w, r, phone) {
		return
	}

	err := app.conversations.Delete(r.Context(), phone)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmConversation books the showtime and seats collected in the
// conversation on behalf of its contact. On success the conversation moves to
// the feedback stage and remembers the booking, and the contact's name and
// email are kept for their next conversation.
func (app *Application) ConfirmConversation(w http.ResponseWriter, r *http.Request, phone string) {
	if !app.validPhone(w, r, phone) {
		return
	}

	logger := app.contextGetLogger(r)

	conversation, err := app.conversations.Get(r.Context(), phone)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if missing := conversation.MissingBookingSlots(); len(missing) > 0 {
		issues := make([]api.ValidationError, len(missing))
		for i, slot := range missing {
			issues[i] = api.ValidationError{Field: slot, Issue: "is required"}
		}

		app.validationErrorResponse(w, r, issues)
		return
	}

	requester := domain.Requester{
		UserID:    &conversation.Phone,
		UserEmail: &conversation.Email,
	}

	booking, err := app.booker.Book(r.Context(), conversation.ShowtimeID, *conversation.Seats, requester)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	conversation.BookingID = booking.ID
	conversation.Stage = domain.StageFeedback

	err = app.conversations.Save(r.Context(), conversation)
	if err != nil {
		logger.Error("failed to save conversation after booking", "booking_id", booking.ID, "error", err)
	}

	err = app.contacts.Upsert(r.Context(), &domain.Contact{
		Phone: conversation.Phone,
		Name:  conversation.Name,
		Email: conversation.Email,
	})
	if err != nil {
		logger.Error("failed to remember contact after booking", "booking_id", booking.ID, "error", err)
	}

	app.notifyBookingConfirmed(r, booking, customer{
		name:  conversation.Name,
		email: conversation.Email,
		phone: conversation.Phone,
	})

	err = app.writeJSON(w, http.StatusCreated, toBookingResult(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiConversation(c *domain.Conversation) api.Conversation {
	missing := c.MissingBookingSlots()
	if missing == nil {
		missing = []string{}
	}

	resp := api.Conversation{
		Phone:        c.Phone,
		Stage:        string(c.Stage),
		MovieTitle:   optional(c.MovieTitle),
		ShowtimeId:   optional(c.ShowtimeID),
		Name:         optional(c.Name),
		Email:        optional(c.Email),
		BookingId:    optional(c.BookingID),
		MissingSlots: missing,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.Seats != nil {
		raw, err := c.Seats.MarshalJSON()
		if err == nil {
			var seats api.SeatsSelection
			if seats.UnmarshalJSON(raw) == nil {
				resp.Seats = &seats
			}
		}
	}

	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
