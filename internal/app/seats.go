package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/seating"
)

func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request, showtimeId string) {
	logger := app.contextGetLogger(r)

	details, err := app.catalog.GetShowtimeDetails(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtime, err := app.inventory.GetShowtime(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("seat map not found for showtime", "showtime_id", showtimeId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId:     showtimeId,
		MovieId:        details.MovieID,
		MovieTitle:     details.MovieTitle,
		ScreenId:       details.ScreenID,
		ScreenName:     details.ScreenName,
		StartTime:      details.StartTime,
		AvailableSeats: len(showtime.AvailableSeatIDs()),
		SeatRows:       toSeatRows(showtime.Seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toSeatRows groups seats by their row letters, keeping inventory order both
// for rows and for seats inside a row. Seats whose ID has no row/column shape
// are grouped under the empty row without a column.
func toSeatRows(seats []domain.Seat) []api.SeatRow {
	seatRows := []api.SeatRow{}
	rowIndex := make(map[string]int)

	for _, seat := range seats {
		row, col, ok := seating.ParseSeatID(seat.ID)

		apiSeat := api.Seat{
			Id:        seat.ID,
			Category:  api.SeatCategory(seat.Category),
			Price:     seat.Price,
			Available: seat.Available,
		}

		if ok {
			apiSeat.Column = &col
		} else {
			row = ""
		}

		i, seen := rowIndex[row]
		if !seen {
			i = len(seatRows)
			rowIndex[row] = i
			seatRows = append(seatRows, api.SeatRow{Row: row})
		}

		seatRows[i].Seats = append(seatRows[i].Seats, apiSeat)
	}

	return seatRows
}
