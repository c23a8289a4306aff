package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.catalog.ListMovies(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: make([]api.Movie, len(movies)),
	}

	for i := range movies {
		resp.Movies[i] = toApiMovie(&movies[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ListShowtimesByMovie lists a movie's showtimes with the number of seats the
// inventory currently reports as available.
func (app *Application) ListShowtimesByMovie(w http.ResponseWriter, r *http.Request, movieId string) {
	logger := app.contextGetLogger(r)

	movie, err := app.catalog.GetMovie(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtimes, err := app.catalog.ListShowtimesByMovie(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieShowtimesResponse{
		Movie:     toApiMovie(movie),
		Showtimes: make([]api.ShowtimeSummary, 0, len(showtimes)),
	}

	for _, st := range showtimes {
		available := 0

		inventory, err := app.inventory.GetShowtime(r.Context(), st.ShowtimeID)
		switch {
		case err == nil:
			available = len(inventory.AvailableSeatIDs())
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("showtime has no seat inventory", "showtime_id", st.ShowtimeID)
		default:
			app.serverErrorResponse(w, r, err)
			return
		}

		resp.Showtimes = append(resp.Showtimes, api.ShowtimeSummary{
			Id:             st.ShowtimeID,
			ScreenId:       st.ScreenID,
			ScreenName:     st.ScreenName,
			StartTime:      st.StartTime,
			DurationMin:    st.Duration,
			AvailableSeats: available,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiMovie(movie *domain.Movie) api.Movie {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return api.Movie{
		Id:          movie.ID,
		Title:       movie.Title,
		DurationMin: movie.DurationMin,
		Language:    movie.Language,
		Genres:      genres,
		Rating:      movie.Rating,
	}
}
