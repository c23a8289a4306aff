package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

const movieColumns = `id, title, duration_min, language, genres, rating`

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var (
		movie  domain.Movie
		rating pgtype.Numeric
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.DurationMin,
		&movie.Language,
		&movie.Genres,
		&rating,
	)
	if err != nil {
		return nil, err
	}

	movie.Rating = fromNumeric(rating)

	return &movie, nil
}

func (p *PostgresCatalogRepository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY title, id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, *movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresCatalogRepository) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

const showtimeDetailsQuery = `
	SELECT s.id, m.id, m.title, sc.id, sc.name, s.start_time, s.duration_min
	FROM showtimes s
	JOIN movies m ON s.movie_id = m.id
	JOIN screens sc ON s.screen_id = sc.id
`

func scanShowtimeDetails(row pgx.Row) (*domain.ShowtimeDetails, error) {
	var details domain.ShowtimeDetails

	err := row.Scan(
		&details.ShowtimeID,
		&details.MovieID,
		&details.MovieTitle,
		&details.ScreenID,
		&details.ScreenName,
		&details.StartTime,
		&details.Duration,
	)
	if err != nil {
		return nil, err
	}

	return &details, nil
}

func (p *PostgresCatalogRepository) ListShowtimesByMovie(ctx context.Context, movieID string) ([]domain.ShowtimeDetails, error) {
	query := showtimeDetailsQuery + `
		WHERE s.movie_id = $1
		ORDER BY s.start_time, sc.name
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := []domain.ShowtimeDetails{}

	for rows.Next() {
		details, err := scanShowtimeDetails(rows)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, *details)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (p *PostgresCatalogRepository) GetShowtimeDetails(ctx context.Context, showtimeID string) (*domain.ShowtimeDetails, error) {
	query := showtimeDetailsQuery + `WHERE s.id = $1`

	details, err := scanShowtimeDetails(p.db.QueryRow(ctx, query, showtimeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return details, nil
}

// SeedCatalog upserts movies, screens and showtime rows in one transaction.
// Seat inventories are written separately through an inventory store.
func (p *PostgresCatalogRepository) SeedCatalog(
	ctx context.Context,
	movies []domain.Movie,
	screens []domain.Screen,
	showtimes []domain.Showtime) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		for _, m := range movies {
			batch.Queue(`
				INSERT INTO movies (id, title, duration_min, language, genres, rating)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE
				SET title = EXCLUDED.title,
					duration_min = EXCLUDED.duration_min,
					language = EXCLUDED.language,
					genres = EXCLUDED.genres,
					rating = EXCLUDED.rating`,
				m.ID, m.Title, m.DurationMin, m.Language, m.Genres, toNumeric(m.Rating))
		}

		for _, sc := range screens {
			batch.Queue(`
				INSERT INTO screens (id, name, rows, cols, base_price)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
					rows = EXCLUDED.rows,
					cols = EXCLUDED.cols,
					base_price = EXCLUDED.base_price`,
				sc.ID, sc.Name, sc.Rows, sc.Cols, toNumeric(sc.BasePrice))
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}

		for _, st := range showtimes {
			if err := upsertShowtime(ctx, tx, st); err != nil {
				return err
			}
		}

		return nil
	})
}
