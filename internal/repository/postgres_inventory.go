package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

// PostgresInventoryStore keeps seat inventories in showtime_seats. A seat is
// reserved with a conditional update, so of two transactions racing for the
// same seat the second one blocks on the row lock and then matches nothing.
type PostgresInventoryStore struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresInventoryStore(db *pgxpool.Pool, lockTimeout time.Duration) *PostgresInventoryStore {
	return &PostgresInventoryStore{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

type postgresTx struct {
	tx pgx.Tx
}

func (p *PostgresInventoryStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.InventoryTx) error) error {

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if p.lockTimeout > 0 {
			_, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`,
				fmt.Sprintf("%dms", p.lockTimeout.Milliseconds()))
			if err != nil {
				return err
			}
		}

		return fn(ctx, &postgresTx{tx: tx})
	})

	return classifyPgError(err)
}

func (t *postgresTx) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	return getShowtime(ctx, t.tx, showtimeID)
}

func (t *postgresTx) ReserveSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	query := `
		UPDATE showtime_seats
		SET available = false
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND available
	`

	tag, err := t.tx.Exec(ctx, query, showtimeID, seatIDs)
	if err != nil {
		return err
	}

	if tag.RowsAffected() != int64(len(seatIDs)) {
		return domain.ErrSeatsTaken
	}

	return nil
}

func (t *postgresTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (showtime_id, seats, user_id, user_email, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`

	return t.tx.QueryRow(
		ctx,
		query,
		booking.ShowtimeID,
		booking.Seats,
		booking.UserID,
		booking.UserEmail,
		toNumeric(booking.TotalPrice),
		booking.Status).Scan(&booking.ID, &booking.CreatedAt)
}

func (p *PostgresInventoryStore) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	showtime, err := getShowtime(ctx, p.db, showtimeID)
	return showtime, classifyPgError(err)
}

func getShowtime(ctx context.Context, q querier, showtimeID string) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, screen_id, start_time, duration_min
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := q.QueryRow(ctx, query, showtimeID).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.ScreenID,
		&showtime.StartTime,
		&showtime.Duration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		SELECT seat_id, category, price, available
		FROM showtime_seats
		WHERE showtime_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtime.Seats = make([]domain.Seat, 0)

	for rows.Next() {
		var (
			seat  domain.Seat
			price pgtype.Numeric
		)

		err = rows.Scan(&seat.ID, &seat.Category, &price, &seat.Available)
		if err != nil {
			return nil, err
		}

		seat.Price = fromNumeric(price)
		showtime.Seats = append(showtime.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &showtime, nil
}

const bookingColumns = `id::text, showtime_id, seats, user_id, user_email, total_price, status, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		booking domain.Booking
		total   pgtype.Numeric
	)

	err := row.Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.Seats,
		&booking.UserID,
		&booking.UserEmail,
		&total,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.TotalPrice = fromNumeric(total)

	return &booking, nil
}

func (p *PostgresInventoryStore) GetBooking(ctx context.Context, showtimeID, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1::text::uuid AND showtime_id = $2
	`

	booking, err := scanBooking(p.db.QueryRow(ctx, query, bookingID, showtimeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, classifyPgError(err)
	}

	return booking, nil
}

func (p *PostgresInventoryStore) ListBookingsByShowtime(ctx context.Context, showtimeID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE showtime_id = $1
		ORDER BY created_at, id
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, classifyPgError(err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, classifyPgError(err)
	}

	return bookings, nil
}

// SeedShowtime upserts the showtime row and replaces its seat inventory and
// bookings. The showtime's movie and screen must already exist.
func (p *PostgresInventoryStore) SeedShowtime(ctx context.Context, showtime domain.Showtime) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := upsertShowtime(ctx, tx, showtime)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM bookings WHERE showtime_id = $1`, showtime.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM showtime_seats WHERE showtime_id = $1`, showtime.ID)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(showtime.Seats))
		for i, seat := range showtime.Seats {
			rows = append(rows, []any{
				showtime.ID,
				seat.ID,
				i,
				string(seat.Category),
				toNumeric(seat.Price),
				seat.Available,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"showtime_seats"},
			[]string{"showtime_id", "seat_id", "position", "category", "price", "available"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}

func upsertShowtime(ctx context.Context, q querier, showtime domain.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, screen_id, start_time, duration_min)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET movie_id = EXCLUDED.movie_id,
			screen_id = EXCLUDED.screen_id,
			start_time = EXCLUDED.start_time,
			duration_min = EXCLUDED.duration_min
	`

	_, err := q.Exec(ctx, query, showtime.ID, showtime.MovieID, showtime.ScreenID, showtime.StartTime, showtime.Duration)
	return err
}
