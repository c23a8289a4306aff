package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Every key of a showtime carries the showtime ID as a hash tag so that the
// commit script only touches keys of one cluster slot.
func showtimeKey(showtimeID string) string {
	return fmt.Sprintf("showtime:{%s}", showtimeID)
}

func showtimeSeatsKey(showtimeID string) string {
	return fmt.Sprintf("showtime:{%s}:seats", showtimeID)
}

func availableSeatsKey(showtimeID string) string {
	return fmt.Sprintf("showtime:{%s}:available", showtimeID)
}

func showtimeBookingsKey(showtimeID string) string {
	return fmt.Sprintf("showtime:{%s}:bookings", showtimeID)
}

func bookingKey(showtimeID, bookingID string) string {
	return fmt.Sprintf("booking:{%s}:%s", showtimeID, bookingID)
}

const errSeatsTakenPrefix = "seats taken"

var commitBookingScript = redis.NewScript(`
    -- KEYS = [available seat set, booking key, showtime booking index]
    -- ARGV = [bookingID, booking JSON, seat IDs...]

    for i=3, #ARGV do
        if redis.call("SISMEMBER", KEYS[1], ARGV[i]) == 0 then
            return {err = "seats taken"}
        end
    end

    for i=3, #ARGV do
        redis.call("SREM", KEYS[1], ARGV[i])
    end

    redis.call("SET", KEYS[2], ARGV[2])
    redis.call("RPUSH", KEYS[3], ARGV[1])

    return "OK"
`)

type redisSeat struct {
	ID       string              `json:"id"`
	Category domain.SeatCategory `json:"category"`
	Price    decimal.Decimal     `json:"price"`
}

type redisBooking struct {
	ID         string               `json:"id"`
	ShowtimeID string               `json:"showtimeId"`
	Seats      []string             `json:"seats"`
	UserID     *string              `json:"userId,omitempty"`
	UserEmail  *string              `json:"userEmail,omitempty"`
	TotalPrice decimal.Decimal      `json:"totalPrice"`
	Status     domain.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// RedisInventoryStore keeps seat inventories in Redis. Reads happen directly;
// the seat reservation and booking insert of a unit of work are staged and
// applied by one Lua script that re-checks availability, so either every
// write lands or none does.
type RedisInventoryStore struct {
	client redis.UniversalClient
}

func NewRedisInventoryStore(client redis.UniversalClient) *RedisInventoryStore {
	return &RedisInventoryStore{
		client: client,
	}
}

type redisTx struct {
	store    *RedisInventoryStore
	reserved []stagedReservation
	bookings []*domain.Booking
}

func (r *RedisInventoryStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.InventoryTx) error) error {

	tx := &redisTx{store: r}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return classifyRedisError(r.commit(ctx, tx))
}

func (r *RedisInventoryStore) commit(ctx context.Context, tx *redisTx) error {
	if len(tx.reserved) == 0 && len(tx.bookings) == 0 {
		return nil
	}

	if len(tx.reserved) != 1 || len(tx.bookings) != 1 {
		return fmt.Errorf("redis unit of work supports exactly one reservation and one booking, got %d and %d",
			len(tx.reserved), len(tx.bookings))
	}

	reservation, booking := tx.reserved[0], tx.bookings[0]
	if reservation.showtimeID != booking.ShowtimeID {
		return errors.New("reservation and booking belong to different showtimes")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	booking.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(redisBooking{
		ID:         booking.ID,
		ShowtimeID: booking.ShowtimeID,
		Seats:      booking.Seats,
		UserID:     booking.UserID,
		UserEmail:  booking.UserEmail,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	})
	if err != nil {
		return err
	}

	keys := []string{
		availableSeatsKey(booking.ShowtimeID),
		bookingKey(booking.ShowtimeID, booking.ID),
		showtimeBookingsKey(booking.ShowtimeID),
	}

	args := make([]any, 0, len(reservation.seatIDs)+2)
	args = append(args, booking.ID, string(payload))
	for _, id := range reservation.seatIDs {
		args = append(args, id)
	}

	err = commitBookingScript.Run(ctx, r.client, keys, args...).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, errSeatsTakenPrefix) {
			return domain.ErrSeatsTaken
		}

		return err
	}

	return nil
}

func (tx *redisTx) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	return tx.store.GetShowtime(ctx, showtimeID)
}

func (tx *redisTx) ReserveSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	tx.reserved = append(tx.reserved, stagedReservation{
		showtimeID: showtimeID,
		seatIDs:    slices.Clone(seatIDs),
	})

	return nil
}

func (tx *redisTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.NewString()
	tx.bookings = append(tx.bookings, booking)

	return nil
}

// GetShowtime reads the showtime metadata, seat list and available set in one
// MULTI/EXEC block so they reflect the same point in time.
func (r *RedisInventoryStore) GetShowtime(ctx context.Context, showtimeID string) (*domain.Showtime, error) {
	var (
		meta      *redis.MapStringStringCmd
		seats     *redis.StringSliceCmd
		available *redis.StringSliceCmd
	)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		meta = pipe.HGetAll(ctx, showtimeKey(showtimeID))
		seats = pipe.LRange(ctx, showtimeSeatsKey(showtimeID), 0, -1)
		available = pipe.SMembers(ctx, availableSeatsKey(showtimeID))
		return nil
	})
	if err != nil {
		return nil, classifyRedisError(err)
	}

	fields := meta.Val()
	if len(fields) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	showtime, err := decodeShowtimeHash(showtimeID, fields)
	if err != nil {
		return nil, err
	}

	isAvailable := make(map[string]bool, len(available.Val()))
	for _, id := range available.Val() {
		isAvailable[id] = true
	}

	showtime.Seats = make([]domain.Seat, 0, len(seats.Val()))
	for _, raw := range seats.Val() {
		var seat redisSeat
		if err := json.Unmarshal([]byte(raw), &seat); err != nil {
			return nil, fmt.Errorf("showtime %s: malformed seat entry: %w", showtimeID, err)
		}

		showtime.Seats = append(showtime.Seats, domain.Seat{
			ID:        seat.ID,
			Category:  seat.Category,
			Price:     seat.Price,
			Available: isAvailable[seat.ID],
		})
	}

	return showtime, nil
}

func decodeShowtimeHash(showtimeID string, fields map[string]string) (*domain.Showtime, error) {
	start, err := time.Parse(time.RFC3339, fields["start_time"])
	if err != nil {
		return nil, fmt.Errorf("showtime %s: malformed start_time: %w", showtimeID, err)
	}

	duration, err := strconv.Atoi(fields["duration_min"])
	if err != nil {
		return nil, fmt.Errorf("showtime %s: malformed duration_min: %w", showtimeID, err)
	}

	return &domain.Showtime{
		ID:        showtimeID,
		MovieID:   fields["movie_id"],
		ScreenID:  fields["screen_id"],
		StartTime: start,
		Duration:  duration,
	}, nil
}

func (r *RedisInventoryStore) GetBooking(ctx context.Context, showtimeID, bookingID string) (*domain.Booking, error) {
	raw, err := r.client.Get(ctx, bookingKey(showtimeID, bookingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, classifyRedisError(err)
	}

	return decodeBooking(raw)
}

func (r *RedisInventoryStore) ListBookingsByShowtime(ctx context.Context, showtimeID string) ([]domain.Booking, error) {
	ids, err := r.client.LRange(ctx, showtimeBookingsKey(showtimeID), 0, -1).Result()
	if err != nil {
		return nil, classifyRedisError(err)
	}

	bookings := make([]domain.Booking, 0, len(ids))
	if len(ids) == 0 {
		return bookings, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookingKey(showtimeID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, classifyRedisError(err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("showtime %s: booking %s is indexed but missing", showtimeID, ids[i])
		}

		booking, err := decodeBooking([]byte(raw))
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, nil
}

func decodeBooking(raw []byte) (*domain.Booking, error) {
	var b redisBooking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("malformed booking entry: %w", err)
	}

	return &domain.Booking{
		ID:         b.ID,
		ShowtimeID: b.ShowtimeID,
		Seats:      b.Seats,
		UserID:     b.UserID,
		UserEmail:  b.UserEmail,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}, nil
}

// SeedShowtime replaces the showtime's inventory and drops its bookings.
func (r *RedisInventoryStore) SeedShowtime(ctx context.Context, showtime domain.Showtime) error {
	seen := make(map[string]bool, len(showtime.Seats))
	seats := make([]any, 0, len(showtime.Seats))
	var available []any

	for _, seat := range showtime.Seats {
		if seen[seat.ID] {
			return fmt.Errorf("showtime %s: duplicate seat %s", showtime.ID, seat.ID)
		}
		seen[seat.ID] = true

		raw, err := json.Marshal(redisSeat{ID: seat.ID, Category: seat.Category, Price: seat.Price})
		if err != nil {
			return err
		}

		seats = append(seats, string(raw))
		if seat.Available {
			available = append(available, seat.ID)
		}
	}

	bookingIDs, err := r.client.LRange(ctx, showtimeBookingsKey(showtime.ID), 0, -1).Result()
	if err != nil {
		return classifyRedisError(err)
	}

	stale := []string{
		showtimeKey(showtime.ID),
		showtimeSeatsKey(showtime.ID),
		availableSeatsKey(showtime.ID),
		showtimeBookingsKey(showtime.ID),
	}
	for _, id := range bookingIDs {
		stale = append(stale, bookingKey(showtime.ID, id))
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, stale...)
		pipe.HSet(ctx, showtimeKey(showtime.ID),
			"movie_id", showtime.MovieID,
			"screen_id", showtime.ScreenID,
			"start_time", showtime.StartTime.UTC().Format(time.RFC3339),
			"duration_min", strconv.Itoa(showtime.Duration),
		)
		if len(seats) > 0 {
			pipe.RPush(ctx, showtimeSeatsKey(showtime.ID), seats...)
		}
		if len(available) > 0 {
			pipe.SAdd(ctx, availableSeatsKey(showtime.ID), available...)
		}
		return nil
	})

	return classifyRedisError(err)
}

// classifyRedisError marks network faults and retryable server states with
// domain.ErrStoreUnavailable.
func classifyRedisError(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr),
		redis.HasErrorPrefix(err, "LOADING"),
		redis.HasErrorPrefix(err, "BUSY"),
		redis.HasErrorPrefix(err, "TRYAGAIN"),
		redis.HasErrorPrefix(err, "CLUSTERDOWN"):
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return err
}
