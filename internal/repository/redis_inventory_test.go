package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRedisInventoryStoreCommit(t *testing.T) {
	tests := []struct {
		name      string
		scriptErr error
		wantErr   error
	}{
		{
			name: "should commit when every seat is still available",
		},
		{
			name:      "should report taken seats when the script rejects the commit",
			scriptErr: mocks.RedisError("seats taken"),
			wantErr:   domain.ErrSeatsTaken,
		},
		{
			name:      "should mark connection failures as transient",
			scriptErr: &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")},
			wantErr:   domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockRedisClient)
			store := NewRedisInventoryStore(client)

			keysMatch := mock.MatchedBy(func(keys []string) bool {
				return len(keys) == 3 &&
					keys[0] == availableSeatsKey("st1") &&
					strings.HasPrefix(keys[1], "booking:{st1}:") &&
					keys[2] == showtimeBookingsKey("st1")
			})

			payloadMatch := mock.MatchedBy(func(payload string) bool {
				var b redisBooking
				if err := json.Unmarshal([]byte(payload), &b); err != nil {
					return false
				}
				return b.ShowtimeID == "st1" && cmp.Equal(b.Seats, []string{"A1", "A2"}) && b.TotalPrice.Equal(decimal.NewFromInt(300))
			})

			client.On("EvalSha", mock.Anything, commitBookingScript.Hash(), keysMatch, mock.Anything, payloadMatch, "A1", "A2").
				Return(redis.NewCmdResult("OK", tt.scriptErr))

			booking := &domain.Booking{
				ShowtimeID: "st1",
				Seats:      []string{"A1", "A2"},
				TotalPrice: decimal.NewFromInt(300),
				Status:     domain.BookingStatusConfirmed,
			}

			err := store.WithinTx(context.Background(), func(ctx context.Context, tx domain.InventoryTx) error {
				if err := tx.ReserveSeats(ctx, "st1", booking.Seats); err != nil {
					return err
				}
				return tx.InsertBooking(ctx, booking)
			})

			client.AssertExpectations(t)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, booking.ID)
			assert.False(t, booking.CreatedAt.IsZero())
		})
	}
}

func TestRedisInventoryStoreCommitSkipsEmptyUnitOfWork(t *testing.T) {
	client := new(mocks.MockRedisClient)
	store := NewRedisInventoryStore(client)

	err := store.WithinTx(context.Background(), func(ctx context.Context, tx domain.InventoryTx) error {
		return nil
	})

	require.NoError(t, err)
	client.AssertNotCalled(t, "EvalSha")
}

func TestRedisInventoryStoreGetShowtime(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	store := NewRedisInventoryStore(db)

	rmock.ExpectTxPipeline()
	rmock.ExpectHGetAll(showtimeKey("st1")).SetVal(map[string]string{
		"movie_id":     "m1",
		"screen_id":    "s1",
		"start_time":   "2025-06-01T18:00:00Z",
		"duration_min": "120",
	})
	rmock.ExpectLRange(showtimeSeatsKey("st1"), 0, -1).SetVal([]string{
		`{"id":"A1","category":"vip","price":"250"}`,
		`{"id":"A2","category":"vip","price":"250"}`,
		`{"id":"B1","category":"regular","price":"150"}`,
	})
	rmock.ExpectSMembers(availableSeatsKey("st1")).SetVal([]string{"B1", "A2"})
	rmock.ExpectTxPipelineExec()

	got, err := store.GetShowtime(context.Background(), "st1")
	require.NoError(t, err)

	want := &domain.Showtime{
		ID:        "st1",
		MovieID:   "m1",
		ScreenID:  "s1",
		StartTime: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Duration:  120,
		Seats: []domain.Seat{
			{ID: "A1", Category: domain.SeatCategoryVIP, Price: decimal.NewFromInt(250), Available: false},
			{ID: "A2", Category: domain.SeatCategoryVIP, Price: decimal.NewFromInt(250), Available: true},
			{ID: "B1", Category: domain.SeatCategoryRegular, Price: decimal.NewFromInt(150), Available: true},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetShowtime() mismatch (-want +got):\n%s", diff)
	}

	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestRedisInventoryStoreGetShowtimeNotFound(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	store := NewRedisInventoryStore(db)

	rmock.ExpectTxPipeline()
	rmock.ExpectHGetAll(showtimeKey("nope")).SetVal(map[string]string{})
	rmock.ExpectLRange(showtimeSeatsKey("nope"), 0, -1).SetVal([]string{})
	rmock.ExpectSMembers(availableSeatsKey("nope")).SetVal([]string{})
	rmock.ExpectTxPipelineExec()

	_, err := store.GetShowtime(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestRedisInventoryStoreGetBooking(t *testing.T) {
	payload := `{"id":"b1","showtimeId":"st1","seats":["A1"],"userEmail":"jane@example.com",` +
		`"totalPrice":"250","status":"confirmed","createdAt":"2025-06-01T12:00:00Z"}`

	tests := []struct {
		name    string
		setup   func(rmock redismock.ClientMock)
		want    *domain.Booking
		wantErr error
	}{
		{
			name: "should decode a stored booking",
			setup: func(rmock redismock.ClientMock) {
				rmock.ExpectGet(bookingKey("st1", "b1")).SetVal(payload)
			},
			want: &domain.Booking{
				ID:         "b1",
				ShowtimeID: "st1",
				Seats:      []string{"A1"},
				UserEmail:  ptr("jane@example.com"),
				TotalPrice: decimal.NewFromInt(250),
				Status:     domain.BookingStatusConfirmed,
				CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "should report a missing booking",
			setup: func(rmock redismock.ClientMock) {
				rmock.ExpectGet(bookingKey("st1", "b1")).RedisNil()
			},
			wantErr: domain.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, rmock := redismock.NewClientMock()
			store := NewRedisInventoryStore(db)
			tt.setup(rmock)

			got, err := store.GetBooking(context.Background(), "st1", "b1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("GetBooking() mismatch (-want +got):\n%s", diff)
				}
			}

			assert.NoError(t, rmock.ExpectationsWereMet())
		})
	}
}

func TestRedisInventoryStoreListBookingsByShowtime(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	store := NewRedisInventoryStore(db)

	rmock.ExpectLRange(showtimeBookingsKey("st1"), 0, -1).SetVal([]string{"b1", "b2"})
	rmock.ExpectMGet(bookingKey("st1", "b1"), bookingKey("st1", "b2")).SetVal([]interface{}{
		`{"id":"b1","showtimeId":"st1","seats":["A1","A2"],"totalPrice":"500","status":"confirmed","createdAt":"2025-06-01T12:00:00Z"}`,
		`{"id":"b2","showtimeId":"st1","seats":["B1"],"totalPrice":"150","status":"confirmed","createdAt":"2025-06-01T12:01:00Z"}`,
	})

	got, err := store.ListBookingsByShowtime(context.Background(), "st1")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"A1", "A2"}, got[0].Seats)
	assert.Equal(t, "b2", got[1].ID)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestRedisInventoryStoreSeedShowtimeRejectsDuplicateSeats(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	store := NewRedisInventoryStore(db)

	err := store.SeedShowtime(context.Background(), domain.Showtime{
		ID:    "st1",
		Seats: []domain.Seat{{ID: "A1"}, {ID: "A1"}},
	})

	assert.ErrorContains(t, err, "duplicate seat A1")
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func ptr[T any](v T) *T {
	return &v
}
