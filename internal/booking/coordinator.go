// Package booking commits seat reservations against an inventory store.
//
// A booking either flips every selected seat to unavailable and records the
// booking in the same unit of work, or leaves the inventory untouched and
// returns a *domain.BookingError describing why. Contention between
// concurrent bookings is resolved entirely by the store; the coordinator
// holds no locks and never retries.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/seating"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/showtime-booking/internal/booking"

type Coordinator struct {
	store   domain.InventoryTxRunner
	logger  *slog.Logger
	timeout time.Duration
	tracer  trace.Tracer
	metrics *metrics
}

// NewCoordinator returns a Coordinator that books against store. A positive
// timeout bounds each unit of work; when it expires the store aborts and
// rolls back.
func NewCoordinator(store domain.InventoryTxRunner, logger *slog.Logger, timeout time.Duration) *Coordinator {
	return &Coordinator{
		store:   store,
		logger:  logger,
		timeout: timeout,
		tracer:  otel.Tracer(instrumentationName),
		metrics: newMetrics(otel.Meter(instrumentationName), logger),
	}
}

// Book reserves seats for a showtime. seats is either an explicit list of seat
// IDs or a number of seats to pick with seating.Select. On success the
// returned booking carries the final seat list and the store-assigned ID.
// Every failure is a *domain.BookingError.
func (c *Coordinator) Book(
	ctx context.Context,
	showtimeID string,
	seats domain.SeatsRequest,
	requester domain.Requester) (*domain.Booking, error) {

	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "booking.Book",
		trace.WithAttributes(attribute.String("showtime.id", showtimeID)))
	defer span.End()

	booking, err := c.book(ctx, showtimeID, seats, requester)

	outcome := "confirmed"
	if err != nil {
		var bookingErr *domain.BookingError
		if errors.As(err, &bookingErr) {
			outcome = string(bookingErr.Kind)
		}

		span.SetStatus(codes.Error, outcome)
		span.RecordError(err)
	} else {
		span.SetAttributes(
			attribute.String("booking.id", booking.ID),
			attribute.Int("booking.seats", len(booking.Seats)),
		)
	}

	c.metrics.record(ctx, outcome, time.Since(start))

	return booking, err
}

func (c *Coordinator) book(
	ctx context.Context,
	showtimeID string,
	seats domain.SeatsRequest,
	requester domain.Requester) (*domain.Booking, error) {

	logger := c.logger.With("showtime_id", showtimeID)

	if showtimeID == "" {
		return nil, errShowtimeNotFound()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		booking  *domain.Booking
		targeted []string
	)

	err := c.store.WithinTx(ctx, func(ctx context.Context, tx domain.InventoryTx) error {
		showtime, err := tx.GetShowtime(ctx, showtimeID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return errShowtimeNotFound()
			}

			return fmt.Errorf("failed to read showtime: %w", err)
		}

		targeted, err = resolveSeats(seats, showtime.AvailableSeatIDs())
		if err != nil {
			return err
		}

		err = tx.ReserveSeats(ctx, showtime.ID, targeted)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			ShowtimeID: showtime.ID,
			Seats:      targeted,
			UserID:     requester.UserID,
			UserEmail:  requester.UserEmail,
			TotalPrice: showtime.TotalPrice(targeted),
			Status:     domain.BookingStatusConfirmed,
		}

		err = tx.InsertBooking(ctx, b)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		booking = b

		return nil
	})

	var bookingErr *domain.BookingError

	switch {
	case err == nil:
		logger.Info("booking confirmed", "booking_id", booking.ID, "seats", booking.Seats)
		return booking, nil

	case errors.As(err, &bookingErr):
		logger.Info("booking rejected", "kind", bookingErr.Kind, "reason", bookingErr.Message)
		return nil, bookingErr

	case errors.Is(err, domain.ErrSeatsTaken):
		logger.Warn("booking lost the race for its seats", "seats", targeted)
		return nil, errSeatsNoLongerAvailable(targeted)

	default:
		logger.Error("booking failed due to a store error", "error", err)
		return nil, errStore(err)
	}
}

// resolveSeats turns a request into the concrete seats to reserve, checked
// against the seats that were available when the showtime was read.
func resolveSeats(req domain.SeatsRequest, available []string) ([]string, error) {
	if count, ok := req.Count(); ok {
		if count <= 0 {
			return nil, errNoSeatsRequested()
		}

		selected, err := seating.Select(available, count)
		if err != nil {
			return nil, errNotEnoughSeats(count, len(available))
		}

		return selected, nil
	}

	ids, ok := req.IDs()
	if !ok {
		return nil, errInvalidSeatsFormat()
	}

	if len(ids) == 0 {
		return nil, errNoSeatsRequested()
	}

	isAvailable := make(map[string]bool, len(available))
	for _, id := range available {
		isAvailable[id] = true
	}

	seen := make(map[string]bool, len(ids))
	requested := make([]string, 0, len(ids))
	var missing []string

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		requested = append(requested, id)
		if !isAvailable[id] {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		return nil, errSeatsUnavailable(missing)
	}

	return requested, nil
}
