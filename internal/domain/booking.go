package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const BookingStatusConfirmed BookingStatus = "confirmed"

// Booking is the immutable record of seats reserved for a showtime. Its seats
// were flipped to unavailable in the same unit of work that created it.
type Booking struct {
	ID         string
	ShowtimeID string
	Seats      []string
	UserID     *string
	UserEmail  *string
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
}

type Requester struct {
	UserID    *string
	UserEmail *string
}

type seatsRequestKind int

const (
	seatsRequestInvalid seatsRequestKind = iota
	seatsRequestIDs
	seatsRequestCount
)

// SeatsRequest is either an explicit list of seat IDs or a number of seats to
// pick. The zero value is a request of unknown shape.
type SeatsRequest struct {
	kind  seatsRequestKind
	ids   []string
	count int
	raw   json.RawMessage
}

func SeatIDs(ids ...string) SeatsRequest {
	return SeatsRequest{kind: seatsRequestIDs, ids: ids}
}

func SeatCount(n int) SeatsRequest {
	return SeatsRequest{kind: seatsRequestCount, count: n}
}

func (r SeatsRequest) IDs() ([]string, bool) {
	return r.ids, r.kind == seatsRequestIDs
}

func (r SeatsRequest) Count() (int, bool) {
	return r.count, r.kind == seatsRequestCount
}

func (r SeatsRequest) Valid() bool {
	return r.kind != seatsRequestInvalid
}

// ParseSeatsRequest decodes the "seats" value of a booking request. Arrays
// become explicit ID lists with entries coerced to strings, integers become
// counts. A missing value, null or "" is an empty ID list. Anything else
// yields an invalid request that still remembers the raw input.
func ParseSeatsRequest(raw []byte) SeatsRequest {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return SeatIDs()
	}

	invalid := SeatsRequest{raw: append(json.RawMessage(nil), trimmed...)}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '[':
		var entries []any
		if err := dec.Decode(&entries); err != nil {
			return invalid
		}

		ids := make([]string, 0, len(entries))
		for _, entry := range entries {
			switch v := entry.(type) {
			case string:
				ids = append(ids, v)
			case json.Number:
				ids = append(ids, v.String())
			default:
				return invalid
			}
		}

		return SeatIDs(ids...)

	case '"', '{':
		return invalid

	default:
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return invalid
		}

		count, err := strconv.Atoi(n.String())
		if err != nil {
			return invalid
		}

		return SeatCount(count)
	}
}

func (r SeatsRequest) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case seatsRequestIDs:
		ids := r.ids
		if ids == nil {
			ids = []string{}
		}
		return json.Marshal(ids)
	case seatsRequestCount:
		return json.Marshal(r.count)
	default:
		if len(r.raw) == 0 {
			return []byte("null"), nil
		}
		return r.raw, nil
	}
}

func (r *SeatsRequest) UnmarshalJSON(b []byte) error {
	*r = ParseSeatsRequest(b)
	return nil
}
