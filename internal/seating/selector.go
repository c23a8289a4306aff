// Package seating picks seats for a booking from a showtime's available seats.
package seating

import (
	"cmp"
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var ErrNotEnoughSeats = errors.New("not enough seats available")

var seatIDRgx = regexp.MustCompile(`^([A-Za-z]+)?\s*(\d+)$`)

type seat struct {
	id  string
	col int
}

// ParseSeatID splits a seat ID such as "A12" into its row letters and column
// number. IDs with no row letters belong to row "". ok is false when the ID
// does not have that shape.
func ParseSeatID(id string) (row string, col int, ok bool) {
	m := seatIDRgx.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return "", 0, false
	}

	col, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}

	return m[1], col, true
}

// Select picks count seats from available. It returns the first run of count
// consecutive columns found in a single row, checking rows in the order they
// first appear in available. When no row has such a run, it falls back to the
// first count IDs of available in their original order.
//
// IDs that ParseSeatID rejects are never part of a run but can still be
// returned by the fallback.
func Select(available []string, count int) ([]string, error) {
	if len(available) < count {
		return nil, ErrNotEnoughSeats
	}

	if count <= 0 {
		return []string{}, nil
	}

	var rowOrder []string
	rows := make(map[string][]seat)

	for _, id := range available {
		row, col, ok := ParseSeatID(id)
		if !ok {
			continue
		}

		if _, seen := rows[row]; !seen {
			rowOrder = append(rowOrder, row)
		}
		rows[row] = append(rows[row], seat{id: id, col: col})
	}

	for _, row := range rowOrder {
		if run, ok := contiguousRun(rows[row], count); ok {
			return run, nil
		}
	}

	return slices.Clone(available[:count]), nil
}

func contiguousRun(seats []seat, count int) ([]string, bool) {
	slices.SortStableFunc(seats, func(a, b seat) int {
		return cmp.Compare(a.col, b.col)
	})

	for start := 0; start+count <= len(seats); start++ {
		window := seats[start : start+count]

		if isContiguous(window) {
			run := make([]string, len(window))
			for i, s := range window {
				run[i] = s.id
			}

			return run, true
		}
	}

	return nil, false
}

func isContiguous(window []seat) bool {
	for i := 1; i < len(window); i++ {
		if window[i].col != window[i-1].col+1 {
			return false
		}
	}

	return true
}
