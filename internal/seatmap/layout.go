package seatmap

import (
	"fmt"
	"sort"

	"stagepass/internal/shared/config"
)

// Zone is the ticket pricing tier a seat belongs to. It is derived from the
// row alone and never stored.
type Zone string

const (
	ZoneDeluxe   Zone = "DELUXE"
	ZoneStandard Zone = "STANDARD"
)

// SeatCode identifies a seat as "RR-SS" (2-digit row, 2-digit seat number).
// It is the ledger key and is immutable.
type SeatCode string

// FormatSeatCode builds a SeatCode from row and seat number
func FormatSeatCode(row, seat int) SeatCode {
	return SeatCode(fmt.Sprintf("%02d-%02d", row, seat))
}

// Parse splits a SeatCode into row and seat number
func (s SeatCode) Parse() (row, seat int, err error) {
	if _, err := fmt.Sscanf(string(s), "%02d-%02d", &row, &seat); err != nil {
		return 0, 0, fmt.Errorf("malformed seat code %q: %w", s, err)
	}
	if len(s) != 5 || s[2] != '-' {
		return 0, 0, fmt.Errorf("malformed seat code %q", s)
	}
	return row, seat, nil
}

// Layout is the static venue geometry: row count, per-row seat counts, the
// deluxe row band, and permanently blocked seats.
type Layout struct {
	seatCounts     map[int]int
	blocked        map[SeatCode]struct{}
	deluxeStartRow int
	deluxeEndRow   int
}

const (
	firstRow = 1
	lastRow  = 18
)

// NewLayout builds the venue layout. The deluxe band comes from config; the
// row geometry and the blocked seats are fixed properties of the hall.
func NewLayout(venue config.VenueConfig) *Layout {
	counts := make(map[int]int, lastRow)
	for row := firstRow; row <= lastRow; row++ {
		switch {
		case row == 17:
			counts[row] = 30
		case row == 18:
			counts[row] = 25
		case row%2 == 0:
			counts[row] = 35
		default:
			counts[row] = 34
		}
	}

	blocked := make(map[SeatCode]struct{})
	// Rows 1 and 18 are house/VIP rows, never sold.
	for _, row := range []int{firstRow, lastRow} {
		for seat := 1; seat <= counts[row]; seat++ {
			blocked[FormatSeatCode(row, seat)] = struct{}{}
		}
	}
	// Seats 1-3 of rows 12 and 13 sit behind a structural obstruction.
	for _, row := range []int{12, 13} {
		for seat := 1; seat <= 3; seat++ {
			blocked[FormatSeatCode(row, seat)] = struct{}{}
		}
	}

	return &Layout{
		seatCounts:     counts,
		blocked:        blocked,
		deluxeStartRow: venue.DeluxeStartRow,
		deluxeEndRow:   venue.DeluxeEndRow,
	}
}

// RowCount returns the number of rows in the hall
func (l *Layout) RowCount() int {
	return lastRow
}

// SeatsInRow returns the seat count of a row, or 0 for an unknown row
func (l *Layout) SeatsInRow(row int) int {
	return l.seatCounts[row]
}

// ZoneForRow derives the pricing zone from a row number
func (l *Layout) ZoneForRow(row int) Zone {
	if row >= l.deluxeStartRow && row <= l.deluxeEndRow {
		return ZoneDeluxe
	}
	return ZoneStandard
}

// ZoneFor derives the pricing zone of a seat code
func (l *Layout) ZoneFor(code SeatCode) (Zone, error) {
	row, _, err := code.Parse()
	if err != nil {
		return "", err
	}
	return l.ZoneForRow(row), nil
}

// IsBlocked reports whether a seat is permanently unsellable
func (l *Layout) IsBlocked(code SeatCode) bool {
	_, ok := l.blocked[code]
	return ok
}

// Contains reports whether a seat code refers to a real seat in the hall
func (l *Layout) Contains(code SeatCode) bool {
	row, seat, err := code.Parse()
	if err != nil {
		return false
	}
	return seat >= 1 && seat <= l.seatCounts[row]
}

// BlockedSeats returns every permanently blocked seat, sorted
func (l *Layout) BlockedSeats() []SeatCode {
	out := make([]SeatCode, 0, len(l.blocked))
	for code := range l.blocked {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VisualOrder reconstructs the physical left-to-right seat ordering for a
// row of the given size. Seats are numbered from a center aisle: even
// numbers run down one side, odd numbers up the other, so a row of 10
// renders as 10,8,6,4,2,1,3,5,7,9.
func VisualOrder(count int) []int {
	order := make([]int, 0, count)
	for seat := count; seat >= 1; seat-- {
		if seat%2 == 0 {
			order = append(order, seat)
		}
	}
	for seat := 1; seat <= count; seat++ {
		if seat%2 == 1 {
			order = append(order, seat)
		}
	}
	return order
}
