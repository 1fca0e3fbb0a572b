package seatmap

import "sort"

// ValidationResult reports every row whose occupancy would strand an
// unsellable seat, not just the first, so the caller can surface all
// problems at once.
type ValidationResult struct {
	Valid       bool  `json:"valid"`
	InvalidRows []int `json:"invalid_rows,omitempty"`
}

// IsRowValid checks one row's occupancy against the venue's no-orphan rule.
// The row is scanned in visual order; a maximal run of empty seats with
// occupied seats on both sides must have even length, because an odd
// interior gap strands at least one seat no pair can ever fill. Runs
// touching either end of the row are always acceptable.
func (l *Layout) IsRowValid(row int, occupied map[int]bool) bool {
	return scanVisualOrder(VisualOrder(l.seatCounts[row]), occupied)
}

// scanVisualOrder walks one physical row ordering and applies the parity
// rule to every interior empty run
func scanVisualOrder(order []int, occupied map[int]bool) bool {
	runStart := -1 // index in visual order where the current empty run began
	sawOccupied := false
	for i, seat := range order {
		if occupied[seat] {
			if runStart >= 0 && sawOccupied {
				// Interior run: bounded by occupied seats on both sides.
				if (i-runStart)%2 == 1 {
					return false
				}
			}
			runStart = -1
			sawOccupied = true
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	// A trailing run touches the row edge and is always allowed.
	return true
}

// ValidateSelection evaluates a shopper's selection against the current
// reservations. Occupancy per row is the union of reserved seats, the
// shopper's own selection, and permanently blocked seats. It returns a
// structured result and reserves errors for malformed seat codes.
func (l *Layout) ValidateSelection(selected, reserved []SeatCode) (ValidationResult, error) {
	occupiedByRow := make(map[int]map[int]bool)
	mark := func(code SeatCode) error {
		row, seat, err := code.Parse()
		if err != nil {
			return err
		}
		if occupiedByRow[row] == nil {
			occupiedByRow[row] = make(map[int]bool)
		}
		occupiedByRow[row][seat] = true
		return nil
	}

	selectedRows := make(map[int]bool)
	for _, code := range selected {
		row, _, err := code.Parse()
		if err != nil {
			return ValidationResult{}, err
		}
		selectedRows[row] = true
		if err := mark(code); err != nil {
			return ValidationResult{}, err
		}
	}
	for _, code := range reserved {
		if err := mark(code); err != nil {
			return ValidationResult{}, err
		}
	}
	for code := range l.blocked {
		row, seat, _ := code.Parse()
		if occupiedByRow[row] == nil {
			occupiedByRow[row] = make(map[int]bool)
		}
		occupiedByRow[row][seat] = true
	}

	// Only rows the shopper touched can be newly invalidated by this
	// selection; rows they did not touch are someone else's problem.
	var invalid []int
	for row := range selectedRows {
		if !l.IsRowValid(row, occupiedByRow[row]) {
			invalid = append(invalid, row)
		}
	}
	sort.Ints(invalid)

	return ValidationResult{Valid: len(invalid) == 0, InvalidRows: invalid}, nil
}
