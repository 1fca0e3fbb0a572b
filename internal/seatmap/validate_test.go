package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupy(seats ...int) map[int]bool {
	m := make(map[int]bool, len(seats))
	for _, s := range seats {
		m[s] = true
	}
	return m
}

func TestScanVisualOrder(t *testing.T) {
	// Row of 10 renders as 10,8,6,4,2,1,3,5,7,9.
	order := VisualOrder(10)
	require.Equal(t, []int{10, 8, 6, 4, 2, 1, 3, 5, 7, 9}, order)

	tests := []struct {
		name     string
		occupied map[int]bool
		want     bool
	}{
		{"empty row", occupy(), true},
		{"full row", occupy(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), true},
		// 10 and 1 bound the interior run {8,6,4,2}: length 4, even.
		{"interior gap of four", occupy(10, 1), true},
		// 10 and 6 bound {8}: a single orphan.
		{"interior gap of one", occupy(10, 6), false},
		// 10 and 2 bound {8,6,4}: length 3, odd.
		{"interior gap of three", occupy(10, 2), false},
		// 10 and 4 bound {8,6}: length 2, even.
		{"interior gap of two", occupy(10, 4), true},
		// Leading run 10,8 touches the row edge: any length allowed.
		{"edge gap of two", occupy(6), true},
		// Trailing run of odd length touches the other edge.
		{"edge gap of three", occupy(10, 8, 6, 4, 2, 1, 3), true},
		// Two interior runs, the second one odd: 2..3 gap {1} after 4.
		{"second interior gap odd", occupy(10, 4, 3), false},
		{"adjacent occupied seats", occupy(10, 8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanVisualOrder(order, tt.occupied))
		})
	}
}

func TestIsRowValidUsesRowGeometry(t *testing.T) {
	l := testLayout()

	// Row 17 has 30 seats: visual order 30,28,...,2,1,3,...,29.
	// Occupying 30 and 26 leaves the single orphan 28 between them.
	assert.False(t, l.IsRowValid(17, occupy(30, 26)))
	// Occupying 30 and 24 leaves {28,26}: even, fine.
	assert.True(t, l.IsRowValid(17, occupy(30, 24)))
}

func TestValidateSelection(t *testing.T) {
	l := testLayout()

	t.Run("valid selection across rows", func(t *testing.T) {
		res, err := l.ValidateSelection(
			[]SeatCode{"10-34", "10-32", "11-33"},
			nil,
		)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.InvalidRows)
	})

	t.Run("reports every offending row", func(t *testing.T) {
		// In rows 10 and 11 alike, picking the two outermost even seats
		// leaves a single orphan between them.
		res, err := l.ValidateSelection(
			[]SeatCode{"10-34", "10-30", "11-34", "11-30"},
			nil,
		)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, []int{10, 11}, res.InvalidRows)
	})

	t.Run("reserved seats count as occupied", func(t *testing.T) {
		// 10-34 alone is fine, but a reservation on 10-30 turns 10-32
		// into an orphan.
		res, err := l.ValidateSelection(
			[]SeatCode{"10-34"},
			[]SeatCode{"10-30"},
		)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, []int{10}, res.InvalidRows)
	})

	t.Run("blocked seats count as occupied", func(t *testing.T) {
		// Row 12 seats 1-3 are blocked; visual order ends ...,1,3,5,...
		// Selecting 12-05 leaves no gap against the blocked block, while
		// selecting 12-07 strands seat 5 between blocked 3 and chosen 7.
		res, err := l.ValidateSelection([]SeatCode{"12-05"}, nil)
		require.NoError(t, err)
		assert.True(t, res.Valid)

		res, err = l.ValidateSelection([]SeatCode{"12-07"}, nil)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, []int{12}, res.InvalidRows)
	})

	t.Run("untouched rows are not judged", func(t *testing.T) {
		// An odd gap that exists purely between other shoppers'
		// reservations must not invalidate this selection.
		res, err := l.ValidateSelection(
			[]SeatCode{"14-02"},
			[]SeatCode{"15-34", "15-30"},
		)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("malformed seat code", func(t *testing.T) {
		_, err := l.ValidateSelection([]SeatCode{"nope"}, nil)
		assert.Error(t, err)
	})
}
