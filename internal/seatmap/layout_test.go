package seatmap

import (
	"testing"

	"stagepass/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() *Layout {
	return NewLayout(config.VenueConfig{DeluxeStartRow: 5, DeluxeEndRow: 9})
}

func TestVisualOrder(t *testing.T) {
	assert.Equal(t, []int{10, 8, 6, 4, 2, 1, 3, 5, 7, 9}, VisualOrder(10))
	assert.Equal(t, []int{8, 6, 4, 2, 1, 3, 5, 7, 9}, VisualOrder(9))
	assert.Equal(t, []int{2, 1}, VisualOrder(2))
	assert.Equal(t, []int{1}, VisualOrder(1))
	assert.Empty(t, VisualOrder(0))
}

func TestSeatCodeRoundTrip(t *testing.T) {
	code := FormatSeatCode(5, 7)
	assert.Equal(t, SeatCode("05-07"), code)

	row, seat, err := code.Parse()
	require.NoError(t, err)
	assert.Equal(t, 5, row)
	assert.Equal(t, 7, seat)

	_, _, err = SeatCode("banana").Parse()
	assert.Error(t, err)

	_, _, err = SeatCode("5-7").Parse()
	assert.Error(t, err)
}

func TestLayoutGeometry(t *testing.T) {
	l := testLayout()

	assert.Equal(t, 18, l.RowCount())
	assert.Equal(t, 34, l.SeatsInRow(1))
	assert.Equal(t, 35, l.SeatsInRow(2))
	assert.Equal(t, 34, l.SeatsInRow(15))
	assert.Equal(t, 35, l.SeatsInRow(16))
	assert.Equal(t, 30, l.SeatsInRow(17))
	assert.Equal(t, 25, l.SeatsInRow(18))
	assert.Equal(t, 0, l.SeatsInRow(19))
}

func TestZoneDerivation(t *testing.T) {
	l := testLayout()

	assert.Equal(t, ZoneStandard, l.ZoneForRow(4))
	assert.Equal(t, ZoneDeluxe, l.ZoneForRow(5))
	assert.Equal(t, ZoneDeluxe, l.ZoneForRow(9))
	assert.Equal(t, ZoneStandard, l.ZoneForRow(10))

	zone, err := l.ZoneFor(SeatCode("07-12"))
	require.NoError(t, err)
	assert.Equal(t, ZoneDeluxe, zone)
}

func TestBlockedSeats(t *testing.T) {
	l := testLayout()

	// House rows are fully blocked.
	assert.True(t, l.IsBlocked(FormatSeatCode(1, 1)))
	assert.True(t, l.IsBlocked(FormatSeatCode(1, 34)))
	assert.True(t, l.IsBlocked(FormatSeatCode(18, 25)))

	// Structural obstruction: seats 1-3 of rows 12 and 13 only.
	assert.True(t, l.IsBlocked(FormatSeatCode(12, 1)))
	assert.True(t, l.IsBlocked(FormatSeatCode(13, 3)))
	assert.False(t, l.IsBlocked(FormatSeatCode(12, 4)))
	assert.False(t, l.IsBlocked(FormatSeatCode(11, 1)))

	assert.False(t, l.IsBlocked(FormatSeatCode(7, 10)))
}

func TestContains(t *testing.T) {
	l := testLayout()

	assert.True(t, l.Contains(SeatCode("02-35")))
	assert.False(t, l.Contains(SeatCode("02-36")))
	assert.False(t, l.Contains(SeatCode("19-01")))
	assert.False(t, l.Contains(SeatCode("xx-01")))
}
