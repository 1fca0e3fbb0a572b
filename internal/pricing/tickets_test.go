package pricing

import (
	"testing"
	"time"

	"stagepass/internal/seatmap"
	"stagepass/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	tz, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)
	cfg := config.PricingConfig{
		EarlyBirdCutoff:   time.Date(2025, 9, 18, 0, 0, 0, 0, tz),
		Timezone:          tz,
		DeluxeEarlyBird:   35,
		DeluxeStandard:    40,
		DeluxeBundle:      30,
		StandardEarlyBird: 18,
		StandardStandard:  20,
		StandardBundle:    15,
		BundleSize:        6,
	}
	layout := seatmap.NewLayout(config.VenueConfig{DeluxeStartRow: 5, DeluxeEndRow: 9})
	return NewEngine(cfg, layout)
}

func deluxeSeats(n int) []seatmap.SeatCode {
	seats := make([]seatmap.SeatCode, 0, n)
	for i := 0; i < n; i++ {
		seats = append(seats, seatmap.FormatSeatCode(5+i/30, 4+i%30))
	}
	return seats
}

func standardSeats(n int) []seatmap.SeatCode {
	seats := make([]seatmap.SeatCode, 0, n)
	for i := 0; i < n; i++ {
		seats = append(seats, seatmap.FormatSeatCode(10+i/30, 4+i%30))
	}
	return seats
}

func TestIsEarlyBird(t *testing.T) {
	engine := testEngine(t)
	tz := engine.cfg.Timezone

	assert.True(t, engine.IsEarlyBird(time.Date(2025, 9, 17, 23, 59, 59, 0, tz)))
	assert.False(t, engine.IsEarlyBird(time.Date(2025, 9, 18, 0, 0, 0, 0, tz)), "cutoff instant is already standard priced")
	assert.False(t, engine.IsEarlyBird(time.Date(2025, 10, 1, 12, 0, 0, 0, tz)))
}

func TestIsEarlyBirdUsesVenueTimezone(t *testing.T) {
	engine := testEngine(t)

	// 2025-09-17 20:00 UTC is already past midnight on the 18th in KL.
	assert.False(t, engine.IsEarlyBird(time.Date(2025, 9, 17, 20, 0, 0, 0, time.UTC)))
	assert.True(t, engine.IsEarlyBird(time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)))
}

func TestPriceForSeats(t *testing.T) {
	engine := testEngine(t)
	tz := engine.cfg.Timezone
	before := time.Date(2025, 9, 1, 12, 0, 0, 0, tz)
	after := time.Date(2025, 10, 1, 12, 0, 0, 0, tz)

	tests := []struct {
		name     string
		seats    []seatmap.SeatCode
		now      time.Time
		expected float64
	}{
		{"five deluxe early bird", deluxeSeats(5), before, 5 * 35},
		{"six deluxe bundles up", deluxeSeats(6), before, 6 * 30},
		{"seven deluxe bundle plus remainder", deluxeSeats(7), before, 6*30 + 35},
		{"seven deluxe after cutoff", deluxeSeats(7), after, 6*30 + 40},
		{"twelve deluxe two bundles", deluxeSeats(12), before, 12 * 30},
		{"five standard early bird", standardSeats(5), before, 5 * 18},
		{"six standard bundles up", standardSeats(6), after, 6 * 15},
		{"empty selection", nil, before, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.PriceForSeats(tt.seats, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, quote.GrandTotal)
		})
	}
}

func TestPriceForSeatsZonesBundleIndependently(t *testing.T) {
	engine := testEngine(t)
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, engine.cfg.Timezone)

	// 3 deluxe + 3 standard never form a bundle together.
	seats := append(deluxeSeats(3), standardSeats(3)...)
	quote, err := engine.PriceForSeats(seats, now)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.DeluxeCount)
	assert.Equal(t, 3, quote.StandardCount)
	assert.Equal(t, float64(3*35), quote.DeluxeTotal)
	assert.Equal(t, float64(3*18), quote.StandardTotal)
	assert.Equal(t, float64(3*35+3*18), quote.GrandTotal)
	assert.True(t, quote.EarlyBird)
}

func TestPriceForSeatsRejectsMalformedCode(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.PriceForSeats([]seatmap.SeatCode{"row5seat1"}, time.Now())
	assert.Error(t, err)
}
