package pricing

import (
	"time"

	"stagepass/internal/seatmap"
	"stagepass/internal/shared/config"
)

// TicketQuote is the priced breakdown of a seat selection
type TicketQuote struct {
	DeluxeCount   int     `json:"deluxe_count"`
	StandardCount int     `json:"standard_count"`
	DeluxeTotal   float64 `json:"deluxe_total"`
	StandardTotal float64 `json:"standard_total"`
	GrandTotal    float64 `json:"grand_total"`
	EarlyBird     bool    `json:"early_bird"`
}

// Engine prices tickets and merchandise under the venue's rules. It is
// pure: all time dependence enters through the `now` arguments.
type Engine struct {
	cfg    config.PricingConfig
	layout *seatmap.Layout
}

// NewEngine creates a pricing engine for the given venue rules
func NewEngine(cfg config.PricingConfig, layout *seatmap.Layout) *Engine {
	return &Engine{cfg: cfg, layout: layout}
}

// IsEarlyBird reports whether the instant falls before the promotional
// cutoff. The comparison is inclusive-exclusive (now < cutoff) and happens
// in the venue's fixed civil timezone, never the shopper's.
func (e *Engine) IsEarlyBird(now time.Time) bool {
	return now.In(e.cfg.Timezone).Before(e.cfg.EarlyBirdCutoff)
}

// PriceForSeats computes the per-zone and grand totals for a selection.
// Each zone's count splits into complete bundles of BundleSize seats at the
// bundle unit price (which supersedes early-bird) and a remainder at the
// applicable two-tier unit price.
func (e *Engine) PriceForSeats(selected []seatmap.SeatCode, now time.Time) (TicketQuote, error) {
	quote := TicketQuote{EarlyBird: e.IsEarlyBird(now)}

	for _, code := range selected {
		zone, err := e.layout.ZoneFor(code)
		if err != nil {
			return TicketQuote{}, err
		}
		if zone == seatmap.ZoneDeluxe {
			quote.DeluxeCount++
		} else {
			quote.StandardCount++
		}
	}

	deluxeUnit, standardUnit := e.cfg.DeluxeStandard, e.cfg.StandardStandard
	if quote.EarlyBird {
		deluxeUnit, standardUnit = e.cfg.DeluxeEarlyBird, e.cfg.StandardEarlyBird
	}

	quote.DeluxeTotal = e.zoneTotal(quote.DeluxeCount, deluxeUnit, e.cfg.DeluxeBundle)
	quote.StandardTotal = e.zoneTotal(quote.StandardCount, standardUnit, e.cfg.StandardBundle)
	quote.GrandTotal = quote.DeluxeTotal + quote.StandardTotal

	return quote, nil
}

func (e *Engine) zoneTotal(count int, unit, bundleUnit float64) float64 {
	if count == 0 {
		return 0
	}
	bundled := (count / e.cfg.BundleSize) * e.cfg.BundleSize
	remainder := count % e.cfg.BundleSize
	return float64(bundled)*bundleUnit + float64(remainder)*unit
}
