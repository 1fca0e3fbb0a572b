package cart

import (
	"time"

	"stagepass/internal/pricing"
)

// Cart is a shopper's in-progress selection, keyed by session id in Redis.
// Seats keep insertion order; each seat appears at most once.
type Cart struct {
	Seats     []string           `json:"seats"`
	Merch     []pricing.CartLine `json:"merch"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsEmpty reports whether the cart holds neither seats nor merchandise
func (c *Cart) IsEmpty() bool {
	return len(c.Seats) == 0 && len(c.Merch) == 0
}

// Handoff is the frozen result of a checkout. The booking commit consumes
// it instead of re-reading the live cart, so the price the shopper saw is
// the price that gets persisted.
type Handoff struct {
	SessionID  string              `json:"session_id"`
	Seats      []string            `json:"seats"`
	Merch      []pricing.CartLine  `json:"merch"`
	Tickets    pricing.TicketQuote `json:"tickets"`
	MerchQuote pricing.MerchQuote  `json:"merch_quote"`
	GrandTotal float64             `json:"grand_total"`
	CreatedAt  time.Time           `json:"created_at"`
}
