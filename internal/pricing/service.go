package pricing

import (
	"context"
	"time"

	"stagepass/internal/catalog"
	"stagepass/internal/seatmap"
)

// Quote is the priced summary of a whole order draft
type Quote struct {
	Tickets     TicketQuote `json:"tickets"`
	Merchandise MerchQuote  `json:"merchandise"`
	GrandTotal  float64     `json:"grand_total"`
}

// Service defines the contract for pricing operations
type Service interface {
	QuoteOrder(ctx context.Context, seats []seatmap.SeatCode, merch []CartLine, now time.Time) (Quote, error)
	IsEarlyBird(now time.Time) bool
}

type service struct {
	engine  *Engine
	catalog catalog.Service
}

// NewService creates a new pricing service instance
func NewService(engine *Engine, catalogService catalog.Service) Service {
	return &service{engine: engine, catalog: catalogService}
}

func (s *service) QuoteOrder(ctx context.Context, seats []seatmap.SeatCode, merch []CartLine, now time.Time) (Quote, error) {
	tickets, err := s.engine.PriceForSeats(seats, now)
	if err != nil {
		return Quote{}, err
	}

	var merchQuote MerchQuote
	if len(merch) > 0 {
		lookup, err := s.catalog.Lookup(ctx)
		if err != nil {
			return Quote{}, err
		}
		merchQuote, err = PriceForCart(merch, lookup)
		if err != nil {
			return Quote{}, err
		}
	}

	return Quote{
		Tickets:     tickets,
		Merchandise: merchQuote,
		GrandTotal:  tickets.GrandTotal + merchQuote.GrandTotal,
	}, nil
}

func (s *service) IsEarlyBird(now time.Time) bool {
	return s.engine.IsEarlyBird(now)
}
