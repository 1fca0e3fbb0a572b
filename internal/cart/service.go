package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagepass/internal/catalog"
	"stagepass/internal/pricing"
	"stagepass/internal/seatmap"
	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
)

// Service defines the contract for cart session operations
type Service interface {
	GetCart(ctx context.Context, sessionID string) (Cart, error)
	ToggleSeat(ctx context.Context, sessionID, seat string) (Cart, error)
	SetMerchLine(ctx context.Context, sessionID string, line pricing.CartLine) (Cart, error)
	Clear(ctx context.Context, sessionID string) error

	// Checkout freezes the cart into a priced handoff for the booking
	// commit. The live cart stays untouched so the shopper can go back.
	Checkout(ctx context.Context, sessionID string) (Handoff, error)

	// GetHandoff retrieves a previously frozen checkout, or a not_found
	// error when the session never checked out or the handoff expired.
	GetHandoff(ctx context.Context, sessionID string) (Handoff, error)
}

type service struct {
	cfg     config.RedisConfig
	cache   cache.Service
	seatmap seatmap.Service
	pricing pricing.Service
	catalog catalog.Service
}

// NewService creates a new cart service instance
func NewService(cfg config.RedisConfig, cacheService cache.Service, seatmapService seatmap.Service, pricingService pricing.Service, catalogService catalog.Service) Service {
	return &service{
		cfg:     cfg,
		cache:   cacheService,
		seatmap: seatmapService,
		pricing: pricingService,
		catalog: catalogService,
	}
}

func (s *service) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	var c Cart
	err := s.cache.Get(ctx, constants.BuildCartSessionKey(sessionID), &c)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return Cart{}, nil
		}
		return Cart{}, apperr.Wrap(apperr.KindUpstream, "failed to load cart session", err)
	}
	return c, nil
}

func (s *service) saveCart(ctx context.Context, sessionID string, c Cart) error {
	c.UpdatedAt = time.Now()
	if err := s.cache.Set(ctx, constants.BuildCartSessionKey(sessionID), c, s.cfg.SessionTTL); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to save cart session", err)
	}
	return nil
}

func (s *service) ToggleSeat(ctx context.Context, sessionID, seat string) (Cart, error) {
	code := seatmap.SeatCode(seat)
	layout := s.seatmap.Layout()
	if !layout.Contains(code) {
		return Cart{}, apperr.New(apperr.KindValidation, fmt.Sprintf("seat %s does not exist", seat))
	}
	if layout.IsBlocked(code) {
		return Cart{}, apperr.New(apperr.KindValidation, fmt.Sprintf("seat %s is not sellable", seat))
	}

	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	removed := false
	for i, existing := range c.Seats {
		if existing == seat {
			c.Seats = append(c.Seats[:i], c.Seats[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		c.Seats = append(c.Seats, seat)
	}

	if err := s.saveCart(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *service) SetMerchLine(ctx context.Context, sessionID string, line pricing.CartLine) (Cart, error) {
	if line.Quantity < 0 {
		return Cart{}, apperr.New(apperr.KindValidation, "quantity must not be negative")
	}

	lookup, err := s.catalog.Lookup(ctx)
	if err != nil {
		return Cart{}, err
	}
	product, ok := lookup.Product(line.ProductID)
	if !ok {
		return Cart{}, apperr.New(apperr.KindValidation, fmt.Sprintf("unknown product %s", line.ProductID))
	}
	if product.HasVariants() {
		if _, ok := product.VariantByID(line.VariantID); !ok {
			return Cart{}, apperr.New(apperr.KindValidation,
				fmt.Sprintf("unknown variant %q of product %s", line.VariantID, line.ProductID))
		}
	} else if line.VariantID != "" {
		return Cart{}, apperr.New(apperr.KindValidation, fmt.Sprintf("product %s has no variants", line.ProductID))
	}

	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	// Quantity zero removes the line.
	idx := -1
	for i, existing := range c.Merch {
		if existing.ProductID == line.ProductID && existing.VariantID == line.VariantID {
			idx = i
			break
		}
	}
	switch {
	case line.Quantity == 0 && idx >= 0:
		c.Merch = append(c.Merch[:idx], c.Merch[idx+1:]...)
	case line.Quantity > 0 && idx >= 0:
		c.Merch[idx].Quantity = line.Quantity
	case line.Quantity > 0:
		c.Merch = append(c.Merch, line)
	}

	if err := s.saveCart(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, constants.BuildCartSessionKey(sessionID)); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to clear cart session", err)
	}
	if err := s.cache.Delete(ctx, constants.BuildCheckoutHandoffKey(sessionID)); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to clear checkout handoff", err)
	}
	return nil
}

func (s *service) Checkout(ctx context.Context, sessionID string) (Handoff, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return Handoff{}, err
	}
	if c.IsEmpty() {
		return Handoff{}, apperr.New(apperr.KindValidation, "cart is empty")
	}

	seats := make([]seatmap.SeatCode, 0, len(c.Seats))
	for _, code := range c.Seats {
		seats = append(seats, seatmap.SeatCode(code))
	}

	if len(seats) > 0 {
		result, err := s.seatmap.ValidateSelection(ctx, seats)
		if err != nil {
			return Handoff{}, err
		}
		if !result.Valid {
			details := make([]string, 0, len(result.InvalidRows))
			for _, row := range result.InvalidRows {
				details = append(details, fmt.Sprintf("row %d leaves an unsellable gap", row))
			}
			return Handoff{}, apperr.New(apperr.KindValidation, "seat selection leaves unsellable gaps").WithDetails(details...)
		}
	}

	quote, err := s.pricing.QuoteOrder(ctx, seats, c.Merch, time.Now())
	if err != nil {
		return Handoff{}, err
	}

	handoff := Handoff{
		SessionID:  sessionID,
		Seats:      c.Seats,
		Merch:      c.Merch,
		Tickets:    quote.Tickets,
		MerchQuote: quote.Merchandise,
		GrandTotal: quote.GrandTotal,
		CreatedAt:  time.Now(),
	}
	if err := s.cache.Set(ctx, constants.BuildCheckoutHandoffKey(sessionID), handoff, s.cfg.SessionTTL); err != nil {
		return Handoff{}, apperr.Wrap(apperr.KindUpstream, "failed to save checkout handoff", err)
	}
	return handoff, nil
}

func (s *service) GetHandoff(ctx context.Context, sessionID string) (Handoff, error) {
	var h Handoff
	err := s.cache.Get(ctx, constants.BuildCheckoutHandoffKey(sessionID), &h)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return Handoff{}, apperr.New(apperr.KindNotFound, "no checkout found for this session")
		}
		return Handoff{}, apperr.Wrap(apperr.KindUpstream, "failed to load checkout handoff", err)
	}
	return h, nil
}
