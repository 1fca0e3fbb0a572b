package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stagepass/internal/catalog"
	"stagepass/internal/pricing"
	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
	"stagepass/pkg/logger"

	"github.com/google/uuid"
)

// SoldLineSource provides the raw merchandise lines of every booking that
// still counts against inventory (implemented by the bookings repository)
type SoldLineSource interface {
	SoldMerchLines(ctx context.Context) ([]pricing.CartLine, error)
}

// Service defines the contract for availability checks and seat holds
type Service interface {
	// GetReservedSeats satisfies the seat map's reserved overlay source
	GetReservedSeats(ctx context.Context) ([]string, error)

	// CheckAvailability verifies seats and merchandise in one pass and
	// reports every offending seat and item, not just the first.
	CheckAvailability(ctx context.Context, seats []string, merch []pricing.CartLine) error

	// ReserveSeats atomically holds the seats for a booking
	ReserveSeats(ctx context.Context, bookingID uuid.UUID, email string, seats []string) error

	ConfirmForBooking(ctx context.Context, bookingID uuid.UUID) error
	ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)
	GetSeatsForBooking(ctx context.Context, bookingID uuid.UUID) ([]ReservedSeat, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	catalog      catalog.Service
	sold         SoldLineSource
	cacheService cache.Service
	log          *logger.Logger
}

// NewService creates a new ledger service instance
func NewService(repo Repository, catalogService catalog.Service, sold SoldLineSource) Service {
	return &service{
		repo:    repo,
		catalog: catalogService,
		sold:    sold,
		log:     logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetReservedSeats(ctx context.Context) ([]string, error) {
	return s.repo.GetReservedSeats(ctx)
}

func (s *service) CheckAvailability(ctx context.Context, seats []string, merch []pricing.CartLine) error {
	var details []string

	taken, err := s.repo.CheckSeatsAvailable(ctx, seats)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to check seat availability", err)
	}
	for _, code := range taken {
		details = append(details, fmt.Sprintf("seat %s is already taken", code))
	}

	merchDetails, err := s.checkMerchandise(ctx, merch)
	if err != nil {
		return err
	}
	details = append(details, merchDetails...)

	if len(details) > 0 {
		return apperr.New(apperr.KindConflict, "some items are no longer available").WithDetails(details...)
	}
	return nil
}

// checkMerchandise compares requested quantities against inventory limits
// minus what existing bookings already consumed. Bundles count against
// their constituent products, never against a bundle SKU.
func (s *service) checkMerchandise(ctx context.Context, merch []pricing.CartLine) ([]string, error) {
	if len(merch) == 0 {
		return nil, nil
	}

	lookup, err := s.catalog.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	limits, err := s.catalog.GetInventoryLimits(ctx)
	if err != nil {
		return nil, err
	}
	soldLines, err := s.sold.SoldMerchLines(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to load sold quantities", err)
	}

	requested, err := decomposeLines(merch, lookup)
	if err != nil {
		return nil, err
	}
	sold, err := decomposeLines(soldLines, lookup)
	if err != nil {
		// Persisted lines referencing an unknown product mean the catalog
		// shrank under existing bookings; surface it instead of guessing.
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to decompose sold lines", err)
	}

	keys := make([]catalog.LineKey, 0, len(requested))
	for key := range requested {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	var details []string
	for _, key := range keys {
		limit, limited := limits[key]
		if !limited {
			continue
		}
		remaining := limit - sold[key]
		if remaining < 0 {
			remaining = 0
		}
		if requested[key] > remaining {
			details = append(details, fmt.Sprintf("%s: requested %d, only %d left", key, requested[key], remaining))
		}
	}
	return details, nil
}

// decomposeLines converts cart lines to inventory-key quantities. A bundle
// line adds one unit per component per bundle; a component marked as
// variant-inheriting counts under the variant chosen on the bundle line.
func decomposeLines(lines []pricing.CartLine, lookup *catalog.Lookup) (map[catalog.LineKey]int, error) {
	out := make(map[catalog.LineKey]int)
	for _, line := range lines {
		product, ok := lookup.Product(line.ProductID)
		if !ok {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("unknown product %s", line.ProductID))
		}
		if !product.IsBundle() {
			out[catalog.LineKey{ProductID: line.ProductID, VariantID: line.VariantID}] += line.Quantity
			continue
		}
		for _, component := range product.BundleComponents {
			key := catalog.LineKey{ProductID: component.ComponentProductID}
			if component.InheritVariant {
				key.VariantID = line.VariantID
			}
			out[key] += line.Quantity
		}
	}
	return out, nil
}

func (s *service) ReserveSeats(ctx context.Context, bookingID uuid.UUID, email string, seats []string) error {
	err := s.repo.ReserveSeats(ctx, bookingID, email, seats)
	if err != nil {
		var takenErr *ErrSeatsTaken
		if errors.As(err, &takenErr) {
			details := make([]string, 0, len(takenErr.Taken))
			for _, code := range takenErr.Taken {
				details = append(details, fmt.Sprintf("seat %s is already taken", code))
			}
			s.log.LogAvailabilityConflict(ctx, email, takenErr.Error())
			return apperr.Wrap(apperr.KindConflict, "seats are no longer available", err).WithDetails(details...)
		}
		return apperr.Wrap(apperr.KindUpstream, "failed to reserve seats", err)
	}

	s.invalidateReservedCache(ctx)
	return nil
}

func (s *service) ConfirmForBooking(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.repo.ConfirmForBooking(ctx, bookingID); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to confirm seats", err)
	}
	return nil
}

func (s *service) ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	released, err := s.repo.ReleaseForBooking(ctx, bookingID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUpstream, "failed to release seats", err)
	}
	if released > 0 {
		s.invalidateReservedCache(ctx)
	}
	return released, nil
}

func (s *service) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	expired, err := s.repo.ExpireStale(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUpstream, "failed to expire stale holds", err)
	}
	if expired > 0 {
		s.log.Info("expired stale seat holds", "count", expired)
		s.invalidateReservedCache(ctx)
	}
	return expired, nil
}

func (s *service) GetSeatsForBooking(ctx context.Context, bookingID uuid.UUID) ([]ReservedSeat, error) {
	return s.repo.GetSeatsForBooking(ctx, bookingID)
}

func (s *service) invalidateReservedCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_RESERVED_SEATS); err != nil {
		s.log.WithError(err).Warn("failed to invalidate reserved seat cache")
	}
}
