package seatmap

import (
	"context"
	"fmt"

	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
)

// ReservedSeatSource provides the current reserved-seat overlay (to avoid a
// dependency on the ledger package)
type ReservedSeatSource interface {
	GetReservedSeats(ctx context.Context) ([]string, error)
}

// Service defines the contract for seat map reads and selection validation
type Service interface {
	GetSeatMap(ctx context.Context) (*SeatMapView, error)
	ValidateSelection(ctx context.Context, selected []SeatCode) (ValidationResult, error)
	Layout() *Layout
	SetCacheService(cacheService cache.Service)
}

// service implements the Service interface
type service struct {
	layout       *Layout
	reserved     ReservedSeatSource
	cacheService cache.Service
}

// NewService creates a new seat map service instance
func NewService(layout *Layout, reserved ReservedSeatSource) Service {
	return &service{layout: layout, reserved: reserved}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Layout() *Layout {
	return s.layout
}

// GetSeatMap returns the full layout with the reserved overlay applied
func (s *service) GetSeatMap(ctx context.Context) (*SeatMapView, error) {
	reserved, err := s.reservedSeats(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to load reserved seats", err)
	}

	reservedSet := make(map[SeatCode]struct{}, len(reserved))
	for _, code := range reserved {
		reservedSet[SeatCode(code)] = struct{}{}
	}

	view := &SeatMapView{Rows: make([]RowView, 0, s.layout.RowCount())}
	for row := 1; row <= s.layout.RowCount(); row++ {
		rowView := RowView{
			Row:         row,
			Zone:        string(s.layout.ZoneForRow(row)),
			VisualOrder: VisualOrder(s.layout.SeatsInRow(row)),
			Seats:       make([]SeatView, 0, s.layout.SeatsInRow(row)),
		}
		for seat := 1; seat <= s.layout.SeatsInRow(row); seat++ {
			code := FormatSeatCode(row, seat)
			_, isReserved := reservedSet[code]
			rowView.Seats = append(rowView.Seats, SeatView{
				Code:     code,
				Number:   seat,
				Blocked:  s.layout.IsBlocked(code),
				Reserved: isReserved,
			})
		}
		view.Rows = append(view.Rows, rowView)
	}
	return view, nil
}

// ValidateSelection runs the batch no-orphan check for a shopper's selection
// against the live reserved overlay. Deferred policy: this runs at the
// continue-to-payment boundary, not on every seat toggle.
func (s *service) ValidateSelection(ctx context.Context, selected []SeatCode) (ValidationResult, error) {
	for _, code := range selected {
		if !s.layout.Contains(code) {
			return ValidationResult{}, apperr.New(apperr.KindValidation, fmt.Sprintf("unknown seat %s", code))
		}
		if s.layout.IsBlocked(code) {
			return ValidationResult{}, apperr.New(apperr.KindValidation, fmt.Sprintf("seat %s is not for sale", code))
		}
	}

	reserved, err := s.reservedSeats(ctx)
	if err != nil {
		return ValidationResult{}, apperr.Wrap(apperr.KindUpstream, "failed to load reserved seats", err)
	}
	reservedCodes := make([]SeatCode, 0, len(reserved))
	for _, code := range reserved {
		reservedCodes = append(reservedCodes, SeatCode(code))
	}

	result, err := s.layout.ValidateSelection(selected, reservedCodes)
	if err != nil {
		return ValidationResult{}, apperr.Wrap(apperr.KindValidation, "malformed seat code", err)
	}
	return result, nil
}

// reservedSeats reads the reserved overlay through a short-TTL cache so the
// seat map page does not hammer the ledger
func (s *service) reservedSeats(ctx context.Context) ([]string, error) {
	if s.cacheService == nil {
		return s.reserved.GetReservedSeats(ctx)
	}

	var codes []string
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_RESERVED_SEATS, constants.TTL_REALTIME_SHORT,
		func() (interface{}, error) {
			return s.reserved.GetReservedSeats(ctx)
		}, &codes)
	if err != nil {
		// Cache trouble should not take the seat map down.
		return s.reserved.GetReservedSeats(ctx)
	}
	return codes, nil
}
