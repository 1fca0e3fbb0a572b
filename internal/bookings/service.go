package bookings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"stagepass/internal/cart"
	"stagepass/internal/catalog"
	"stagepass/internal/ledger"
	"stagepass/internal/notifications"
	"stagepass/internal/pricing"
	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/config"
	"stagepass/pkg/logger"
	"stagepass/pkg/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommitRequest carries everything needed to turn a checkout into a booking
type CommitRequest struct {
	SessionID string
	Name      string
	Email     string
	ContactNo string
	StudentID string
	Receipt   *multipart.FileHeader
}

// Service defines the contract for booking operations
type Service interface {
	// Commit runs the booking commit protocol end to end
	Commit(ctx context.Context, req CommitRequest) (*Booking, error)

	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetReceiptURL(ctx context.Context, id uuid.UUID) (string, error)

	// Admin operations
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	SetRedeemed(ctx context.Context, id uuid.UUID, redeemed bool) (*Booking, error)
	GetSalesSummary(ctx context.Context) (*SalesSummary, error)
}

// SalesSummary is the admin revenue report split at the early-bird cutoff
type SalesSummary struct {
	EarlyBird SalesBucket `json:"early_bird"`
	Standard  SalesBucket `json:"standard"`
	Combined  SalesBucket `json:"combined"`
}

type service struct {
	repo          Repository
	cart          cart.Service
	ledger        ledger.Service
	catalog       catalog.Service
	receipts      storage.ReceiptStore
	notifications notifications.Service
	uploadCfg     config.UploadConfig
	log           *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, cartService cart.Service, ledgerService ledger.Service, catalogService catalog.Service, receipts storage.ReceiptStore, notificationService notifications.Service, uploadCfg config.UploadConfig) Service {
	return &service{
		repo:          repo,
		cart:          cartService,
		ledger:        ledgerService,
		catalog:       catalogService,
		receipts:      receipts,
		notifications: notificationService,
		uploadCfg:     uploadCfg,
		log:           logger.GetDefault(),
	}
}

// Commit drives a checkout handoff through validation, availability
// re-check, persistence, receipt upload and seat reservation. Before the
// booking row exists any failure aborts cleanly; after it exists a failure
// marks the row needs_reconciliation and stops, it never retries.
func (s *service) Commit(ctx context.Context, req CommitRequest) (*Booking, error) {
	contentType, err := s.validateReceipt(req.Receipt)
	if err != nil {
		return nil, err
	}

	handoff, err := s.cart.GetHandoff(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// Availability re-check against the live ledger. A conflict here costs
	// nothing: no row has been written yet.
	if err := s.ledger.CheckAvailability(ctx, handoff.Seats, handoff.Merch); err != nil {
		return nil, err
	}

	booking := &Booking{
		Name:          req.Name,
		Email:         req.Email,
		ContactNo:     req.ContactNo,
		StudentID:     req.StudentID,
		Seats:         handoff.Seats,
		DeluxeCount:   handoff.Tickets.DeluxeCount,
		StandardCount: handoff.Tickets.StandardCount,
		TicketTotal:   handoff.Tickets.GrandTotal,
		MerchTotal:    handoff.MerchQuote.GrandTotal,
		TotalPrice:    handoff.GrandTotal,
		EarlyBird:     handoff.Tickets.EarlyBird,
		Status:        StatusPending,
		MerchLines:    apportionMerchLines(handoff.Merch, handoff.MerchQuote),
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to persist booking", err)
	}

	key, err := s.uploadReceipt(ctx, booking.ID, req.Receipt, contentType)
	if err != nil {
		s.markNeedsReconciliation(ctx, booking, "receipt_upload", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to store receipt", err)
	}
	booking.ReceiptKey = key
	if err := s.repo.UpdateReceiptKey(ctx, booking.ID, key); err != nil {
		s.markNeedsReconciliation(ctx, booking, "receipt_attach", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to attach receipt", err)
	}

	if err := s.ledger.ReserveSeats(ctx, booking.ID, booking.Email, booking.Seats); err != nil {
		// Conflict or I/O failure: the booking row and receipt exist but
		// the seats do not. Operators resolve it either way.
		s.markNeedsReconciliation(ctx, booking, "seat_reservation", err)
		return nil, err
	}

	if err := s.ledger.ConfirmForBooking(ctx, booking.ID); err != nil {
		s.markNeedsReconciliation(ctx, booking, "seat_confirmation", err)
		return nil, err
	}
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusConfirmed); err != nil {
		s.markNeedsReconciliation(ctx, booking, "status_update", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to finalize booking", err)
	}
	booking.Status = StatusConfirmed

	if err := s.cart.Clear(ctx, req.SessionID); err != nil {
		// A stale cart is cosmetic; the booking already committed.
		s.log.WithError(err).Warn("failed to clear cart after commit", "booking_id", booking.ID)
	}

	s.log.LogBookingCommitted(ctx, booking.ID.String(), booking.Email, len(booking.Seats), booking.TotalPrice)
	s.notifyConfirmed(ctx, booking)

	return booking, nil
}

func (s *service) validateReceipt(receipt *multipart.FileHeader) (string, error) {
	if receipt == nil {
		return "", apperr.New(apperr.KindValidation, "payment receipt is required")
	}
	if receipt.Size > s.uploadCfg.MaxSize {
		return "", apperr.New(apperr.KindValidation,
			fmt.Sprintf("receipt exceeds the %dMB limit", s.uploadCfg.MaxSize/(1<<20)))
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(receipt.Filename)), ".")
	for _, allowed := range s.uploadCfg.AllowedTypes {
		if ext == allowed {
			return contentTypeForExt(ext), nil
		}
	}
	return "", apperr.New(apperr.KindValidation,
		fmt.Sprintf("receipt type %q not accepted, use one of: %s", ext, strings.Join(s.uploadCfg.AllowedTypes, ", ")))
}

func contentTypeForExt(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (s *service) uploadReceipt(ctx context.Context, bookingID uuid.UUID, receipt *multipart.FileHeader, contentType string) (string, error) {
	file, err := receipt.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open receipt upload: %w", err)
	}
	defer file.Close()

	// Cap the read at the configured limit even if the header lied.
	body := io.LimitReader(file, s.uploadCfg.MaxSize)
	return s.receipts.Put(ctx, bookingID.String(), filepath.Base(receipt.Filename), contentType, body)
}

func (s *service) markNeedsReconciliation(ctx context.Context, booking *Booking, stage string, cause error) {
	s.log.LogReconciliationNeeded(ctx, booking.ID.String(), stage, cause)
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusNeedsReconciliation); err != nil {
		s.log.WithError(err).Error("failed to flag booking for reconciliation", "booking_id", booking.ID)
	}
	booking.Status = StatusNeedsReconciliation
}

func (s *service) notifyConfirmed(ctx context.Context, booking *Booking) {
	summaries := make([]notifications.MerchLineSummary, 0, len(booking.MerchLines))
	lookup, err := s.catalog.Lookup(ctx)
	for _, line := range booking.MerchLines {
		name, variant := line.ProductID, line.VariantID
		if err == nil {
			if product, ok := lookup.Product(line.ProductID); ok {
				name = product.Name
				if v, ok := product.VariantByID(line.VariantID); ok {
					variant = v.Name
				}
			}
		}
		summaries = append(summaries, notifications.MerchLineSummary{
			Name:     name,
			Variant:  variant,
			Quantity: line.Quantity,
			Total:    line.LineTotal,
		})
	}
	s.notifications.NotifyBookingConfirmed(ctx, booking.Email, booking.Name, booking.ID, booking.Seats, summaries, booking.TotalPrice)
}

// apportionMerchLines distributes each product's pack-priced total across
// its cart lines by quantity share, in cents with largest-remainder
// rounding so the line totals always sum back to the product total.
func apportionMerchLines(lines []pricing.CartLine, quote pricing.MerchQuote) []BookingMerchLine {
	productTotals := make(map[string]float64, len(quote.Lines))
	productQty := make(map[string]int, len(quote.Lines))
	for _, q := range quote.Lines {
		productTotals[q.ProductID] = q.Total
		productQty[q.ProductID] = q.Quantity
	}

	remainingCents := make(map[string]int64, len(productTotals))
	remainingQty := make(map[string]int, len(productQty))
	for id, total := range productTotals {
		remainingCents[id] = int64(math.Round(total * 100))
		remainingQty[id] = productQty[id]
	}

	out := make([]BookingMerchLine, 0, len(lines))
	for _, line := range lines {
		cents := remainingCents[line.ProductID]
		qty := remainingQty[line.ProductID]
		var lineCents int64
		if qty > 0 {
			lineCents = cents * int64(line.Quantity) / int64(qty)
		}
		remainingCents[line.ProductID] = cents - lineCents
		remainingQty[line.ProductID] = qty - line.Quantity

		out = append(out, BookingMerchLine{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			LineTotal: float64(lineCents) / 100,
		})
	}
	return out
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("booking %s", id))
		}
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to load booking", err)
	}
	return booking, nil
}

func (s *service) GetReceiptURL(ctx context.Context, id uuid.UUID) (string, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return "", err
	}
	if booking.ReceiptKey == "" {
		return "", apperr.New(apperr.KindNotFound, "booking has no receipt")
	}

	url, err := s.receipts.PresignGet(ctx, booking.ReceiptKey, 15*time.Minute)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "failed to presign receipt", err)
	}
	return url, nil
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	bookings, total, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindUpstream, "failed to list bookings", err)
	}
	return bookings, total, nil
}

// DeleteBooking removes a booking and releases its seats. The receipt blob
// is removed last; a failed blob delete only logs.
func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	released, err := s.ledger.ReleaseForBooking(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to delete booking", err)
	}

	if booking.ReceiptKey != "" {
		if err := s.receipts.Delete(ctx, booking.ReceiptKey); err != nil {
			s.log.WithError(err).Warn("failed to delete receipt blob", "booking_id", id)
		}
	}

	s.log.Info("booking deleted", "booking_id", id, "seats_released", released)
	s.notifications.NotifyBookingCancelled(ctx, booking.Email, booking.Name, booking.ID, booking.Seats)
	return nil
}

func (s *service) SetRedeemed(ctx context.Context, id uuid.UUID, redeemed bool) (*Booking, error) {
	if err := s.repo.SetRedeemed(ctx, id, redeemed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("booking %s", id))
		}
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to update redemption", err)
	}
	return s.GetBooking(ctx, id)
}

func (s *service) GetSalesSummary(ctx context.Context) (*SalesSummary, error) {
	earlyBird, standard, err := s.repo.GetSalesSplit(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to aggregate sales", err)
	}
	return &SalesSummary{
		EarlyBird: earlyBird,
		Standard:  standard,
		Combined: SalesBucket{
			Bookings:      earlyBird.Bookings + standard.Bookings,
			DeluxeSeats:   earlyBird.DeluxeSeats + standard.DeluxeSeats,
			StandardSeats: earlyBird.StandardSeats + standard.StandardSeats,
			TicketRevenue: earlyBird.TicketRevenue + standard.TicketRevenue,
			MerchRevenue:  earlyBird.MerchRevenue + standard.MerchRevenue,
			TotalRevenue:  earlyBird.TotalRevenue + standard.TotalRevenue,
		},
	}, nil
}
