package notifications

import (
	"context"

	"stagepass/pkg/logger"

	"github.com/google/uuid"
)

// Service is the producer-side API the booking flow calls. All methods are
// best effort; failures are logged and never returned to the shopper.
type Service interface {
	NotifyBookingConfirmed(ctx context.Context, email, name string, bookingID uuid.UUID, seats []string, merch []MerchLineSummary, grandTotal float64)
	NotifyBookingCancelled(ctx context.Context, email, name string, bookingID uuid.UUID, seats []string)
}

type service struct {
	producer Producer
	log      *logger.Logger
}

// NewService creates a notification service. A nil producer disables
// publishing (Kafka turned off); calls become logged no-ops.
func NewService(producer Producer) Service {
	return &service{producer: producer, log: logger.GetDefault()}
}

func (s *service) NotifyBookingConfirmed(ctx context.Context, email, name string, bookingID uuid.UUID, seats []string, merch []MerchLineSummary, grandTotal float64) {
	n := NewBookingNotification(TypeBookingConfirmed, email, name, bookingID)
	n.Seats = seats
	n.Merch = merch
	n.GrandTotal = grandTotal
	s.publish(ctx, n)
}

func (s *service) NotifyBookingCancelled(ctx context.Context, email, name string, bookingID uuid.UUID, seats []string) {
	n := NewBookingNotification(TypeBookingCancelled, email, name, bookingID)
	n.Seats = seats
	s.publish(ctx, n)
}

func (s *service) publish(ctx context.Context, n *BookingNotification) {
	if s.producer == nil {
		s.log.Debug("notifications disabled, dropping message", "type", n.Type, "booking_id", n.BookingID)
		return
	}
	if err := s.producer.Publish(ctx, n); err != nil {
		s.log.LogNotificationFailure(ctx, n.BookingID.String(), err)
	}
}
