package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the message template
type NotificationType string

const (
	TypeBookingConfirmed NotificationType = "booking_confirmed"
	TypeBookingCancelled NotificationType = "booking_cancelled"
)

// NotificationStatus tracks delivery progress
type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusQueued  NotificationStatus = "queued"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// MerchLineSummary is one merchandise position rendered in the email
type MerchLineSummary struct {
	Name     string  `json:"name"`
	Variant  string  `json:"variant,omitempty"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// BookingNotification is the wire message between the booking commit and
// the email workers. Delivery is best effort: a committed booking never
// rolls back because this message failed.
type BookingNotification struct {
	ID             uuid.UUID          `json:"id"`
	Type           NotificationType   `json:"type"`
	RecipientEmail string             `json:"recipient_email"`
	RecipientName  string             `json:"recipient_name"`
	BookingID      uuid.UUID          `json:"booking_id"`
	Seats          []string           `json:"seats"`
	Merch          []MerchLineSummary `json:"merch,omitempty"`
	GrandTotal     float64            `json:"grand_total"`
	Status         NotificationStatus `json:"status"`
	LastError      *string            `json:"last_error,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewBookingNotification creates a pending notification for a booking
func NewBookingNotification(t NotificationType, email, name string, bookingID uuid.UUID) *BookingNotification {
	now := time.Now()
	return &BookingNotification{
		ID:             uuid.New(),
		Type:           t,
		RecipientEmail: email,
		RecipientName:  name,
		BookingID:      bookingID,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ToJSON serializes the notification for the wire
func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// FromJSON deserializes a notification off the wire
func FromJSON(data []byte) (*BookingNotification, error) {
	var n BookingNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetPartitionKey routes all messages of one recipient to one partition so
// their emails arrive in order
func (n *BookingNotification) GetPartitionKey() string {
	return n.RecipientEmail
}
