package ledger

import (
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the lifecycle state of one reserved seat row
type SeatStatus string

const (
	StatusPending   SeatStatus = "pending"
	StatusConfirmed SeatStatus = "confirmed"
	StatusCancelled SeatStatus = "cancelled"
	StatusExpired   SeatStatus = "expired"
)

// Active reports whether the status still holds the seat. Cancelled and
// expired rows stay in the table for audit but free the seat.
func (s SeatStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ReservedSeat is one seat held by one booking. A partial unique index on
// seat_code over active statuses makes double-holding impossible at the
// database level, whatever the application does.
type ReservedSeat struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatCode   string     `gorm:"type:varchar(8);not null;index" json:"seat_code"`
	Status     SeatStatus `gorm:"type:varchar(20);check:status IN ('pending', 'confirmed', 'cancelled', 'expired');default:'pending'" json:"status"`
	BookingID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Email      string     `gorm:"not null" json:"email"`
	ReservedAt time.Time  `gorm:"not null" json:"reserved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name for ReservedSeat
func (ReservedSeat) TableName() string {
	return "reserved_seats"
}
