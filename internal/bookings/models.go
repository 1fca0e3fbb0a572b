package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one committed (or in-flight) purchase. Prices are denormalized
// at commit time so later catalog or pricing changes never rewrite history.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	ContactNo string    `gorm:"not null" json:"contact_no"`
	StudentID string    `json:"student_id,omitempty"`

	Seats         []string `gorm:"serializer:json" json:"seats"`
	DeluxeCount   int      `gorm:"not null;default:0" json:"deluxe_count"`
	StandardCount int      `gorm:"not null;default:0" json:"standard_count"`
	TicketTotal   float64  `gorm:"not null;default:0" json:"ticket_total"`
	MerchTotal    float64  `gorm:"not null;default:0" json:"merch_total"`
	TotalPrice    float64  `gorm:"not null" json:"total_price"`
	EarlyBird     bool     `gorm:"not null;default:false" json:"early_bird"`

	ReceiptKey string `json:"receipt_key,omitempty"`
	Redeemed   bool   `gorm:"not null;default:false" json:"redeemed"`
	Status     Status `gorm:"type:varchar(30);check:status IN ('pending', 'confirmed', 'cancelled', 'needs_reconciliation');default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	MerchLines []BookingMerchLine `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"merch_lines,omitempty"`
}

// BookingMerchLine is one merchandise position of a booking. LineTotal is
// this line's share of the product-level pack price.
type BookingMerchLine struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	ProductID string    `gorm:"type:varchar(50);not null" json:"product_id"`
	VariantID string    `gorm:"type:varchar(50);default:''" json:"variant_id,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	LineTotal float64   `gorm:"not null" json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingMerchLine
func (BookingMerchLine) TableName() string {
	return "booking_merch_lines"
}
