package bookings

import (
	"context"
	"time"

	"stagepass/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingListQuery carries admin list filters and pagination
type BookingListQuery struct {
	Email       string
	Status      Status
	Redeemed    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string // created_at, total_price, email
	SortDesc    bool
	Page        int
	Limit       int
}

// SalesBucket aggregates one side of the early-bird split
type SalesBucket struct {
	Bookings      int64   `json:"bookings"`
	DeluxeSeats   int64   `json:"deluxe_seats"`
	StandardSeats int64   `json:"standard_seats"`
	TicketRevenue float64 `json:"ticket_revenue"`
	MerchRevenue  float64 `json:"merch_revenue"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateReceiptKey(ctx context.Context, id uuid.UUID, key string) error
	SetRedeemed(ctx context.Context, id uuid.UUID, redeemed bool) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error

	// Admin operations
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	GetSalesSplit(ctx context.Context) (earlyBird, standard SalesBucket, err error)

	// SoldMerchLines feeds the availability ledger: the raw merch lines of
	// every booking that still counts against inventory.
	SoldMerchLines(ctx context.Context) ([]pricing.CartLine, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("MerchLines").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) UpdateReceiptKey(ctx context.Context, id uuid.UUID, key string) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"receipt_key": key,
			"updated_at":  time.Now(),
		}).Error
}

func (r *repository) SetRedeemed(ctx context.Context, id uuid.UUID, redeemed bool) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"redeemed":   redeemed,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	// Merch lines go with the booking via the FK cascade.
	result := r.db.WithContext(ctx).Delete(&Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("MerchLines").
		Order(orderClause(query)).
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) applyFilters(db *gorm.DB, query BookingListQuery) *gorm.DB {
	if query.Email != "" {
		db = db.Where("email ILIKE ?", "%"+query.Email+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Redeemed != nil {
		db = db.Where("redeemed = ?", *query.Redeemed)
	}
	if query.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *query.CreatedFrom)
	}
	if query.CreatedTo != nil {
		db = db.Where("created_at <= ?", *query.CreatedTo)
	}
	return db
}

func orderClause(query BookingListQuery) string {
	column := "created_at"
	switch query.SortBy {
	case "total_price", "email", "created_at":
		column = query.SortBy
	}
	if query.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

func (r *repository) GetSalesSplit(ctx context.Context) (SalesBucket, SalesBucket, error) {
	type row struct {
		EarlyBird     bool
		Bookings      int64
		DeluxeSeats   int64
		StandardSeats int64
		TicketRevenue float64
		MerchRevenue  float64
		TotalRevenue  float64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select(`early_bird,
			COUNT(*) AS bookings,
			COALESCE(SUM(deluxe_count), 0) AS deluxe_seats,
			COALESCE(SUM(standard_count), 0) AS standard_seats,
			COALESCE(SUM(ticket_total), 0) AS ticket_revenue,
			COALESCE(SUM(merch_total), 0) AS merch_revenue,
			COALESCE(SUM(total_price), 0) AS total_revenue`).
		Where("status IN ?", CountingStatuses()).
		Group("early_bird").
		Scan(&rows).Error
	if err != nil {
		return SalesBucket{}, SalesBucket{}, err
	}

	var earlyBird, standard SalesBucket
	for _, agg := range rows {
		bucket := SalesBucket{
			Bookings:      agg.Bookings,
			DeluxeSeats:   agg.DeluxeSeats,
			StandardSeats: agg.StandardSeats,
			TicketRevenue: agg.TicketRevenue,
			MerchRevenue:  agg.MerchRevenue,
			TotalRevenue:  agg.TotalRevenue,
		}
		if agg.EarlyBird {
			earlyBird = bucket
		} else {
			standard = bucket
		}
	}
	return earlyBird, standard, nil
}

func (r *repository) SoldMerchLines(ctx context.Context) ([]pricing.CartLine, error) {
	type row struct {
		ProductID string
		VariantID string
		Quantity  int
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&BookingMerchLine{}).
		Select("booking_merch_lines.product_id, booking_merch_lines.variant_id, SUM(booking_merch_lines.quantity) AS quantity").
		Joins("JOIN bookings ON bookings.id = booking_merch_lines.booking_id").
		Where("bookings.status IN ?", CountingStatuses()).
		Group("booking_merch_lines.product_id, booking_merch_lines.variant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.CartLine, 0, len(rows))
	for _, agg := range rows {
		lines = append(lines, pricing.CartLine{ProductID: agg.ProductID, VariantID: agg.VariantID, Quantity: agg.Quantity})
	}
	return lines, nil
}
