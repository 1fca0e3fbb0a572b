package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSeatsTaken is returned by ReserveSeats when any requested seat is
// already held. Taken carries the conflicting codes.
type ErrSeatsTaken struct {
	Taken []string
}

func (e *ErrSeatsTaken) Error() string {
	return fmt.Sprintf("seats already taken: %s", strings.Join(e.Taken, ", "))
}

type Repository interface {
	// GetReservedSeats returns the codes of every actively held seat
	GetReservedSeats(ctx context.Context) ([]string, error)

	// CheckSeatsAvailable returns the subset of seats already held. An
	// empty result means all requested seats are free right now; only
	// ReserveSeats makes that guarantee stick.
	CheckSeatsAvailable(ctx context.Context, seats []string) ([]string, error)

	// ReserveSeats atomically holds every seat for a booking, or none of
	// them. Returns *ErrSeatsTaken when another booking got there first.
	ReserveSeats(ctx context.Context, bookingID uuid.UUID, email string, seats []string) error

	// ConfirmForBooking promotes a booking's pending holds to confirmed
	ConfirmForBooking(ctx context.Context, bookingID uuid.UUID) error

	// ReleaseForBooking cancels every active hold of a booking
	ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)

	// ExpireStale marks pending holds older than the cutoff as expired
	ExpireStale(ctx context.Context, olderThan time.Time) (int64, error)

	// GetSeatsForBooking returns a booking's seat rows regardless of status
	GetSeatsForBooking(ctx context.Context, bookingID uuid.UUID) ([]ReservedSeat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetReservedSeats(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("status IN ?", []SeatStatus{StatusPending, StatusConfirmed}).
		Pluck("seat_code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reserved seats: %w", err)
	}
	return codes, nil
}

func (r *repository) CheckSeatsAvailable(ctx context.Context, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	var taken []string
	err := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("seat_code IN ?", seats).
		Where("status IN ?", []SeatStatus{StatusPending, StatusConfirmed}).
		Pluck("seat_code", &taken).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check seat availability: %w", err)
	}
	return taken, nil
}

// ReserveSeats runs a single transaction: lock the matching active rows,
// re-check, insert. The partial unique index on (seat_code) over active
// statuses backstops the check against inserts the lock cannot see.
func (r *repository) ReserveSeats(ctx context.Context, bookingID uuid.UUID, email string, seats []string) error {
	if len(seats) == 0 {
		return nil
	}

	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken []string
		err := tx.Model(&ReservedSeat{}).
			Where("seat_code IN ?", seats).
			Where("status IN ?", []SeatStatus{StatusPending, StatusConfirmed}).
			Set("gorm:query_option", "FOR UPDATE").
			Pluck("seat_code", &taken).Error
		if err != nil {
			return fmt.Errorf("failed to lock reserved seats: %w", err)
		}
		if len(taken) > 0 {
			return &ErrSeatsTaken{Taken: taken}
		}

		rows := make([]ReservedSeat, 0, len(seats))
		for _, code := range seats {
			rows = append(rows, ReservedSeat{
				SeatCode:   code,
				Status:     StatusPending,
				BookingID:  bookingID,
				Email:      email,
				ReservedAt: now,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			if isUniqueViolation(err) {
				return &ErrSeatsTaken{Taken: seats}
			}
			return fmt.Errorf("failed to reserve seats: %w", err)
		}
		return nil
	})
}

func (r *repository) ConfirmForBooking(ctx context.Context, bookingID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("booking_id = ?", bookingID).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusConfirmed,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to confirm seats for booking %s: %w", bookingID, err)
	}
	return nil
}

func (r *repository) ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("booking_id = ?", bookingID).
		Where("status IN ?", []SeatStatus{StatusPending, StatusConfirmed}).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to release seats for booking %s: %w", bookingID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *repository) ExpireStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("status = ?", StatusPending).
		Where("reserved_at < ?", olderThan).
		Updates(map[string]interface{}{
			"status":     StatusExpired,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire stale holds: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *repository) GetSeatsForBooking(ctx context.Context, bookingID uuid.UUID) ([]ReservedSeat, error) {
	var rows []ReservedSeat
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("seat_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load seats for booking %s: %w", bookingID, err)
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres unique_violation without the translated-error dialector flag.
	return strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
