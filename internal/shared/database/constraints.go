package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// A seat may have at most one live hold. Cancelled and expired rows
	// stay behind for the audit trail without blocking new reservations.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_reserved_seats_active
		ON reserved_seats (seat_code)
		WHERE status IN ('pending', 'confirmed');
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reserved_seats_booking_id
		ON reserved_seats (booking_id);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_created
		ON bookings (status, created_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
