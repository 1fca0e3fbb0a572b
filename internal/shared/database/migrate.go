package database

import (
	"stagepass/internal/bookings"
	"stagepass/internal/catalog"
	"stagepass/internal/ledger"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&catalog.Variant{},
		&catalog.Pack{},
		&catalog.BundleComponent{},
		&catalog.InventoryLimit{},
		&ledger.ReservedSeat{},
		&bookings.Booking{},
		&bookings.BookingMerchLine{},
	)
}
