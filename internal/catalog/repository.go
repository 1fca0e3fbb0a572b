package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository defines the catalog data access contract
type Repository interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetInventoryLimits(ctx context.Context) ([]InventoryLimit, error)

	// Seeding
	ReplaceCatalog(ctx context.Context, products []Product, limits []InventoryLimit) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Preload("Packs").
		Preload("Variants").
		Preload("BundleComponents").
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).
		Preload("Packs").
		Preload("Variants").
		Preload("BundleComponents").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s not found", id)
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) GetInventoryLimits(ctx context.Context) ([]InventoryLimit, error) {
	var limits []InventoryLimit
	err := r.db.WithContext(ctx).Find(&limits).Error
	return limits, err
}

// ReplaceCatalog wipes and reloads the catalog tables in one transaction.
// Used by the seeder only.
func (r *repository) ReplaceCatalog(ctx context.Context, products []Product, limits []InventoryLimit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&BundleComponent{}, &Pack{}, &Variant{}, &InventoryLimit{}, &Product{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear catalog table: %w", err)
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("failed to insert products: %w", err)
			}
		}
		if len(limits) > 0 {
			if err := tx.Create(&limits).Error; err != nil {
				return fmt.Errorf("failed to insert inventory limits: %w", err)
			}
		}
		return nil
	})
}
