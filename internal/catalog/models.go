package catalog

import (
	"time"
)

// Product is a merchandise catalog entry. IDs are stable slugs so the
// booking records stay readable.
type Product struct {
	ID          string `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Packs            []Pack            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE;" json:"packs"`
	Variants         []Variant         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE;" json:"variants,omitempty"`
	BundleComponents []BundleComponent `gorm:"foreignKey:BundleProductID;constraint:OnDelete:CASCADE;" json:"bundle_components,omitempty"`
}

// Variant is a mutually exclusive sub-choice of a product (design, size).
// Variant IDs are scoped to their product.
type Variant struct {
	ProductID string `gorm:"type:varchar(50);primaryKey" json:"-"`
	ID        string `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
}

// Pack is one bulk-pricing rule: Count units for Price. Every product is
// expected to carry a count=1 pack; the pricing engine has a defined
// over-charge fallback when one is missing.
type Pack struct {
	ProductID string  `gorm:"type:varchar(50);primaryKey" json:"-"`
	Count     int     `gorm:"primaryKey" json:"count"`
	Price     float64 `gorm:"not null" json:"price"`
}

// InventoryLimit caps the sellable quantity of one (product, variant) key.
// An empty variant means the limit applies to the variantless product.
type InventoryLimit struct {
	ProductID   string `gorm:"type:varchar(50);primaryKey" json:"product_id"`
	VariantID   string `gorm:"type:varchar(50);primaryKey;default:''" json:"variant_id,omitempty"`
	MaxQuantity int    `gorm:"not null" json:"max_quantity"`
}

// BundleComponent declares that one unit of the bundle product consumes one
// unit of the component product. When InheritVariant is set the component
// is counted under the variant chosen on the bundle line (the bag design
// picked for the bundle); otherwise it counts under the component's own
// variantless key.
type BundleComponent struct {
	BundleProductID    string `gorm:"type:varchar(50);primaryKey" json:"bundle_product_id"`
	ComponentProductID string `gorm:"type:varchar(50);primaryKey" json:"component_product_id"`
	InheritVariant     bool   `gorm:"not null;default:false" json:"inherit_variant"`
}

// TableName sets the table name for Product
func (Product) TableName() string {
	return "products"
}

// TableName sets the table name for Variant
func (Variant) TableName() string {
	return "product_variants"
}

// TableName sets the table name for Pack
func (Pack) TableName() string {
	return "product_packs"
}

// TableName sets the table name for InventoryLimit
func (InventoryLimit) TableName() string {
	return "inventory_limits"
}

// TableName sets the table name for BundleComponent
func (BundleComponent) TableName() string {
	return "bundle_components"
}

// HasVariants reports whether the product requires a variant choice
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// IsBundle reports whether the product decomposes into other products for
// inventory purposes
func (p *Product) IsBundle() bool {
	return len(p.BundleComponents) > 0
}

// VariantByID finds a variant on the product
func (p *Product) VariantByID(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
