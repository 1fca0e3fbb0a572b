package catalog

// DefaultProducts returns the venue's merchandise catalog. Prices are in
// whole ringgit.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "keychain",
			Name:        "Keychain Blind Bag",
			Description: "Acrylic mascot keychains, 5cm x 5cm, random instrument design.",
			Notes:       "Blind bag - random design. Collect at merchandise counter.",
			Packs: []Pack{
				{Count: 3, Price: 10},
				{Count: 1, Price: 4},
			},
		},
		{
			ID:          "drawstring",
			Name:        "Drawstring Bag",
			Description: "Canvas drawstring bag, 14cm x 16cm.",
			Notes:       "Please select bag design before adding to cart.",
			Packs: []Pack{
				{Count: 2, Price: 10},
				{Count: 1, Price: 6},
			},
			Variants: []Variant{
				{ID: "expressions", Name: "Expressions"},
				{ID: "mosaic", Name: "Mosaic"},
			},
		},
		{
			ID:          "bundle",
			Name:        "Keychain + Drawstring Bag Bundle",
			Description: "One canvas drawstring bag plus one random mascot keychain.",
			Notes:       "Bundle includes 1 random keychain + 1 bag (choose design).",
			Packs: []Pack{
				{Count: 1, Price: 9},
			},
			Variants: []Variant{
				{ID: "expressions", Name: "Expressions"},
				{ID: "mosaic", Name: "Mosaic"},
			},
			BundleComponents: []BundleComponent{
				{ComponentProductID: "keychain", InheritVariant: false},
				{ComponentProductID: "drawstring", InheritVariant: true},
			},
		},
		{
			ID:          "tshirt",
			Name:        "Matzy T-Shirt",
			Description: "Microfiber mascot t-shirt. Refer to sizing chart.",
			Notes:       "Check sizing chart before purchase.",
			Packs: []Pack{
				{Count: 1, Price: 28},
			},
			Variants: []Variant{
				{ID: "xs", Name: "XS"},
				{ID: "s", Name: "S"},
				{ID: "m", Name: "M"},
				{ID: "l", Name: "L"},
				{ID: "xl", Name: "XL"},
			},
		},
	}
}

// DefaultInventoryLimits returns the per-key sellable quantities. Bundle
// SKUs carry no direct limit; they consume their constituents' limits.
func DefaultInventoryLimits() []InventoryLimit {
	return []InventoryLimit{
		{ProductID: "keychain", VariantID: "", MaxQuantity: 220},
		{ProductID: "drawstring", VariantID: "expressions", MaxQuantity: 70},
		{ProductID: "drawstring", VariantID: "mosaic", MaxQuantity: 70},
		{ProductID: "tshirt", VariantID: "xs", MaxQuantity: 4},
		{ProductID: "tshirt", VariantID: "s", MaxQuantity: 10},
		{ProductID: "tshirt", VariantID: "m", MaxQuantity: 14},
		{ProductID: "tshirt", VariantID: "l", MaxQuantity: 14},
		{ProductID: "tshirt", VariantID: "xl", MaxQuantity: 8},
	}
}
