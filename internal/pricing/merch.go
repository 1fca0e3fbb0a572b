package pricing

import (
	"fmt"
	"sort"

	"stagepass/internal/catalog"
	"stagepass/internal/shared/apperr"
)

// CartLine is one merchandise position in a shopper's cart
type CartLine struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// MerchQuote is the priced breakdown of a merchandise cart. Lines carry
// the per-product totals (variants of one product share a single price).
type MerchQuote struct {
	Lines      []MerchLineQuote `json:"lines"`
	GrandTotal float64          `json:"grand_total"`
}

// MerchLineQuote is the price of all cart lines of one product
type MerchLineQuote struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// PriceForProduct prices a quantity of one product by greedy pack
// decomposition: largest packs first, remainder at the count=1 pack, or --
// when no single pack exists -- at enough copies of the smallest pack to
// cover it (partial packs are never under-priced). The greedy split is
// exact for the two-tier pack schemes the venue uses; it is not a global
// optimum for arbitrary pack sets and is documented as such.
func PriceForProduct(product *catalog.Product, quantity int) (float64, error) {
	if quantity < 0 {
		return 0, apperr.New(apperr.KindValidation, "quantity must not be negative")
	}
	if quantity == 0 {
		return 0, nil
	}
	packs := make([]catalog.Pack, 0, len(product.Packs))
	for _, pack := range product.Packs {
		if pack.Count > 0 {
			packs = append(packs, pack)
		}
	}
	if len(packs) == 0 {
		return 0, fmt.Errorf("product %s has no sellable packs", product.ID)
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].Count > packs[j].Count })

	total := 0.0
	remaining := quantity
	for _, pack := range packs {
		n := remaining / pack.Count
		total += float64(n) * pack.Price
		remaining -= n * pack.Count
	}

	if remaining > 0 {
		// No count=1 pack: charge whole copies of the smallest pack.
		smallest := packs[len(packs)-1]
		n := (remaining + smallest.Count - 1) / smallest.Count
		total += float64(n) * smallest.Price
	}

	return total, nil
}

// PriceForCart prices a whole merchandise cart. Quantities of one product
// are aggregated across its variants before pack decomposition, because
// packs bind to the product, not the variant: two Expressions bags and one
// Mosaic bag are three bags for pack purposes.
func PriceForCart(lines []CartLine, lookup *catalog.Lookup) (MerchQuote, error) {
	perProduct := make(map[string]int)
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return MerchQuote{}, apperr.New(apperr.KindValidation,
				fmt.Sprintf("invalid quantity for %s", line.ProductID))
		}
		product, ok := lookup.Product(line.ProductID)
		if !ok {
			return MerchQuote{}, apperr.New(apperr.KindValidation,
				fmt.Sprintf("unknown product %s", line.ProductID))
		}
		if product.HasVariants() {
			if _, ok := product.VariantByID(line.VariantID); !ok {
				return MerchQuote{}, apperr.New(apperr.KindValidation,
					fmt.Sprintf("unknown variant %q of product %s", line.VariantID, line.ProductID))
			}
		} else if line.VariantID != "" {
			return MerchQuote{}, apperr.New(apperr.KindValidation,
				fmt.Sprintf("product %s has no variants", line.ProductID))
		}

		if _, seen := perProduct[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		perProduct[line.ProductID] += line.Quantity
	}

	quote := MerchQuote{}
	for _, productID := range order {
		product, _ := lookup.Product(productID)
		total, err := PriceForProduct(product, perProduct[productID])
		if err != nil {
			return MerchQuote{}, err
		}
		quote.Lines = append(quote.Lines, MerchLineQuote{
			ProductID: productID,
			Quantity:  perProduct[productID],
			Total:     total,
		})
		quote.GrandTotal += total
	}
	return quote, nil
}
