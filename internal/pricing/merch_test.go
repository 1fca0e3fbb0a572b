package pricing

import (
	"testing"

	"stagepass/internal/catalog"
	"stagepass/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup() *catalog.Lookup {
	return catalog.NewLookup([]catalog.Product{
		{
			ID:   "keychain",
			Name: "Enamel Keychain",
			Packs: []catalog.Pack{
				{ProductID: "keychain", Count: 3, Price: 10},
				{ProductID: "keychain", Count: 1, Price: 4},
			},
		},
		{
			ID:   "drawstring-bag",
			Name: "Drawstring Bag",
			Packs: []catalog.Pack{
				{ProductID: "drawstring-bag", Count: 2, Price: 10},
				{ProductID: "drawstring-bag", Count: 1, Price: 6},
			},
			Variants: []catalog.Variant{
				{ProductID: "drawstring-bag", ID: "expressions", Name: "Expressions"},
				{ProductID: "drawstring-bag", ID: "mosaic", Name: "Mosaic"},
			},
		},
		{
			ID:   "sticker-sheet",
			Name: "Sticker Sheet",
			Packs: []catalog.Pack{
				{ProductID: "sticker-sheet", Count: 3, Price: 10},
			},
		},
	})
}

func TestPriceForProduct(t *testing.T) {
	lookup := testLookup()
	keychain, _ := lookup.Product("keychain")
	stickers, _ := lookup.Product("sticker-sheet")

	tests := []struct {
		name     string
		product  *catalog.Product
		quantity int
		expected float64
	}{
		{"zero quantity", keychain, 0, 0},
		{"single at unit pack", keychain, 1, 4},
		{"below pack size", keychain, 2, 8},
		{"exact pack", keychain, 3, 10},
		{"pack plus remainder", keychain, 7, 2*10 + 4},
		{"two exact packs", keychain, 6, 20},
		{"no unit pack rounds up", stickers, 4, 20},
		{"no unit pack exact", stickers, 3, 10},
		{"no unit pack single", stickers, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := PriceForProduct(tt.product, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, total)
		})
	}
}

func TestPriceForProductRejectsNegativeQuantity(t *testing.T) {
	lookup := testLookup()
	keychain, _ := lookup.Product("keychain")

	_, err := PriceForProduct(keychain, -1)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPriceForProductIgnoresNonPositivePacks(t *testing.T) {
	// A zero-count catalog row must not break the remainder fallback.
	corrupted := &catalog.Product{
		ID: "sticker-sheet",
		Packs: []catalog.Pack{
			{Count: 3, Price: 10},
			{Count: 0, Price: 99},
		},
	}

	total, err := PriceForProduct(corrupted, 4)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)

	unsellable := &catalog.Product{
		ID:    "sticker-sheet",
		Packs: []catalog.Pack{{Count: 0, Price: 99}},
	}
	_, err = PriceForProduct(unsellable, 1)
	require.Error(t, err)
}

func TestPriceForCartAggregatesVariants(t *testing.T) {
	// One bag of each design forms a complete two-pack.
	quote, err := PriceForCart([]CartLine{
		{ProductID: "drawstring-bag", VariantID: "expressions", Quantity: 1},
		{ProductID: "drawstring-bag", VariantID: "mosaic", Quantity: 1},
	}, testLookup())
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	assert.Equal(t, "drawstring-bag", quote.Lines[0].ProductID)
	assert.Equal(t, 2, quote.Lines[0].Quantity)
	assert.Equal(t, float64(10), quote.GrandTotal)
}

func TestPriceForCartMultipleProducts(t *testing.T) {
	quote, err := PriceForCart([]CartLine{
		{ProductID: "keychain", Quantity: 4},
		{ProductID: "drawstring-bag", VariantID: "mosaic", Quantity: 1},
	}, testLookup())
	require.NoError(t, err)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, float64(10+4), quote.Lines[0].Total)
	assert.Equal(t, float64(6), quote.Lines[1].Total)
	assert.Equal(t, float64(20), quote.GrandTotal)
}

func TestPriceForCartValidation(t *testing.T) {
	lookup := testLookup()

	tests := []struct {
		name  string
		lines []CartLine
	}{
		{"unknown product", []CartLine{{ProductID: "poster", Quantity: 1}}},
		{"unknown variant", []CartLine{{ProductID: "drawstring-bag", VariantID: "galaxy", Quantity: 1}}},
		{"missing variant", []CartLine{{ProductID: "drawstring-bag", Quantity: 1}}},
		{"variant on variantless product", []CartLine{{ProductID: "keychain", VariantID: "red", Quantity: 1}}},
		{"zero quantity", []CartLine{{ProductID: "keychain", Quantity: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceForCart(tt.lines, lookup)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}
