package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stagepass/internal/catalog"
	"stagepass/internal/pricing"
	"stagepass/internal/seatmap"
	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/config"
	"stagepass/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a map-backed cache.Service for tests
type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := m.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (m *memoryCache) Exists(_ context.Context, key string) bool       { _, ok := m.store[key]; return ok }
func (m *memoryCache) Ping(_ context.Context) error                    { return nil }

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

// stubReserved serves a fixed reserved-seat overlay
type stubReserved struct {
	seats []string
}

func (s *stubReserved) GetReservedSeats(_ context.Context) ([]string, error) {
	return s.seats, nil
}

// stubCatalog serves a fixed product list without a database
type stubCatalog struct {
	products []catalog.Product
}

func (s *stubCatalog) GetProducts(_ context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "product "+id)
}

func (s *stubCatalog) GetInventoryLimits(_ context.Context) (map[catalog.LineKey]int, error) {
	return nil, nil
}

func (s *stubCatalog) Lookup(_ context.Context) (*catalog.Lookup, error) {
	return catalog.NewLookup(s.products), nil
}

func (s *stubCatalog) SetCacheService(_ cache.Service) {}

func testService(t *testing.T, reserved ...string) (Service, *memoryCache) {
	t.Helper()
	tz, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)

	layout := seatmap.NewLayout(config.VenueConfig{DeluxeStartRow: 5, DeluxeEndRow: 9})
	seatmapService := seatmap.NewService(layout, &stubReserved{seats: reserved})

	catalogService := &stubCatalog{products: []catalog.Product{
		{
			ID:   "keychain",
			Name: "Enamel Keychain",
			Packs: []catalog.Pack{
				{ProductID: "keychain", Count: 3, Price: 10},
				{ProductID: "keychain", Count: 1, Price: 4},
			},
		},
	}}

	engine := pricing.NewEngine(config.PricingConfig{
		EarlyBirdCutoff:   time.Date(2025, 9, 18, 0, 0, 0, 0, tz),
		Timezone:          tz,
		DeluxeEarlyBird:   35,
		DeluxeStandard:    40,
		DeluxeBundle:      30,
		StandardEarlyBird: 18,
		StandardStandard:  20,
		StandardBundle:    15,
		BundleSize:        6,
	}, layout)
	pricingService := pricing.NewService(engine, catalogService)

	mem := newMemoryCache()
	cfg := config.RedisConfig{SessionTTL: time.Hour}
	return NewService(cfg, mem, seatmapService, pricingService, catalogService), mem
}

func TestToggleSeatAddsAndRemoves(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	c, err := svc.ToggleSeat(ctx, "sid-1", "10-04")
	require.NoError(t, err)
	assert.Equal(t, []string{"10-04"}, c.Seats)

	c, err = svc.ToggleSeat(ctx, "sid-1", "10-06")
	require.NoError(t, err)
	assert.Equal(t, []string{"10-04", "10-06"}, c.Seats)

	c, err = svc.ToggleSeat(ctx, "sid-1", "10-04")
	require.NoError(t, err)
	assert.Equal(t, []string{"10-06"}, c.Seats)
}

func TestToggleSeatRejectsBlockedAndUnknown(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	// Row 1 is fully blocked.
	_, err := svc.ToggleSeat(ctx, "sid-1", "01-05")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Row 17 only has 30 seats.
	_, err = svc.ToggleSeat(ctx, "sid-1", "17-31")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestToggleSeatIsolatesSessions(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ToggleSeat(ctx, "sid-a", "10-04")
	require.NoError(t, err)

	c, err := svc.GetCart(ctx, "sid-b")
	require.NoError(t, err)
	assert.Empty(t, c.Seats)
}

func TestSetMerchLine(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	c, err := svc.SetMerchLine(ctx, "sid-1", pricing.CartLine{ProductID: "keychain", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, c.Merch, 1)
	assert.Equal(t, 2, c.Merch[0].Quantity)

	// Upsert replaces the quantity.
	c, err = svc.SetMerchLine(ctx, "sid-1", pricing.CartLine{ProductID: "keychain", Quantity: 5})
	require.NoError(t, err)
	require.Len(t, c.Merch, 1)
	assert.Equal(t, 5, c.Merch[0].Quantity)

	// Quantity zero removes the line.
	c, err = svc.SetMerchLine(ctx, "sid-1", pricing.CartLine{ProductID: "keychain", Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, c.Merch)
}

func TestSetMerchLineRejectsUnknownProduct(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.SetMerchLine(context.Background(), "sid-1", pricing.CartLine{ProductID: "poster", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCheckoutFreezesHandoff(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ToggleSeat(ctx, "sid-1", "10-04")
	require.NoError(t, err)
	_, err = svc.SetMerchLine(ctx, "sid-1", pricing.CartLine{ProductID: "keychain", Quantity: 4})
	require.NoError(t, err)

	handoff, err := svc.Checkout(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10-04"}, handoff.Seats)
	assert.Equal(t, float64(10+4), handoff.MerchQuote.GrandTotal)
	assert.Equal(t, handoff.Tickets.GrandTotal+handoff.MerchQuote.GrandTotal, handoff.GrandTotal)

	stored, err := svc.GetHandoff(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, handoff.GrandTotal, stored.GrandTotal)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Checkout(context.Background(), "sid-1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCheckoutRejectsGapSelection(t *testing.T) {
	// Seat 10-02 is reserved, so picking 10-06 strands seat 10-04 between
	// two occupied seats.
	svc, _ := testService(t, "10-02")
	ctx := context.Background()

	_, err := svc.ToggleSeat(ctx, "sid-1", "10-06")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "sid-1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NotEmpty(t, apperr.DetailsOf(err))
}

func TestClearRemovesCartAndHandoff(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ToggleSeat(ctx, "sid-1", "10-04")
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "sid-1")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sid-1"))

	c, err := svc.GetCart(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = svc.GetHandoff(ctx, "sid-1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
