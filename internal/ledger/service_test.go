package ledger

import (
	"context"
	"testing"
	"time"

	"stagepass/internal/catalog"
	"stagepass/internal/pricing"
	"stagepass/internal/shared/apperr"
	"stagepass/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for service tests
type fakeRepo struct {
	held    map[string]uuid.UUID
	byOwner map[uuid.UUID][]string
}

func newFakeRepo(taken ...string) *fakeRepo {
	r := &fakeRepo{held: make(map[string]uuid.UUID), byOwner: make(map[uuid.UUID][]string)}
	owner := uuid.New()
	for _, code := range taken {
		r.held[code] = owner
		r.byOwner[owner] = append(r.byOwner[owner], code)
	}
	return r
}

func (r *fakeRepo) GetReservedSeats(_ context.Context) ([]string, error) {
	codes := make([]string, 0, len(r.held))
	for code := range r.held {
		codes = append(codes, code)
	}
	return codes, nil
}

func (r *fakeRepo) CheckSeatsAvailable(_ context.Context, seats []string) ([]string, error) {
	var taken []string
	for _, code := range seats {
		if _, ok := r.held[code]; ok {
			taken = append(taken, code)
		}
	}
	return taken, nil
}

func (r *fakeRepo) ReserveSeats(_ context.Context, bookingID uuid.UUID, _ string, seats []string) error {
	var taken []string
	for _, code := range seats {
		if _, ok := r.held[code]; ok {
			taken = append(taken, code)
		}
	}
	if len(taken) > 0 {
		return &ErrSeatsTaken{Taken: taken}
	}
	for _, code := range seats {
		r.held[code] = bookingID
		r.byOwner[bookingID] = append(r.byOwner[bookingID], code)
	}
	return nil
}

func (r *fakeRepo) ConfirmForBooking(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeRepo) ReleaseForBooking(_ context.Context, bookingID uuid.UUID) (int64, error) {
	codes := r.byOwner[bookingID]
	for _, code := range codes {
		delete(r.held, code)
	}
	delete(r.byOwner, bookingID)
	return int64(len(codes)), nil
}

func (r *fakeRepo) ExpireStale(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func (r *fakeRepo) GetSeatsForBooking(_ context.Context, bookingID uuid.UUID) ([]ReservedSeat, error) {
	var rows []ReservedSeat
	for _, code := range r.byOwner[bookingID] {
		rows = append(rows, ReservedSeat{SeatCode: code, BookingID: bookingID, Status: StatusPending})
	}
	return rows, nil
}

// stubCatalog serves a fixed catalog with a bundle product
type stubCatalog struct {
	products []catalog.Product
	limits   map[catalog.LineKey]int
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
	return s.limits, nil
}

func (s *stubCatalog) Lookup(_ context.Context) (*catalog.Lookup, error) {
	return catalog.NewLookup(s.products), nil
}

func (s *stubCatalog) SetCacheService(_ cache.Service) {}

// stubSold serves fixed previously sold merchandise lines
type stubSold struct {
	lines []pricing.CartLine
}

func (s *stubSold) SoldMerchLines(_ context.Context) ([]pricing.CartLine, error) {
	return s.lines, nil
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		products: []catalog.Product{
			{ID: "keychain", Name: "Enamel Keychain"},
			{
				ID:   "drawstring-bag",
				Name: "Drawstring Bag",
				Variants: []catalog.Variant{
					{ProductID: "drawstring-bag", ID: "expressions"},
					{ProductID: "drawstring-bag", ID: "mosaic"},
				},
			},
			{
				ID:   "halloween-bundle",
				Name: "Halloween Bundle",
				Variants: []catalog.Variant{
					{ProductID: "halloween-bundle", ID: "expressions"},
					{ProductID: "halloween-bundle", ID: "mosaic"},
				},
				BundleComponents: []catalog.BundleComponent{
					{BundleProductID: "halloween-bundle", ComponentProductID: "keychain", InheritVariant: false},
					{BundleProductID: "halloween-bundle", ComponentProductID: "drawstring-bag", InheritVariant: true},
				},
			},
		},
		limits: map[catalog.LineKey]int{
			{ProductID: "keychain"}: 10,
			{ProductID: "drawstring-bag", VariantID: "expressions"}: 3,
			{ProductID: "drawstring-bag", VariantID: "mosaic"}:      3,
		},
	}
}

func TestDecomposeLinesBundle(t *testing.T) {
	lookup := catalog.NewLookup(testCatalog().products)

	out, err := decomposeLines([]pricing.CartLine{
		{ProductID: "halloween-bundle", VariantID: "mosaic", Quantity: 2},
		{ProductID: "keychain", Quantity: 1},
	}, lookup)
	require.NoError(t, err)

	// The bundle SKU itself never appears in inventory keys.
	assert.Equal(t, map[catalog.LineKey]int{
		{ProductID: "keychain"}: 3,
		{ProductID: "drawstring-bag", VariantID: "mosaic"}: 2,
	}, out)
}

func TestCheckAvailabilityReportsEverything(t *testing.T) {
	repo := newFakeRepo("10-04")
	svc := NewService(repo, testCatalog(), &stubSold{lines: []pricing.CartLine{
		{ProductID: "drawstring-bag", VariantID: "expressions", Quantity: 2},
	}})

	err := svc.CheckAvailability(context.Background(),
		[]string{"10-04", "10-06"},
		[]pricing.CartLine{
			{ProductID: "drawstring-bag", VariantID: "expressions", Quantity: 2},
		})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	details := apperr.DetailsOf(err)
	require.Len(t, details, 2)
	assert.Contains(t, details[0], "10-04")
	assert.Contains(t, details[1], "drawstring-bag/expressions")
	assert.Contains(t, details[1], "only 1 left")
}

func TestCheckAvailabilityBundleConsumesComponents(t *testing.T) {
	// Two expressions bags already sold leaves one; a bundle inheriting
	// the expressions variant needs one more bag than remains... first
	// verify the passing case, then the conflict.
	svc := NewService(newFakeRepo(), testCatalog(), &stubSold{lines: []pricing.CartLine{
		{ProductID: "drawstring-bag", VariantID: "expressions", Quantity: 2},
	}})

	err := svc.CheckAvailability(context.Background(), nil, []pricing.CartLine{
		{ProductID: "halloween-bundle", VariantID: "expressions", Quantity: 1},
	})
	assert.NoError(t, err)

	err = svc.CheckAvailability(context.Background(), nil, []pricing.CartLine{
		{ProductID: "halloween-bundle", VariantID: "expressions", Quantity: 2},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCheckAvailabilityUnlimitedItems(t *testing.T) {
	cat := testCatalog()
	delete(cat.limits, catalog.LineKey{ProductID: "keychain"})
	svc := NewService(newFakeRepo(), cat, &stubSold{})

	err := svc.CheckAvailability(context.Background(), nil, []pricing.CartLine{
		{ProductID: "keychain", Quantity: 500},
	})
	assert.NoError(t, err)
}

func TestReserveSeatsConflict(t *testing.T) {
	svc := NewService(newFakeRepo("10-04"), testCatalog(), &stubSold{})

	err := svc.ReserveSeats(context.Background(), uuid.New(), "shopper@example.com", []string{"10-04", "10-06"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, apperr.DetailsOf(err)[0], "10-04")
}

func TestReserveThenRelease(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testCatalog(), &stubSold{})
	bookingID := uuid.New()

	require.NoError(t, svc.ReserveSeats(context.Background(), bookingID, "shopper@example.com", []string{"10-04", "10-06"}))

	// The same seats are now conflicts for anyone else.
	err := svc.ReserveSeats(context.Background(), uuid.New(), "other@example.com", []string{"10-06"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	released, err := svc.ReleaseForBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)

	require.NoError(t, svc.ReserveSeats(context.Background(), uuid.New(), "other@example.com", []string{"10-06"}))
}
