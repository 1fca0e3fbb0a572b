package catalog

import (
	"context"
	"fmt"

	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/constants"
	"stagepass/pkg/cache"
)

// Service defines the contract for catalog reads
type Service interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetInventoryLimits(ctx context.Context) (map[LineKey]int, error)

	// Lookup returns an indexed view of the whole catalog for pricing and
	// availability checks.
	Lookup(ctx context.Context) (*Lookup, error)

	SetCacheService(cacheService cache.Service)
}

// LineKey identifies one sellable inventory position. VariantID is empty
// for variantless products.
type LineKey struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
}

func (k LineKey) String() string {
	if k.VariantID == "" {
		return k.ProductID
	}
	return fmt.Sprintf("%s/%s", k.ProductID, k.VariantID)
}

// Lookup is an in-memory index over the catalog
type Lookup struct {
	products map[string]*Product
}

// Product finds a product by id
func (l *Lookup) Product(id string) (*Product, bool) {
	p, ok := l.products[id]
	return p, ok
}

// Products returns every product in the index
func (l *Lookup) Products() []*Product {
	out := make([]*Product, 0, len(l.products))
	for _, p := range l.products {
		out = append(out, p)
	}
	return out
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new catalog service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetProducts(ctx context.Context) ([]Product, error) {
	if s.cacheService != nil {
		var products []Product
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_PRODUCT_CATALOG, constants.TTL_STATIC_LONG,
			func() (interface{}, error) {
				return s.repo.GetProducts(ctx)
			}, &products)
		if err == nil {
			return products, nil
		}
	}
	products, err := s.repo.GetProducts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to load product catalog", err)
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("product %s", id), err)
	}
	return product, nil
}

func (s *service) GetInventoryLimits(ctx context.Context) (map[LineKey]int, error) {
	limits, err := s.repo.GetInventoryLimits(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to load inventory limits", err)
	}
	out := make(map[LineKey]int, len(limits))
	for _, l := range limits {
		out[LineKey{ProductID: l.ProductID, VariantID: l.VariantID}] = l.MaxQuantity
	}
	return out, nil
}

func (s *service) Lookup(ctx context.Context) (*Lookup, error) {
	products, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return NewLookup(products), nil
}

// NewLookup builds the in-memory catalog index
func NewLookup(products []Product) *Lookup {
	idx := &Lookup{products: make(map[string]*Product, len(products))}
	for i := range products {
		idx.products[products[i].ID] = &products[i]
	}
	return idx
}
