// Package catalog answers every storefront read: product listing with
// filtering and sorting, lookups by slug, collections, and search. Filtering
// and sorting happen in process over the repository's list; catalogs here are
// small and this keeps both repository implementations identical in behavior.
package catalog

import (
	"context"
	"sort"
	"strings"

	"storefront/internal/domain"
	collectionrepo "storefront/internal/repository/collection"
	productrepo "storefront/internal/repository/product"
)

// Sort selects a product ordering. Featured preserves catalog order.
type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
	SortNewest    Sort = "newest"
)

// ParseSort maps a query-string value to a Sort, defaulting to featured.
func ParseSort(v string) Sort {
	switch Sort(v) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return Sort(v)
	default:
		return SortFeatured
	}
}

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	Collection    string
	MinPriceCents *int64
	MaxPriceCents *int64
	Available     *bool
	Search        string
}

type Service struct {
	products    productrepo.Repository
	collections collectionrepo.Repository
}

func New(products productrepo.Repository, collections collectionrepo.Repository) *Service {
	return &Service{products: products, collections: collections}
}

func (s *Service) ListProducts(ctx context.Context, filter Filter, order Sort) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	products = applyFilter(products, filter)
	sortProducts(products, order)
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

func (s *Service) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.collections.List(ctx)
}

func (s *Service) GetCollection(ctx context.Context, slug string) (*domain.Collection, error) {
	return s.collections.GetBySlug(ctx, slug)
}

// Search matches the query case-insensitively against title, description and
// tags, in featured order.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.ListProducts(ctx, Filter{Search: query}, SortFeatured)
}

// CollectionProducts lists one collection's products.
func (s *Service) CollectionProducts(ctx context.Context, slug string, order Sort) ([]domain.Product, error) {
	return s.ListProducts(ctx, Filter{Collection: slug}, order)
}

// Featured returns the first products in catalog order, for the homepage.
func (s *Service) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx, Filter{}, SortFeatured)
	if err != nil {
		return nil, err
	}
	return truncate(products, limit), nil
}

// NewArrivals returns the newest products from the new-arrivals collection.
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx, Filter{Collection: "new-arrivals"}, SortNewest)
	if err != nil {
		return nil, err
	}
	return truncate(products, limit), nil
}

// Related returns products sharing a collection with the given one, the
// product itself excluded.
func (s *Service) Related(ctx context.Context, current domain.Product, limit int) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx, Filter{}, SortFeatured)
	if err != nil {
		return nil, err
	}
	var related []domain.Product
	for _, p := range products {
		if p.ID == current.ID {
			continue
		}
		if sharesCollection(p.Collections, current.Collections) {
			related = append(related, p)
		}
	}
	return truncate(related, limit), nil
}

func applyFilter(products []domain.Product, filter Filter) []domain.Product {
	out := products[:0:0]
	search := strings.ToLower(filter.Search)
	for _, p := range products {
		if filter.Collection != "" && !contains(p.Collections, filter.Collection) {
			continue
		}
		if filter.MinPriceCents != nil && p.PriceCents < *filter.MinPriceCents {
			continue
		}
		if filter.MaxPriceCents != nil && p.PriceCents > *filter.MaxPriceCents {
			continue
		}
		if filter.Available != nil && p.Available != *filter.Available {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, order Sort) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents < products[j].PriceCents })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents > products[j].PriceCents })
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Title < products[j].Title })
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Title > products[j].Title })
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

func sharesCollection(a, b []string) bool {
	for _, s := range a {
		if contains(b, s) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func truncate(products []domain.Product, limit int) []domain.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
