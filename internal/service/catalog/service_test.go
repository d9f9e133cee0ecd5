package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	collectionrepo "storefront/internal/repository/collection"
	productrepo "storefront/internal/repository/product"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func testService() *Service {
	products := []domain.Product{
		{ID: "1", Slug: "classic-tee", Title: "Classic Tee", Description: "Soft cotton tee",
			PriceCents: 1999, Collections: []string{"new-arrivals", "apparel"}, Tags: []string{"cotton"},
			Available: true, CreatedAt: day(1)},
		{ID: "2", Slug: "leather-bag", Title: "Leather Bag", Description: "Hand stitched",
			PriceCents: 12900, Collections: []string{"accessories"}, Tags: []string{"leather"},
			Available: true, CreatedAt: day(3)},
		{ID: "3", Slug: "wool-scarf", Title: "Wool Scarf", Description: "Warm winter scarf",
			PriceCents: 4500, Collections: []string{"accessories", "new-arrivals"}, Tags: []string{"wool", "winter"},
			Available: false, CreatedAt: day(2)},
	}
	collections := []domain.Collection{
		{ID: "c1", Slug: "new-arrivals", Title: "New Arrivals"},
		{ID: "c2", Slug: "accessories", Title: "Accessories"},
	}
	return New(productrepo.NewMemory(products), collectionrepo.NewMemory(collections))
}

func slugs(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}

func expectSlugs(t *testing.T, got []domain.Product, want ...string) {
	t.Helper()
	have := slugs(got)
	if len(have) != len(want) {
		t.Fatalf("expected %v, got %v", want, have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, have)
		}
	}
}

func TestListProductsFeaturedKeepsCatalogOrder(t *testing.T) {
	got, err := testService().ListProducts(context.Background(), Filter{}, SortFeatured)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	expectSlugs(t, got, "classic-tee", "leather-bag", "wool-scarf")
}

func TestListProductsSorts(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	got, _ := svc.ListProducts(ctx, Filter{}, SortPriceAsc)
	expectSlugs(t, got, "classic-tee", "wool-scarf", "leather-bag")

	got, _ = svc.ListProducts(ctx, Filter{}, SortPriceDesc)
	expectSlugs(t, got, "leather-bag", "wool-scarf", "classic-tee")

	got, _ = svc.ListProducts(ctx, Filter{}, SortNameAsc)
	expectSlugs(t, got, "classic-tee", "leather-bag", "wool-scarf")

	got, _ = svc.ListProducts(ctx, Filter{}, SortNameDesc)
	expectSlugs(t, got, "wool-scarf", "leather-bag", "classic-tee")

	got, _ = svc.ListProducts(ctx, Filter{}, SortNewest)
	expectSlugs(t, got, "leather-bag", "wool-scarf", "classic-tee")
}

func TestListProductsFilters(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	got, _ := svc.ListProducts(ctx, Filter{Collection: "accessories"}, SortFeatured)
	expectSlugs(t, got, "leather-bag", "wool-scarf")

	min := int64(2000)
	got, _ = svc.ListProducts(ctx, Filter{MinPriceCents: &min}, SortFeatured)
	expectSlugs(t, got, "leather-bag", "wool-scarf")

	max := int64(5000)
	got, _ = svc.ListProducts(ctx, Filter{MaxPriceCents: &max}, SortFeatured)
	expectSlugs(t, got, "classic-tee", "wool-scarf")

	available := true
	got, _ = svc.ListProducts(ctx, Filter{Available: &available}, SortFeatured)
	expectSlugs(t, got, "classic-tee", "leather-bag")

	unavailable := false
	got, _ = svc.ListProducts(ctx, Filter{Available: &unavailable}, SortFeatured)
	expectSlugs(t, got, "wool-scarf")
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	got, _ := svc.Search(ctx, "TEE")
	expectSlugs(t, got, "classic-tee")

	got, _ = svc.Search(ctx, "stitched") // description
	expectSlugs(t, got, "leather-bag")

	got, _ = svc.Search(ctx, "Winter") // tag
	expectSlugs(t, got, "wool-scarf")

	got, _ = svc.Search(ctx, "nothing-matches")
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", slugs(got))
	}
}

func TestParseSortDefaultsToFeatured(t *testing.T) {
	if got := ParseSort("price-asc"); got != SortPriceAsc {
		t.Fatalf("unexpected sort %q", got)
	}
	if got := ParseSort("bogus"); got != SortFeatured {
		t.Fatalf("expected featured fallback, got %q", got)
	}
	if got := ParseSort(""); got != SortFeatured {
		t.Fatalf("expected featured fallback, got %q", got)
	}
}

func TestGetProductAndCollection(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	p, err := svc.GetProduct(ctx, "wool-scarf")
	if err != nil || p.Title != "Wool Scarf" {
		t.Fatalf("GetProduct: %+v, %v", p, err)
	}
	if _, err := svc.GetProduct(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	c, err := svc.GetCollection(ctx, "accessories")
	if err != nil || c.Title != "Accessories" {
		t.Fatalf("GetCollection: %+v, %v", c, err)
	}
	if _, err := svc.GetCollection(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	all, err := svc.ListCollections(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListCollections: %+v, %v", all, err)
	}
}

func TestFeaturedAndNewArrivalsHonorLimit(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	got, _ := svc.Featured(ctx, 2)
	expectSlugs(t, got, "classic-tee", "leather-bag")

	got, _ = svc.NewArrivals(ctx, 4)
	expectSlugs(t, got, "wool-scarf", "classic-tee")

	got, _ = svc.NewArrivals(ctx, 1)
	expectSlugs(t, got, "wool-scarf")
}

func TestRelatedSharesCollectionExcludesSelf(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	current, _ := svc.GetProduct(ctx, "wool-scarf")
	got, _ := svc.Related(ctx, *current, 4)
	expectSlugs(t, got, "classic-tee", "leather-bag")

	got, _ = svc.Related(ctx, *current, 1)
	expectSlugs(t, got, "classic-tee")
}
