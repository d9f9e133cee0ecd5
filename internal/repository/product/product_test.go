package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestMemoryListPreservesOrder(t *testing.T) {
	repo := NewMemory([]domain.Product{
		{ID: "1", Slug: "alpha"},
		{ID: "2", Slug: "beta"},
	})
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "alpha" || got[1].Slug != "beta" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestMemoryGetBySlug(t *testing.T) {
	repo := NewMemory([]domain.Product{{ID: "1", Slug: "alpha", Title: "Alpha"}})

	p, err := repo.GetBySlug(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if p.Title != "Alpha" {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := repo.GetBySlug(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	repo := NewPostgres(pool, nil)
	compareAt := int64(2999)
	in := domain.Product{
		Slug:                "classic-tee",
		Title:               "Classic Tee",
		Description:         "Soft cotton tee",
		PriceCents:          1999,
		CompareAtPriceCents: &compareAt,
		Images:              []domain.ProductImage{{ID: "img1", URL: "https://cdn.example/tee.jpg"}},
		Variants: []domain.ProductVariant{
			{ID: "v1", Title: "Red / M", PriceCents: 1999, Available: true, SKU: "TEE-R-M",
				Options: []domain.SelectedOption{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "M"}}},
		},
		Collections: []string{"new-arrivals"},
		Tags:        []string{"tee", "cotton"},
		Available:   true,
	}
	created, err := repo.Upsert(ctx, in, 0)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	fetched, err := repo.GetBySlug(ctx, "classic-tee")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if fetched.Title != "Classic Tee" || len(fetched.Variants) != 1 || fetched.Variants[0].SKU != "TEE-R-M" {
		t.Fatalf("unexpected product %+v", fetched)
	}
	if fetched.CompareAtPriceCents == nil || *fetched.CompareAtPriceCents != 2999 {
		t.Fatalf("compare-at price not round-tripped: %+v", fetched.CompareAtPriceCents)
	}

	if _, err := repo.GetBySlug(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
