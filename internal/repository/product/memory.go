package product

import (
	"context"

	"storefront/internal/domain"
)

type memoryRepo struct {
	products []domain.Product
}

// NewMemory serves a fixed product list from memory, in the given order.
func NewMemory(products []domain.Product) Repository {
	return &memoryRepo{products: products}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].Slug == slug {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}
