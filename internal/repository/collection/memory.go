package collection

import (
	"context"

	"storefront/internal/domain"
)

type memoryRepo struct {
	collections []domain.Collection
}

func NewMemory(collections []domain.Collection) Repository {
	return &memoryRepo{collections: collections}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, len(r.collections))
	copy(out, r.collections)
	return out, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Collection, error) {
	for i := range r.collections {
		if r.collections[i].Slug == slug {
			c := r.collections[i]
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}
