package collection

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Collection, error)
}
