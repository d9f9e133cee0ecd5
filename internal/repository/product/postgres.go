package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type Postgres struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *Postgres {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Postgres{pool: pool, logger: logger}
}

const productColumns = `
id::text, slug, title, COALESCE(description, ''), price_cents, compare_at_price_cents,
images, variants, collections, tags, available, created_at
`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.PriceCents,
		&p.CompareAtPriceCents,
		&p.Images,
		&p.Variants,
		&p.Collections,
		&p.Tags,
		&p.Available,
		&p.CreatedAt,
	)
	return p, err
}

// List returns the catalog in insertion order; "featured" sorting relies on
// this being stable.
func (r *Postgres) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY position, created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *Postgres) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get slug=%s not found", slug)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or replaces a product by slug. Used by the seeder and the
// CSV importer.
func (r *Postgres) Upsert(ctx context.Context, p domain.Product, position int) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, title, description, price_cents, compare_at_price_cents, images, variants, collections, tags, available, position)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (slug) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    compare_at_price_cents = EXCLUDED.compare_at_price_cents,
    images = EXCLUDED.images,
    variants = EXCLUDED.variants,
    collections = EXCLUDED.collections,
    tags = EXCLUDED.tags,
    available = EXCLUDED.available,
    position = EXCLUDED.position
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID,
		p.Slug,
		p.Title,
		p.Description,
		p.PriceCents,
		p.CompareAtPriceCents,
		p.Images,
		p.Variants,
		p.Collections,
		p.Tags,
		p.Available,
		position,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%s", res.Slug, res.ID)
	return &res, nil
}
