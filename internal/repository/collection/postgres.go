package collection

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

const collectionColumns = `
c.id::text, c.slug, c.title, COALESCE(c.description, ''), c.image,
(SELECT count(*) FROM products p WHERE c.slug = ANY(p.collections))
`

func scanCollection(row pgx.Row) (domain.Collection, error) {
	var c domain.Collection
	err := row.Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.Image, &c.ProductCount)
	return c, err
}

func (r *Postgres) List(ctx context.Context) ([]domain.Collection, error) {
	const q = `SELECT ` + collectionColumns + ` FROM collections c ORDER BY c.position`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("collection repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("collection repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *Postgres) GetBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	const q = `SELECT ` + collectionColumns + ` FROM collections c WHERE c.slug = $1`
	c, err := scanCollection(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("collection repo: get slug=%s not found", slug)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("collection repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return &c, nil
}

// Upsert inserts or replaces a collection by slug, for the seeder.
func (r *Postgres) Upsert(ctx context.Context, c domain.Collection, position int) error {
	const q = `
INSERT INTO collections (id, slug, title, description, image, position)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6)
ON CONFLICT (slug) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    position = EXCLUDED.position
`
	if _, err := r.pool.Exec(ctx, q, c.ID, c.Slug, c.Title, c.Description, c.Image, position); err != nil {
		r.logger.Printf("collection repo: upsert slug=%s error=%v", c.Slug, err)
		return err
	}
	return nil
}
