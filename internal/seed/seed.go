// Package seed loads the fixture catalog into postgres so the API can serve
// the same demo data it serves in memory mode. Idempotent via slug upserts.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/fixture"
	collectionrepo "storefront/internal/repository/collection"
	productrepo "storefront/internal/repository/product"
)

func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	collections := collectionrepo.NewPostgres(pool, logger)
	for i, c := range fixture.Collections() {
		// Fixture ids are human-readable slugs, not uuids; let postgres assign.
		c.ID = ""
		if err := collections.Upsert(ctx, c, i); err != nil {
			return fmt.Errorf("upsert collection %s: %w", c.Slug, err)
		}
	}

	products := productrepo.NewPostgres(pool, logger)
	for i, p := range fixture.Products() {
		p.ID = ""
		if _, err := products.Upsert(ctx, p, i); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}
