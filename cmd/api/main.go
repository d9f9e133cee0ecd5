package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/fixture"
	"storefront/internal/httpserver"
	collectionrepo "storefront/internal/repository/collection"
	"storefront/internal/repository/kv"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/catalog"
	"storefront/internal/shopify"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		dbpool      *pgxpool.Pool
		products    productrepo.Repository
		collections collectionrepo.Repository
		cartSlots   kv.Repository
	)
	if cfg.DBConnString == "" {
		logger.Printf("DB_DSN not set, serving the built-in fixture catalog")
		products = productrepo.NewMemory(fixture.Products())
		collections = collectionrepo.NewMemory(fixture.Collections())
		cartSlots = kv.NewMemory()
	} else {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		products = productrepo.NewPostgres(pool, logger)
		collections = collectionrepo.NewPostgres(pool, logger)
		cartSlots = kv.NewPostgres(pool, logger)
	}

	remote := shopify.New(cfg.ShopifyDomain, cfg.ShopifyToken, logger)
	if remote.Enabled() {
		logger.Printf("remote storefront API configured for %s", cfg.ShopifyDomain)
	}

	catalogService := catalog.New(products, collections)
	carts := cart.NewManager(cartSlots, cfg.CartStorageKey, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     catalogService,
		Carts:       carts,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
