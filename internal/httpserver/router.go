package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/cart"
	"storefront/internal/service/catalog"
)

// Deps carries the services the routes need.
type Deps struct {
	Catalog     *catalog.Service
	Carts       *cart.Manager
	CORSOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:slug", getProductHandler(deps.Catalog))
	api.GET("/products/:slug/options", productOptionsHandler(deps.Catalog))
	api.GET("/products/:slug/variant", resolveVariantHandler(deps.Catalog))
	api.GET("/products/:slug/related", relatedProductsHandler(deps.Catalog))
	api.GET("/collections", listCollectionsHandler(deps.Catalog))
	api.GET("/collections/:slug", getCollectionHandler(deps.Catalog))
	api.GET("/collections/:slug/products", collectionProductsHandler(deps.Catalog))
	api.GET("/featured", featuredProductsHandler(deps.Catalog))
	api.GET("/new-arrivals", newArrivalsHandler(deps.Catalog))
	api.GET("/search", searchHandler(deps.Catalog))

	cartRoutes := api.Group("/cart")
	cartRoutes.Use(sessionMiddleware())
	cartRoutes.GET("", getCartHandler(deps))
	cartRoutes.DELETE("", clearCartHandler(deps))
	cartRoutes.POST("/items", addCartItemHandler(deps))
	cartRoutes.PATCH("/items/:itemID", updateCartItemHandler(deps))
	cartRoutes.DELETE("/items/:itemID", removeCartItemHandler(deps))
	cartRoutes.POST("/open", visibilityHandler(deps, visibilityOpen))
	cartRoutes.POST("/close", visibilityHandler(deps, visibilityClose))
	cartRoutes.POST("/toggle", visibilityHandler(deps, visibilityToggle))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Session-ID")
	cfg.AddExposeHeaders("X-Session-ID")
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
