package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
	"storefront/internal/variant"
)

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.Filter{
			Collection: c.Query("collection"),
			Search:     c.Query("q"),
		}
		if v := c.Query("minPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be an integer cent amount"})
				return
			}
			filter.MinPriceCents = &cents
		}
		if v := c.Query("maxPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be an integer cent amount"})
				return
			}
			filter.MaxPriceCents = &cents
		}
		if v := c.Query("available"); v != "" {
			available, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "available must be a boolean"})
				return
			}
			filter.Available = &available
		}

		products, err := svc.ListProducts(c.Request.Context(), filter, catalog.ParseSort(c.Query("sort")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(products), "total": len(products)})
	}
}

func getProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "product")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type optionValueView struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

type optionGroupView struct {
	Name   string            `json:"name"`
	Values []optionValueView `json:"values"`
}

// productOptionsHandler renders one control group per option name. The
// current selection comes from the query string (?Color=Red&Size=M);
// availability of each value is judged against that selection with the value
// substituted in.
func productOptionsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "product")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}

		groups := variant.Options(product.Variants)
		selection := selectionFromQuery(c, groups)

		views := make([]optionGroupView, 0, len(groups))
		for _, group := range groups {
			view := optionGroupView{Name: group.Name, Values: make([]optionValueView, 0, len(group.Values))}
			for _, value := range group.Values {
				view.Values = append(view.Values, optionValueView{
					Value:     value,
					Available: variant.IsAvailable(product.Variants, selection, group.Name, value),
					Selected:  selection[group.Name] == value,
				})
			}
			views = append(views, view)
		}
		c.JSON(http.StatusOK, gin.H{"options": views})
	}
}

// resolveVariantHandler maps a complete query-string selection to the unique
// matching variant, or 404 when the combination does not exist.
func resolveVariantHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "product")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}

		selection := selectionFromQuery(c, variant.Options(product.Variants))
		resolved := variant.Resolve(product.Variants, selection)
		if resolved == nil {
			notFound(c, "variant")
			return
		}
		c.JSON(http.StatusOK, resolved)
	}
}

func selectionFromQuery(c *gin.Context, groups []variant.OptionGroup) variant.Selection {
	selection := make(variant.Selection)
	for _, group := range groups {
		if v := c.Query(group.Name); v != "" {
			selection[group.Name] = v
		}
	}
	return selection
}

func relatedProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "product")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}
		related, err := svc.Related(c.Request.Context(), *product, limitParam(c, 4))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "related products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(related)})
	}
}

func listCollectionsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		collections, err := svc.ListCollections(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list collections"})
			return
		}
		if collections == nil {
			collections = []domain.Collection{}
		}
		c.JSON(http.StatusOK, gin.H{"collections": collections})
	}
}

func getCollectionHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, err := svc.GetCollection(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "collection")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get collection"})
			return
		}
		c.JSON(http.StatusOK, collection)
	}
}

func collectionProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if _, err := svc.GetCollection(c.Request.Context(), slug); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "collection")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get collection"})
			return
		}
		products, err := svc.CollectionProducts(c.Request.Context(), slug, catalog.ParseSort(c.Query("sort")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "collection products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(products), "total": len(products)})
	}
}

func featuredProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Featured(c.Request.Context(), limitParam(c, 4))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "featured products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(products)})
	}
}

func newArrivalsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.NewArrivals(c.Request.Context(), limitParam(c, 8))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "new arrivals"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(products)})
	}
}

func searchHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		products, err := svc.Search(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": emptyIfNil(products), "total": len(products)})
	}
}

func limitParam(c *gin.Context, def int) int {
	v := c.Query("limit")
	if v == "" {
		return def
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 1 {
		return def
	}
	return limit
}

func emptyIfNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
