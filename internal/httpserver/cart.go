package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

type cartResponse struct {
	Cart    domain.Cart `json:"cart"`
	IsOpen  bool        `json:"isOpen"`
	Message string      `json:"message,omitempty"`
}

func toCartResponse(state cart.State, message string) cartResponse {
	return cartResponse{Cart: state.Cart, IsOpen: state.IsOpen, Message: message}
}

func sessionStore(c *gin.Context, deps Deps) *cart.Store {
	return deps.Carts.ForSession(c.Request.Context(), sessionID(c))
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartResponse(sessionStore(c, deps).State(), ""))
	}
}

type addItemRequest struct {
	Slug      string `json:"slug"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Slug == "" || req.VariantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug and variantId are required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		product, err := deps.Catalog.GetProduct(c.Request.Context(), req.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "product")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}
		variant := product.Variant(req.VariantID)
		if variant == nil {
			notFound(c, "variant")
			return
		}

		state, err := sessionStore(c, deps).AddItem(c.Request.Context(), *product, *variant, req.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(state, fmt.Sprintf("%s added to cart", product.Title)))
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		state := sessionStore(c, deps).UpdateQuantity(c.Request.Context(), c.Param("itemID"), req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(state, ""))
	}
}

func removeCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessionStore(c, deps)
		itemID := c.Param("itemID")

		// Name the removed product in the confirmation; absent ids stay silent.
		var message string
		for _, item := range store.State().Cart.Items {
			if item.ID == itemID {
				message = fmt.Sprintf("%s removed from cart", item.Product.Title)
				break
			}
		}
		state := store.RemoveItem(c.Request.Context(), itemID)
		c.JSON(http.StatusOK, toCartResponse(state, message))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := sessionStore(c, deps).Clear(c.Request.Context())
		c.JSON(http.StatusOK, toCartResponse(state, ""))
	}
}

type visibilityAction int

const (
	visibilityOpen visibilityAction = iota
	visibilityClose
	visibilityToggle
)

func visibilityHandler(deps Deps, action visibilityAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessionStore(c, deps)
		var state cart.State
		switch action {
		case visibilityOpen:
			state = store.Open(c.Request.Context())
		case visibilityClose:
			state = store.Close(c.Request.Context())
		default:
			state = store.Toggle(c.Request.Context())
		}
		c.JSON(http.StatusOK, toCartResponse(state, ""))
	}
}
