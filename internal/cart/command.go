package cart

import (
	"github.com/google/uuid"

	"storefront/internal/domain"
)

// State is everything the store tracks: the cart itself plus the drawer
// visibility flag. IsOpen is ephemeral and never persisted.
type State struct {
	Cart   domain.Cart
	IsOpen bool
}

// Command is the tagged command type consumed by reduce. Adding a command
// means adding a case to reduce's switch.
type Command interface {
	isCommand()
}

type addItem struct {
	Product  domain.Product
	Variant  domain.ProductVariant
	Quantity int
}

type updateQuantity struct {
	ItemID   string
	Quantity int
}

type removeItem struct {
	ItemID string
}

type clearCart struct{}

type setCart struct {
	Cart domain.Cart
}

type toggleCart struct{}

type openCart struct{}

type closeCart struct{}

func (addItem) isCommand()        {}
func (updateQuantity) isCommand() {}
func (removeItem) isCommand()     {}
func (clearCart) isCommand()      {}
func (setCart) isCommand()        {}
func (toggleCart) isCommand()     {}
func (openCart) isCommand()       {}
func (closeCart) isCommand()      {}

func emptyCart() domain.Cart {
	return domain.Cart{ID: uuid.NewString(), Items: []domain.CartItem{}}
}

// recompute folds over the items to derive both totals. Totals are never
// maintained incrementally, so they cannot drift from the item list.
func recompute(cart domain.Cart) domain.Cart {
	var subtotal int64
	var count int
	for _, item := range cart.Items {
		subtotal += item.Variant.PriceCents * int64(item.Quantity)
		count += item.Quantity
	}
	cart.SubtotalCents = subtotal
	cart.ItemCount = count
	return cart
}

// reduce is the pure transition function. It never touches storage.
func reduce(state State, cmd Command) State {
	switch c := cmd.(type) {
	case addItem:
		items := make([]domain.CartItem, len(state.Cart.Items))
		copy(items, state.Cart.Items)

		merged := false
		for i := range items {
			if items[i].ProductID == c.Product.ID && items[i].VariantID == c.Variant.ID {
				items[i].Quantity += c.Quantity
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, domain.CartItem{
				ID:        uuid.NewString(),
				ProductID: c.Product.ID,
				VariantID: c.Variant.ID,
				Quantity:  c.Quantity,
				Product:   c.Product,
				Variant:   c.Variant,
			})
		}

		state.Cart.Items = items
		state.Cart = recompute(state.Cart)
		state.IsOpen = true
		return state

	case updateQuantity:
		if c.Quantity <= 0 {
			return reduce(state, removeItem{ItemID: c.ItemID})
		}
		items := make([]domain.CartItem, len(state.Cart.Items))
		copy(items, state.Cart.Items)
		for i := range items {
			if items[i].ID == c.ItemID {
				items[i].Quantity = c.Quantity
			}
		}
		state.Cart.Items = items
		state.Cart = recompute(state.Cart)
		return state

	case removeItem:
		items := make([]domain.CartItem, 0, len(state.Cart.Items))
		for _, item := range state.Cart.Items {
			if item.ID != c.ItemID {
				items = append(items, item)
			}
		}
		state.Cart.Items = items
		state.Cart = recompute(state.Cart)
		return state

	case clearCart:
		state.Cart = emptyCart()
		return state

	case setCart:
		state.Cart = recompute(c.Cart)
		return state

	case toggleCart:
		state.IsOpen = !state.IsOpen
		return state

	case openCart:
		state.IsOpen = true
		return state

	case closeCart:
		state.IsOpen = false
		return state
	}
	return state
}
