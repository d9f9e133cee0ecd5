// Package cart holds the storefront cart: a pure reducer over tagged
// commands, wrapped by a Store that serializes mutations and persists the
// cart to a durable key-value slot after every change.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

// Notifier receives user-visible confirmations such as "Shirt added to cart".
type Notifier func(message string)

type Store struct {
	mu     sync.Mutex
	state  State
	slot   kv.Repository
	key    string
	logger *log.Logger
	notify Notifier
}

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithNotifier installs the confirmation hook. The default logs.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// NewStore builds a store bound to one slot key and rehydrates it. A missing
// slot starts an empty cart; an unreadable or malformed slot is logged and
// also falls back to an empty cart, never surfaced to the user.
func NewStore(ctx context.Context, slot kv.Repository, key string, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    key,
		logger: log.New(io.Discard, "", 0),
		state:  State{Cart: emptyCart()},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notify == nil {
		s.notify = func(message string) { s.logger.Printf("cart: %s", message) }
	}

	saved, err := s.loadSaved(ctx)
	switch {
	case err == nil:
		s.state = reduce(s.state, setCart{Cart: saved})
	case errors.Is(err, domain.ErrNotFound):
		// First visit, nothing stored yet.
	default:
		s.logger.Printf("cart: failed to restore saved cart key=%s: %v", s.key, err)
	}
	return s
}

// loadSaved reads and decodes the persisted cart. The error distinguishes
// absent from malformed so the caller can decide what to log.
func (s *Store) loadSaved(ctx context.Context) (domain.Cart, error) {
	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return domain.Cart{}, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode saved cart: %w", err)
	}
	if cart.ID == "" {
		return domain.Cart{}, errors.New("saved cart has no id")
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	out := s.state
	out.Cart.Items = make([]domain.CartItem, len(s.state.Cart.Items))
	copy(out.Cart.Items, s.state.Cart.Items)
	return out
}

// AddItem merges into an existing line for the same product+variant pair or
// appends a new line, opens the cart, and emits a confirmation.
func (s *Store) AddItem(ctx context.Context, product domain.Product, variant domain.ProductVariant, quantity int) (State, error) {
	if quantity < 1 {
		return s.State(), errors.New("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, addItem{Product: product, Variant: variant, Quantity: quantity})
	s.notify(fmt.Sprintf("%s added to cart", product.Title))
	return s.snapshot(), nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
// An unknown item id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, updateQuantity{ItemID: itemID, Quantity: quantity})
	return s.snapshot()
}

// RemoveItem drops a line and emits a confirmation naming the removed
// product. An unknown item id is a silent no-op.
func (s *Store) RemoveItem(ctx context.Context, itemID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed *domain.CartItem
	for i := range s.state.Cart.Items {
		if s.state.Cart.Items[i].ID == itemID {
			removed = &s.state.Cart.Items[i]
			break
		}
	}
	s.apply(ctx, removeItem{ItemID: itemID})
	if removed != nil {
		s.notify(fmt.Sprintf("%s removed from cart", removed.Product.Title))
	}
	return s.snapshot()
}

// Clear replaces the cart with a fresh empty one under a new id.
func (s *Store) Clear(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, clearCart{})
	return s.snapshot()
}

func (s *Store) Toggle(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, toggleCart{})
	return s.snapshot()
}

func (s *Store) Open(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, openCart{})
	return s.snapshot()
}

func (s *Store) Close(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, closeCart{})
	return s.snapshot()
}

// apply runs a command through the reducer and persists the cart when it
// changed. Persistence failures are logged, not surfaced: the in-memory cart
// stays authoritative for the session. Callers hold s.mu.
func (s *Store) apply(ctx context.Context, cmd Command) {
	before := s.state.Cart
	s.state = reduce(s.state, cmd)
	if sameCart(before, s.state.Cart) {
		return
	}
	raw, err := json.Marshal(s.state.Cart)
	if err != nil {
		s.logger.Printf("cart: encode cart key=%s: %v", s.key, err)
		return
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		s.logger.Printf("cart: persist cart key=%s: %v", s.key, err)
	}
}

// sameCart detects whether a command changed the cart. Lines are immutable
// apart from quantity, so id and quantity cover every mutation.
func sameCart(a, b domain.Cart) bool {
	if a.ID != b.ID || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i].ID != b.Items[i].ID || a.Items[i].Quantity != b.Items[i].Quantity {
			return false
		}
	}
	return true
}
