package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

func testProduct(id string, priceCents int64) (domain.Product, domain.ProductVariant) {
	variant := domain.ProductVariant{
		ID:         id + "-v1",
		Title:      "Default",
		PriceCents: priceCents,
		Available:  true,
		SKU:        "SKU-" + id,
	}
	product := domain.Product{
		ID:         id,
		Slug:       id,
		Title:      "Product " + id,
		PriceCents: priceCents,
		Variants:   []domain.ProductVariant{variant},
		Available:  true,
	}
	return product, variant
}

func checkTotals(t *testing.T, state State) {
	t.Helper()
	var subtotal int64
	var count int
	for _, item := range state.Cart.Items {
		subtotal += item.Variant.PriceCents * int64(item.Quantity)
		count += item.Quantity
	}
	if state.Cart.SubtotalCents != subtotal {
		t.Fatalf("subtotal drifted: have %d want %d", state.Cart.SubtotalCents, subtotal)
	}
	if state.Cart.ItemCount != count {
		t.Fatalf("item count drifted: have %d want %d", state.Cart.ItemCount, count)
	}
}

func TestAddItemOpensCartAndComputesTotals(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")

	product, variant := testProduct("p1", 1999)
	state, err := store.AddItem(ctx, product, variant, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !state.IsOpen {
		t.Fatalf("adding should open the cart")
	}
	if len(state.Cart.Items) != 1 || state.Cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", state.Cart.Items)
	}
	if state.Cart.SubtotalCents != 3998 || state.Cart.ItemCount != 2 {
		t.Fatalf("unexpected totals %+v", state.Cart)
	}
	checkTotals(t, state)
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 500)

	if _, err := store.AddItem(ctx, product, variant, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	state, err := store.AddItem(ctx, product, variant, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(state.Cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(state.Cart.Items))
	}
	if state.Cart.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", state.Cart.Items[0].Quantity)
	}
	checkTotals(t, state)
}

func TestAddItemDistinctVariantsGetOwnLines(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 500)
	other := variant
	other.ID = "p1-v2"

	store.AddItem(ctx, product, variant, 1)
	state, _ := store.AddItem(ctx, product, other, 1)
	if len(state.Cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Cart.Items))
	}
	if state.Cart.Items[0].ID == state.Cart.Items[1].ID {
		t.Fatalf("line ids must be unique")
	}
	checkTotals(t, state)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 500)

	if _, err := store.AddItem(ctx, product, variant, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := store.AddItem(ctx, product, variant, -2); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
	if state := store.State(); len(state.Cart.Items) != 0 {
		t.Fatalf("rejected add must not touch the cart: %+v", state.Cart.Items)
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 100)
	state, _ := store.AddItem(ctx, product, variant, 5)
	itemID := state.Cart.Items[0].ID

	state = store.UpdateQuantity(ctx, itemID, 2)
	if state.Cart.Items[0].Quantity != 2 {
		t.Fatalf("expected absolute set to 2, got %d", state.Cart.Items[0].Quantity)
	}
	checkTotals(t, state)
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, qty := range []int{0, -5} {
		ctx := context.Background()
		store := NewStore(ctx, kv.NewMemory(), "cart")
		product, variant := testProduct("p1", 100)
		state, _ := store.AddItem(ctx, product, variant, 3)
		itemID := state.Cart.Items[0].ID

		state = store.UpdateQuantity(ctx, itemID, qty)
		if len(state.Cart.Items) != 0 {
			t.Fatalf("quantity %d should remove the line, got %+v", qty, state.Cart.Items)
		}
		if state.Cart.SubtotalCents != 0 || state.Cart.ItemCount != 0 {
			t.Fatalf("totals should reset, got %+v", state.Cart)
		}
	}
}

func TestUnknownItemIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	notices := 0
	store := NewStore(ctx, kv.NewMemory(), "cart", WithNotifier(func(string) { notices++ }))
	product, variant := testProduct("p1", 250)
	before, _ := store.AddItem(ctx, product, variant, 2)
	noticesAfterAdd := notices

	state := store.RemoveItem(ctx, "nonexistent")
	if len(state.Cart.Items) != 1 || state.Cart.SubtotalCents != before.Cart.SubtotalCents || state.Cart.ItemCount != before.Cart.ItemCount {
		t.Fatalf("remove of unknown id must not change the cart: %+v", state.Cart)
	}
	if notices != noticesAfterAdd {
		t.Fatalf("no confirmation expected for unknown id")
	}

	state = store.UpdateQuantity(ctx, "nonexistent", 7)
	if len(state.Cart.Items) != 1 || state.Cart.Items[0].Quantity != 2 {
		t.Fatalf("update of unknown id must not change the cart: %+v", state.Cart)
	}
}

func TestRemoveItemEmitsConfirmation(t *testing.T) {
	ctx := context.Background()
	var last string
	store := NewStore(ctx, kv.NewMemory(), "cart", WithNotifier(func(msg string) { last = msg }))
	product, variant := testProduct("p1", 250)
	state, _ := store.AddItem(ctx, product, variant, 1)
	if last != "Product p1 added to cart" {
		t.Fatalf("unexpected add confirmation %q", last)
	}

	store.RemoveItem(ctx, state.Cart.Items[0].ID)
	if last != "Product p1 removed from cart" {
		t.Fatalf("unexpected remove confirmation %q", last)
	}
}

func TestClearReplacesCartWithFreshOne(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 100)
	before, _ := store.AddItem(ctx, product, variant, 1)

	state := store.Clear(ctx)
	if len(state.Cart.Items) != 0 || state.Cart.SubtotalCents != 0 || state.Cart.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Cart)
	}
	if state.Cart.ID == before.Cart.ID {
		t.Fatalf("clear must generate a new cart id")
	}
}

func TestToggleOpenCloseNeverTouchItems(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, kv.NewMemory(), "cart")
	product, variant := testProduct("p1", 100)
	store.AddItem(ctx, product, variant, 1)
	store.Close(ctx)

	state := store.Toggle(ctx)
	if !state.IsOpen {
		t.Fatalf("toggle from closed should open")
	}
	state = store.Toggle(ctx)
	if state.IsOpen {
		t.Fatalf("toggle from open should close")
	}
	state = store.Open(ctx)
	if !state.IsOpen {
		t.Fatalf("open should open")
	}
	state = store.Close(ctx)
	if state.IsOpen {
		t.Fatalf("close should close")
	}
	if len(state.Cart.Items) != 1 {
		t.Fatalf("visibility commands must not touch items")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemory()

	store := NewStore(ctx, slot, "cart")
	p1, v1 := testProduct("p1", 100)
	p2, v2 := testProduct("p2", 2500)
	p3, v3 := testProduct("p3", 999)
	store.AddItem(ctx, p1, v1, 1)
	store.AddItem(ctx, p2, v2, 2)
	saved, _ := store.AddItem(ctx, p3, v3, 3)

	restored := NewStore(ctx, slot, "cart").State()
	if restored.Cart.ID != saved.Cart.ID {
		t.Fatalf("cart id not restored: %s vs %s", restored.Cart.ID, saved.Cart.ID)
	}
	if len(restored.Cart.Items) != 3 {
		t.Fatalf("expected 3 restored lines, got %d", len(restored.Cart.Items))
	}
	for i, item := range restored.Cart.Items {
		want := saved.Cart.Items[i]
		if item.ID != want.ID || item.ProductID != want.ProductID || item.VariantID != want.VariantID || item.Quantity != want.Quantity {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, item, want)
		}
	}
	if restored.Cart.SubtotalCents != saved.Cart.SubtotalCents || restored.Cart.ItemCount != saved.Cart.ItemCount {
		t.Fatalf("totals mismatch: %+v vs %+v", restored.Cart, saved.Cart)
	}
	if restored.IsOpen {
		t.Fatalf("visibility flag must not be persisted")
	}
}

func TestRehydrateRecomputesTamperedTotals(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemory()

	cart := domain.Cart{ID: "c1", SubtotalCents: 999999, ItemCount: 42}
	p, v := testProduct("p1", 300)
	cart.Items = []domain.CartItem{{ID: "l1", ProductID: p.ID, VariantID: v.ID, Quantity: 2, Product: p, Variant: v}}
	raw, _ := json.Marshal(cart)
	slot.Set(ctx, "cart", raw)

	state := NewStore(ctx, slot, "cart").State()
	if state.Cart.SubtotalCents != 600 || state.Cart.ItemCount != 2 {
		t.Fatalf("totals must be recomputed on rehydrate, got %+v", state.Cart)
	}
}

func TestMalformedSlotFallsBackToEmptyCart(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemory()
	slot.Set(ctx, "cart", []byte(`{"id": nope`))

	state := NewStore(ctx, slot, "cart").State()
	if len(state.Cart.Items) != 0 || state.Cart.ID == "" {
		t.Fatalf("expected fresh empty cart, got %+v", state.Cart)
	}
}

type failingSlot struct{}

func (failingSlot) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("slot unavailable")
}

func (failingSlot) Set(context.Context, string, []byte) error {
	return errors.New("slot unavailable")
}

func TestSlotFailuresNeverSurface(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, failingSlot{}, "cart")
	product, variant := testProduct("p1", 100)
	state, err := store.AddItem(ctx, product, variant, 1)
	if err != nil {
		t.Fatalf("persist failure must not fail the mutation: %v", err)
	}
	if len(state.Cart.Items) != 1 {
		t.Fatalf("in-memory cart must stay authoritative: %+v", state.Cart)
	}
}

func TestManagerReusesAndRehydratesStores(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemory()
	m := NewManager(slot, "cart", nil)

	a := m.ForSession(ctx, "s1")
	if m.ForSession(ctx, "s1") != a {
		t.Fatalf("same session must get the same store")
	}
	if m.ForSession(ctx, "s2") == a {
		t.Fatalf("different sessions must get different stores")
	}

	product, variant := testProduct("p1", 100)
	saved, _ := a.AddItem(ctx, product, variant, 1)

	fresh := NewManager(slot, "cart", nil).ForSession(ctx, "s1").State()
	if fresh.Cart.ID != saved.Cart.ID || len(fresh.Cart.Items) != 1 {
		t.Fatalf("expected session cart to rehydrate, got %+v", fresh.Cart)
	}
	other := NewManager(slot, "cart", nil).ForSession(ctx, "s2").State()
	if len(other.Cart.Items) != 0 {
		t.Fatalf("sessions must not share carts: %+v", other.Cart)
	}
}

func TestManagerBoundsStoreCache(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemory()
	m := NewManager(slot, "cart", nil)

	product, variant := testProduct("p1", 100)
	saved, _ := m.ForSession(ctx, "keeper").AddItem(ctx, product, variant, 2)

	for i := 0; i < maxStores+10; i++ {
		m.ForSession(ctx, fmt.Sprintf("s%d", i))
	}
	if len(m.stores) > maxStores {
		t.Fatalf("store cache must stay bounded, got %d", len(m.stores))
	}

	// Whether or not "keeper" was evicted, its cart survives via the slot.
	state := m.ForSession(ctx, "keeper").State()
	if state.Cart.ID != saved.Cart.ID || len(state.Cart.Items) != 1 || state.Cart.Items[0].Quantity != 2 {
		t.Fatalf("evicted session must rehydrate its cart, got %+v", state.Cart)
	}
}
