package domain

// CartItem is one cart line. ID is unique per line and distinct from
// ProductID/VariantID. Product and Variant are snapshots taken at add time;
// upstream price or availability changes are not reflected until re-added.
type CartItem struct {
	ID        string         `json:"id"`
	ProductID string         `json:"productId"`
	VariantID string         `json:"variantId"`
	Quantity  int            `json:"quantity"`
	Product   Product        `json:"product"`
	Variant   ProductVariant `json:"variant"`
}

// Cart holds line items plus totals. SubtotalCents and ItemCount are always
// recomputed from Items, never mutated independently.
type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotal"`
	ItemCount     int        `json:"itemCount"`
}
