package domain

import "time"

// SelectedOption is one named option choice on a variant, e.g. Color=Red.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// ProductVariant is one purchasable configuration of a product. Within a
// product's variant list no two variants share the same option-value
// combination; the resolver relies on that and falls back to first match in
// list order if catalog data violates it.
type ProductVariant struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	PriceCents          int64            `json:"priceCents"`
	CompareAtPriceCents *int64           `json:"compareAtPriceCents,omitempty"`
	Available           bool             `json:"available"`
	SKU                 string           `json:"sku"`
	Options             []SelectedOption `json:"options"`
}

// Product carries a compareAtPriceCents that, when present, is expected to
// exceed priceCents. That is a property of the catalog data, not enforced here.
type Product struct {
	ID                  string           `json:"id"`
	Slug                string           `json:"slug"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	PriceCents          int64            `json:"priceCents"`
	CompareAtPriceCents *int64           `json:"compareAtPriceCents,omitempty"`
	Images              []ProductImage   `json:"images"`
	Variants            []ProductVariant `json:"variants"`
	Collections         []string         `json:"collections"`
	Tags                []string         `json:"tags"`
	Available           bool             `json:"available"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// Variant returns the variant with the given id, or nil.
func (p Product) Variant(id string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}
