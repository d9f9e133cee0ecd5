// Package fixture holds the built-in demo catalog used when no database or
// remote commerce API is configured, and as seed data for postgres.
package fixture

import (
	"time"

	"storefront/internal/domain"
)

func cents(v int64) *int64 { return &v }

func at(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Collections returns the demo collections in display order, with product
// counts derived from Products.
func Collections() []domain.Collection {
	collections := []domain.Collection{
		{
			ID:          "col-new-arrivals",
			Slug:        "new-arrivals",
			Title:       "New Arrivals",
			Description: "The latest additions to the store",
			Image:       &domain.ProductImage{ID: "col-img-1", URL: "https://images.example.com/collections/new-arrivals.jpg", AltText: "New arrivals"},
		},
		{
			ID:          "col-apparel",
			Slug:        "apparel",
			Title:       "Apparel",
			Description: "Tees, hoodies and everyday wear",
			Image:       &domain.ProductImage{ID: "col-img-2", URL: "https://images.example.com/collections/apparel.jpg", AltText: "Apparel"},
		},
		{
			ID:          "col-accessories",
			Slug:        "accessories",
			Title:       "Accessories",
			Description: "Bags, caps and the little things",
			Image:       &domain.ProductImage{ID: "col-img-3", URL: "https://images.example.com/collections/accessories.jpg", AltText: "Accessories"},
		},
		{
			ID:          "col-sale",
			Slug:        "sale",
			Title:       "Sale",
			Description: "Marked-down favorites",
			Image:       &domain.ProductImage{ID: "col-img-4", URL: "https://images.example.com/collections/sale.jpg", AltText: "Sale"},
		},
	}

	counts := make(map[string]int)
	for _, p := range Products() {
		for _, slug := range p.Collections {
			counts[slug]++
		}
	}
	for i := range collections {
		collections[i].ProductCount = counts[collections[i].Slug]
	}
	return collections
}

// Products returns the demo catalog. Order matters: it is the "featured"
// order. Each product's variants are option-unique.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod-classic-tee",
			Slug:        "classic-tee",
			Title:       "Classic Tee",
			Description: "A soft, midweight cotton tee with a relaxed fit.",
			PriceCents:  1999,
			Images: []domain.ProductImage{
				{ID: "tee-1", URL: "https://images.example.com/products/classic-tee-red.jpg", AltText: "Classic Tee in red", Width: 1200, Height: 1600},
				{ID: "tee-2", URL: "https://images.example.com/products/classic-tee-blue.jpg", AltText: "Classic Tee in blue", Width: 1200, Height: 1600},
			},
			Variants: []domain.ProductVariant{
				{ID: "tee-red-s", Title: "Red / S", PriceCents: 1999, Available: true, SKU: "TEE-R-S",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "S"}}},
				{ID: "tee-red-m", Title: "Red / M", PriceCents: 1999, Available: true, SKU: "TEE-R-M",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "M"}}},
				{ID: "tee-red-l", Title: "Red / L", PriceCents: 1999, Available: false, SKU: "TEE-R-L",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "L"}}},
				{ID: "tee-blue-s", Title: "Blue / S", PriceCents: 1999, Available: true, SKU: "TEE-B-S",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Blue"}, {Name: "Size", Value: "S"}}},
				{ID: "tee-blue-m", Title: "Blue / M", PriceCents: 1999, Available: true, SKU: "TEE-B-M",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Blue"}, {Name: "Size", Value: "M"}}},
			},
			Collections: []string{"new-arrivals", "apparel"},
			Tags:        []string{"tee", "cotton", "basics"},
			Available:   true,
			CreatedAt:   at(2024, 3, 18),
		},
		{
			ID:                  "prod-heavyweight-hoodie",
			Slug:                "heavyweight-hoodie",
			Title:               "Heavyweight Hoodie",
			Description:         "Brushed fleece hoodie with a double-lined hood.",
			PriceCents:          5900,
			CompareAtPriceCents: cents(7500),
			Images: []domain.ProductImage{
				{ID: "hoodie-1", URL: "https://images.example.com/products/heavyweight-hoodie.jpg", AltText: "Heavyweight Hoodie", Width: 1200, Height: 1600},
			},
			Variants: []domain.ProductVariant{
				{ID: "hoodie-black-m", Title: "Black / M", PriceCents: 5900, CompareAtPriceCents: cents(7500), Available: true, SKU: "HOOD-BLK-M",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Black"}, {Name: "Size", Value: "M"}}},
				{ID: "hoodie-black-l", Title: "Black / L", PriceCents: 5900, CompareAtPriceCents: cents(7500), Available: true, SKU: "HOOD-BLK-L",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Black"}, {Name: "Size", Value: "L"}}},
				{ID: "hoodie-grey-m", Title: "Grey / M", PriceCents: 5900, CompareAtPriceCents: cents(7500), Available: false, SKU: "HOOD-GRY-M",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Grey"}, {Name: "Size", Value: "M"}}},
			},
			Collections: []string{"apparel", "sale"},
			Tags:        []string{"hoodie", "fleece", "winter"},
			Available:   true,
			CreatedAt:   at(2024, 2, 9),
		},
		{
			ID:          "prod-leather-tote",
			Slug:        "leather-tote",
			Title:       "Leather Tote",
			Description: "Full-grain leather tote that ages with use.",
			PriceCents:  14900,
			Images: []domain.ProductImage{
				{ID: "tote-1", URL: "https://images.example.com/products/leather-tote.jpg", AltText: "Leather Tote", Width: 1200, Height: 1600},
			},
			Variants: []domain.ProductVariant{
				{ID: "tote-tan", Title: "Tan", PriceCents: 14900, Available: true, SKU: "TOTE-TAN",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Tan"}}},
				{ID: "tote-brown", Title: "Brown", PriceCents: 14900, Available: true, SKU: "TOTE-BRN",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Brown"}}},
			},
			Collections: []string{"accessories"},
			Tags:        []string{"bag", "leather"},
			Available:   true,
			CreatedAt:   at(2024, 1, 22),
		},
		{
			ID:          "prod-wool-beanie",
			Slug:        "wool-beanie",
			Title:       "Wool Beanie",
			Description: "Ribbed merino beanie, one size.",
			PriceCents:  2400,
			Images: []domain.ProductImage{
				{ID: "beanie-1", URL: "https://images.example.com/products/wool-beanie.jpg", AltText: "Wool Beanie", Width: 1200, Height: 1600},
			},
			Variants: []domain.ProductVariant{
				{ID: "beanie-navy", Title: "Navy", PriceCents: 2400, Available: true, SKU: "BEAN-NVY",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Navy"}}},
				{ID: "beanie-oat", Title: "Oat", PriceCents: 2400, Available: false, SKU: "BEAN-OAT",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Oat"}}},
			},
			Collections: []string{"new-arrivals", "accessories"},
			Tags:        []string{"beanie", "wool", "winter"},
			Available:   true,
			CreatedAt:   at(2024, 3, 25),
		},
		{
			ID:                  "prod-canvas-sneaker",
			Slug:                "canvas-sneaker",
			Title:               "Canvas Sneaker",
			Description:         "Low-top canvas sneaker with a vulcanized sole.",
			PriceCents:          4300,
			CompareAtPriceCents: cents(5400),
			Images: []domain.ProductImage{
				{ID: "sneaker-1", URL: "https://images.example.com/products/canvas-sneaker.jpg", AltText: "Canvas Sneaker", Width: 1200, Height: 1600},
			},
			Variants: []domain.ProductVariant{
				{ID: "sneaker-white-42", Title: "White / 42", PriceCents: 4300, CompareAtPriceCents: cents(5400), Available: true, SKU: "SNKR-WHT-42",
					Options: []domain.SelectedOption{{Name: "Color", Value: "White"}, {Name: "Size", Value: "42"}}},
				{ID: "sneaker-white-43", Title: "White / 43", PriceCents: 4300, CompareAtPriceCents: cents(5400), Available: true, SKU: "SNKR-WHT-43",
					Options: []domain.SelectedOption{{Name: "Color", Value: "White"}, {Name: "Size", Value: "43"}}},
				{ID: "sneaker-black-42", Title: "Black / 42", PriceCents: 4300, CompareAtPriceCents: cents(5400), Available: false, SKU: "SNKR-BLK-42",
					Options: []domain.SelectedOption{{Name: "Color", Value: "Black"}, {Name: "Size", Value: "42"}}},
			},
			Collections: []string{"sale"},
			Tags:        []string{"sneaker", "canvas", "shoes"},
			Available:   true,
			CreatedAt:   at(2023, 11, 30),
		},
		{
			ID:          "prod-enamel-mug",
			Slug:        "enamel-mug",
			Title:       "Enamel Mug",
			Description: "Campfire-proof enamel mug, 350 ml.",
			PriceCents:  1299,
			Images: []domain.ProductImage{
				{ID: "mug-1", URL: "https://images.example.com/products/enamel-mug.jpg", AltText: "Enamel Mug", Width: 1200, Height: 1200},
			},
			Variants: []domain.ProductVariant{
				{ID: "mug-default", Title: "Default", PriceCents: 1299, Available: false, SKU: "MUG-ENML",
					Options: []domain.SelectedOption{}},
			},
			Collections: []string{"accessories"},
			Tags:        []string{"mug", "kitchen"},
			Available:   false,
			CreatedAt:   at(2023, 9, 14),
		},
	}
}
