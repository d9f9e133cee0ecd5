package domain

type Collection struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Image        *ProductImage `json:"image,omitempty"`
	ProductCount int           `json:"productCount"`
}
