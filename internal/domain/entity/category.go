package entity

import "time"

// Category groups products; its code prefixes generated SKUs
type Category struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Code      string        `json:"code"`
	Count     CategoryCount `json:"_count"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CategoryCount carries derived counts
type CategoryCount struct {
	Products int `json:"products"`
}

// ProductCount returns the number of products the backend reported for the category
func (c *Category) ProductCount() int {
	return c.Count.Products
}

// CategoryRef is the short category reference embedded in products
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CategoryInput is the create/update body for a category
type CategoryInput struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}
