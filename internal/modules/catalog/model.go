package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a product in the store catalog. Vendors claim products through
// the vendor-product link rather than owning rows here.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	SKU         string    `json:"sku,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
