package store

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a managed storefront.
// @Description Store information
// @Description with id, name, default_currency, metadata, created_at, and updated_at
type Store struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	DefaultCurrency string            `json:"default_currency"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
