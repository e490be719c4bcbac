package marketplace

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a marketplace seller.
// @Description Vendor information
// @Description with id, handle, name, logo_url, created_at, and updated_at
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VendorAdmin represents an administrator account scoped to one vendor.
// The vendor reference is set at creation and never changes.
// @Description Vendor admin information
// @Description with id, vendor_id, email, first_name, last_name, created_at, and updated_at
type VendorAdmin struct {
	ID       uuid.UUID `json:"id"`
	VendorID uuid.UUID `json:"vendor_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
