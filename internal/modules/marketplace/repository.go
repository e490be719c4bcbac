package marketplace

import "context"

// Repository defines the interface for vendor and vendor-admin storage.
// Create operations surface duplicate_key / reference_violation /
// validation_failure kinds; delete operations treat a missing row as success.
type Repository interface {
	CreateVendor(ctx context.Context, vendor *Vendor) error
	DeleteVendor(ctx context.Context, id string) error
	GetVendorByID(ctx context.Context, id string) (*Vendor, error)
	GetVendorByHandle(ctx context.Context, handle string) (*Vendor, error)

	CreateVendorAdmin(ctx context.Context, admin *VendorAdmin) error
	DeleteVendorAdmin(ctx context.Context, id string) error
	GetVendorAdminByID(ctx context.Context, id string) (*VendorAdmin, error)
}
