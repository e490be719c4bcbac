package catalog

import "context"

// Repository defines the interface for product storage and the
// vendor-product link. AssignToVendor surfaces reference_violation if either
// side of the link does not exist and duplicate_key if it already does.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*Product, error)

	AssignToVendor(ctx context.Context, vendorID, productID string) error
	UnassignFromVendor(ctx context.Context, vendorID, productID string) error
	ListByVendor(ctx context.Context, vendorID string) ([]*Product, error)
}
