package marketplace

import (
	"context"

	"github.com/oab26/medusa-colabship/internal/modules/auth"
	"github.com/oab26/medusa-colabship/internal/saga"
)

type Service interface {
	// ProvisionVendor creates a vendor, its first admin, and the admin's
	// auth identity as one atomic unit: on any failure every record created
	// so far is removed before the error is returned.
	ProvisionVendor(ctx context.Context, input ProvisionVendorInput) (*ProvisionVendorResult, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
	GetVendorAdmin(ctx context.Context, id string) (*VendorAdmin, error)
}

type service struct {
	repo     Repository
	identity auth.Provider
	sagas    *saga.Executor
}

// NewService creates a new marketplace service. The record store and the
// identity provider are independent persistence domains; the service keeps
// them consistent through the provisioning saga.
func NewService(repo Repository, identity auth.Provider, sagas *saga.Executor) Service {
	return &service{repo: repo, identity: identity, sagas: sagas}
}

func (s *service) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	return s.repo.GetVendorByID(ctx, id)
}

func (s *service) GetVendorAdmin(ctx context.Context, id string) (*VendorAdmin, error) {
	return s.repo.GetVendorAdminByID(ctx, id)
}
