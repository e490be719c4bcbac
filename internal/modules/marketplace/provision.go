package marketplace

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
	"github.com/oab26/medusa-colabship/internal/saga"
)

// ActorTypeVendor is the app-metadata key that binds an auth identity to a
// vendor admin. Login with actor type "vendor" resolves through it.
const ActorTypeVendor = "vendor"

// ProvisionVendorInput carries the already-parsed request for one
// provisioning run. Handle presence is not checked here: whether a vendor
// may be created without a handle is the record store's policy.
type ProvisionVendorInput struct {
	Handle  string `json:"handle"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`

	AdminEmail     string `json:"admin_email"`
	AdminPassword  string `json:"admin_password"`
	AdminFirstName string `json:"admin_first_name"`
	AdminLastName  string `json:"admin_last_name"`
}

func (in ProvisionVendorInput) validate() error {
	switch {
	case in.Name == "":
		return apperror.New(apperror.Validation, "name is required")
	case in.AdminEmail == "":
		return apperror.New(apperror.Validation, "admin_email is required")
	case in.AdminPassword == "":
		return apperror.New(apperror.Validation, "admin_password is required")
	case in.AdminFirstName == "":
		return apperror.New(apperror.Validation, "admin_first_name is required")
	case in.AdminLastName == "":
		return apperror.New(apperror.Validation, "admin_last_name is required")
	}
	return nil
}

// ProvisionedAdmin is the admin portion of a provisioning result.
type ProvisionedAdmin struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	AuthIdentityID string    `json:"auth_identity_id"`
}

// ProvisionVendorResult is returned to the caller on success.
type ProvisionVendorResult struct {
	Vendor      *Vendor          `json:"vendor"`
	VendorAdmin ProvisionedAdmin `json:"vendor_admin"`
}

// vendorAdminToken is the create-vendor-admin compensation token. Either
// field may be empty if that sub-creation never completed.
type vendorAdminToken struct {
	adminID    string
	identityID string
}

// ProvisionVendor runs the saga
//
//	create-vendor -> create-vendor-admin -> attach-actor-metadata
//
// threading each step's output into the next. Each step records its own
// compensation token; on failure the executor undoes completed steps in
// reverse order and the original failure is what the caller sees.
func (s *service) ProvisionVendor(ctx context.Context, input ProvisionVendorInput) (*ProvisionVendorResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		vendor   *Vendor
		admin    *VendorAdmin
		identity *auth.Identity
	)

	createVendor := saga.New("create-vendor",
		func(ctx context.Context) (string, error) {
			v := &Vendor{
				ID:      uuid.New(),
				Handle:  input.Handle,
				Name:    input.Name,
				LogoURL: input.LogoURL,
			}
			if err := s.repo.CreateVendor(ctx, v); err != nil {
				return "", err
			}
			vendor = v
			return v.ID.String(), nil
		},
		func(ctx context.Context, id string) error {
			if id == "" {
				return nil
			}
			return s.repo.DeleteVendor(ctx, id)
		},
	)

	createAdmin := saga.New("create-vendor-admin",
		func(ctx context.Context) (vendorAdminToken, error) {
			var token vendorAdminToken

			a := &VendorAdmin{
				ID:        uuid.New(),
				VendorID:  vendor.ID,
				Email:     input.AdminEmail,
				FirstName: input.AdminFirstName,
				LastName:  input.AdminLastName,
			}
			if err := s.repo.CreateVendorAdmin(ctx, a); err != nil {
				return token, err
			}
			token.adminID = a.ID.String()

			// The admin row is durable at this point. If identity creation
			// fails the partial token above still gets compensated.
			ident, err := s.identity.CreateIdentity(ctx, auth.ProviderEmailPass, input.AdminEmail, input.AdminPassword)
			if err != nil {
				return token, err
			}
			token.identityID = ident.ID.String()

			admin = a
			identity = ident
			return token, nil
		},
		func(ctx context.Context, token vendorAdminToken) error {
			// Identity first: a credential must not outlive the admin record
			// it authenticates. The two deletions are independent; one
			// failing does not skip the other.
			var errs *multierror.Error
			if token.identityID != "" {
				errs = multierror.Append(errs, s.identity.DeleteIdentity(ctx, token.identityID))
			}
			if token.adminID != "" {
				errs = multierror.Append(errs, s.repo.DeleteVendorAdmin(ctx, token.adminID))
			}
			return errs.ErrorOrNil()
		},
	)

	attachActor := saga.New("attach-actor-metadata",
		func(ctx context.Context) (string, error) {
			id := identity.ID.String()
			if err := s.identity.SetAppMetadata(ctx, id, ActorTypeVendor, admin.ID.String()); err != nil {
				return "", err
			}
			return id, nil
		},
		func(ctx context.Context, identityID string) error {
			if identityID == "" {
				return nil
			}
			return s.identity.RemoveAppMetadata(ctx, identityID, ActorTypeVendor)
		},
	)

	if err := s.sagas.Run(ctx, "provision-vendor", createVendor, createAdmin, attachActor); err != nil {
		return nil, err
	}

	return &ProvisionVendorResult{
		Vendor: vendor,
		VendorAdmin: ProvisionedAdmin{
			ID:             admin.ID,
			Email:          admin.Email,
			AuthIdentityID: identity.ID.String(),
		},
	}, nil
}
