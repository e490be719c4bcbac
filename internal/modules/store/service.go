package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
	"github.com/oab26/medusa-colabship/internal/modules/user"
	"github.com/oab26/medusa-colabship/internal/saga"
)

// ActorTypeUser is the app-metadata key that binds an auth identity to a
// store admin user.
const ActorTypeUser = "user"

// MetadataStoreID is the app-metadata key naming the store an admin manages.
const MetadataStoreID = "store_id"

type Service interface {
	// ProvisionStore creates a store, its admin user, and the admin's auth
	// identity as one atomic unit, rolling back on any failure.
	ProvisionStore(ctx context.Context, input ProvisionStoreInput) (*ProvisionStoreResult, error)
	GetStore(ctx context.Context, id string) (*Store, error)
}

// ProvisionStoreInput carries a parsed store-provisioning request.
type ProvisionStoreInput struct {
	StoreName       string            `json:"store_name"`
	DefaultCurrency string            `json:"default_currency,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`

	AdminEmail     string `json:"admin_email"`
	AdminPassword  string `json:"admin_password"`
	AdminFirstName string `json:"admin_first_name,omitempty"`
	AdminLastName  string `json:"admin_last_name,omitempty"`
}

func (in ProvisionStoreInput) validate() error {
	switch {
	case in.StoreName == "":
		return apperror.New(apperror.Validation, "store_name is required")
	case in.AdminEmail == "":
		return apperror.New(apperror.Validation, "admin_email is required")
	case in.AdminPassword == "":
		return apperror.New(apperror.Validation, "admin_password is required")
	}
	return nil
}

// ProvisionedAdmin is the admin portion of a store-provisioning result.
type ProvisionedAdmin struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	AuthIdentityID string    `json:"auth_identity_id"`
}

// ProvisionStoreResult is returned to the caller on success.
type ProvisionStoreResult struct {
	Store *Store           `json:"store"`
	Admin ProvisionedAdmin `json:"admin"`
}

type service struct {
	repo     Repository
	users    user.Repository
	identity auth.Provider
	sagas    *saga.Executor
}

// NewService creates a new store service.
func NewService(repo Repository, users user.Repository, identity auth.Provider, sagas *saga.Executor) Service {
	return &service{repo: repo, users: users, identity: identity, sagas: sagas}
}

func (s *service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetStoreByID(ctx, id)
}

// storeAdminToken is the create-store-admin compensation token.
type storeAdminToken struct {
	userID     string
	identityID string
}

// ProvisionStore mirrors the vendor provisioning saga:
//
//	create-store -> create-store-admin -> attach-actor-metadata
func (s *service) ProvisionStore(ctx context.Context, input ProvisionStoreInput) (*ProvisionStoreResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	currency := input.DefaultCurrency
	if currency == "" {
		currency = "usd"
	}

	var (
		st       *Store
		admin    *user.User
		identity *auth.Identity
	)

	createStore := saga.New("create-store",
		func(ctx context.Context) (string, error) {
			candidate := &Store{
				ID:              uuid.New(),
				Name:            input.StoreName,
				DefaultCurrency: currency,
				Metadata:        input.Metadata,
			}
			if err := s.repo.CreateStore(ctx, candidate); err != nil {
				return "", err
			}
			st = candidate
			return candidate.ID.String(), nil
		},
		func(ctx context.Context, id string) error {
			if id == "" {
				return nil
			}
			return s.repo.DeleteStore(ctx, id)
		},
	)

	createAdmin := saga.New("create-store-admin",
		func(ctx context.Context) (storeAdminToken, error) {
			var token storeAdminToken

			u := &user.User{
				ID:        uuid.New(),
				Email:     input.AdminEmail,
				FirstName: input.AdminFirstName,
				LastName:  input.AdminLastName,
			}
			if err := s.users.CreateUser(ctx, u); err != nil {
				return token, err
			}
			token.userID = u.ID.String()

			ident, err := s.identity.CreateIdentity(ctx, auth.ProviderEmailPass, input.AdminEmail, input.AdminPassword)
			if err != nil {
				return token, err
			}
			token.identityID = ident.ID.String()

			admin = u
			identity = ident
			return token, nil
		},
		func(ctx context.Context, token storeAdminToken) error {
			var errs *multierror.Error
			if token.identityID != "" {
				errs = multierror.Append(errs, s.identity.DeleteIdentity(ctx, token.identityID))
			}
			if token.userID != "" {
				errs = multierror.Append(errs, s.users.DeleteUser(ctx, token.userID))
			}
			return errs.ErrorOrNil()
		},
	)

	attachActor := saga.New("attach-actor-metadata",
		func(ctx context.Context) (string, error) {
			id := identity.ID.String()
			if err := s.identity.SetAppMetadata(ctx, id, ActorTypeUser, admin.ID.String()); err != nil {
				return "", err
			}
			if err := s.identity.SetAppMetadata(ctx, id, MetadataStoreID, st.ID.String()); err != nil {
				// Actor binding is already durable; hand it to compensation.
				return id, err
			}
			return id, nil
		},
		func(ctx context.Context, identityID string) error {
			if identityID == "" {
				return nil
			}
			var errs *multierror.Error
			errs = multierror.Append(errs, s.identity.RemoveAppMetadata(ctx, identityID, MetadataStoreID))
			errs = multierror.Append(errs, s.identity.RemoveAppMetadata(ctx, identityID, ActorTypeUser))
			return errs.ErrorOrNil()
		},
	)

	if err := s.sagas.Run(ctx, "provision-store", createStore, createAdmin, attachActor); err != nil {
		return nil, err
	}

	return &ProvisionStoreResult{
		Store: st,
		Admin: ProvisionedAdmin{
			ID:             admin.ID,
			Email:          admin.Email,
			AuthIdentityID: identity.ID.String(),
		},
	}, nil
}
