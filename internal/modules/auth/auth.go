package auth

import "context"

// Provider is the identity-provider contract consumed by the provisioning
// workflows. It owns credential storage and hashing; callers hand over a
// plaintext password exactly once, on CreateIdentity.
type Provider interface {
	// CreateIdentity stores a new identity for provider/entityID. Fails with
	// a duplicate_key error if one already exists, or
	// credential_policy_violation if the password fails the provider policy.
	CreateIdentity(ctx context.Context, provider, entityID, password string) (*Identity, error)
	// DeleteIdentity removes an identity. A missing identity is not an error.
	DeleteIdentity(ctx context.Context, id string) error
	// SetAppMetadata merges key=value into the identity's app metadata.
	// Fails with not_found if the identity does not exist.
	SetAppMetadata(ctx context.Context, id, key, value string) error
	// RemoveAppMetadata deletes one key from the identity's app metadata.
	// Missing identity or key is not an error.
	RemoveAppMetadata(ctx context.Context, id, key string) error
	// Authenticate verifies provider/entityID/password and returns the
	// matching identity with its app metadata.
	Authenticate(ctx context.Context, provider, entityID, password string) (*Identity, error)
}

// Service defines login-facing business logic on top of Provider.
type Service interface {
	// Login authenticates an emailpass credential and issues a signed token
	// for the actor the identity's app metadata binds it to.
	Login(ctx context.Context, actorType, email, password string) (string, error)
}
