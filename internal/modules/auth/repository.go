package auth

import "context"

// Repository defines the interface for identity storage.
type Repository interface {
	CreateIdentity(ctx context.Context, identity *Identity) error
	DeleteIdentity(ctx context.Context, id string) error
	GetIdentityByEntity(ctx context.Context, provider, entityID string) (*Identity, error)
	SetAppMetadata(ctx context.Context, id, key, value string) error
	RemoveAppMetadata(ctx context.Context, id, key string) error
}
