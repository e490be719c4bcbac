package store

import "context"

// Repository defines the interface for store data storage.
type Repository interface {
	CreateStore(ctx context.Context, store *Store) error
	DeleteStore(ctx context.Context, id string) error
	GetStoreByID(ctx context.Context, id string) (*Store, error)
}
