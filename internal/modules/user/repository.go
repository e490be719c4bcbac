package user

import "context"

// Repository defines the interface for user data storage. CreateUser surfaces
// a duplicate_key error on an existing email; DeleteUser treats a missing row
// as success.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
