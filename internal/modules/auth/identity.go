package auth

import (
	"time"

	"github.com/google/uuid"
)

// ProviderEmailPass is the email + password credential provider.
const ProviderEmailPass = "emailpass"

// MinPasswordLength is the emailpass provider's credential policy. Passwords
// shorter than this are rejected before hashing.
const MinPasswordLength = 8

// Identity represents an authentication identity: one provider-scoped
// credential plus the app metadata used to resolve it to an actor at login.
// @Description Auth identity
// @Description with id, provider, entity_id, app_metadata, created_at, and updated_at
type Identity struct {
	ID           uuid.UUID         `json:"id"`
	Provider     string            `json:"provider"`
	EntityID     string            `json:"entity_id"`
	PasswordHash string            `json:"-"`
	AppMetadata  map[string]string `json:"app_metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Actor is the application-level principal an identity resolves to.
type Actor struct {
	ID   string `json:"actor_id"`
	Type string `json:"actor_type"`
}
