package store

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oab26/medusa-colabship/internal/apperror"
	"github.com/oab26/medusa-colabship/internal/modules/auth"
	"github.com/oab26/medusa-colabship/internal/modules/user"
	"github.com/oab26/medusa-colabship/internal/saga"
)

type memStores struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func (m *memStores) CreateStore(ctx context.Context, s *Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[s.ID.String()] = s
	return nil
}

func (m *memStores) DeleteStore(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, id)
	return nil
}

func (m *memStores) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[id]; ok {
		return s, nil
	}
	return nil, apperror.New(apperror.NotFound, "store not found")
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func (m *memUsers) CreateUser(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperror.New(apperror.Duplicate, "email already exists")
		}
	}
	m.users[u.ID.String()] = u
	return nil
}

func (m *memUsers) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperror.New(apperror.NotFound, "user not found")
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.New(apperror.NotFound, "user not found")
}

type memIdentities struct {
	mu         sync.Mutex
	identities map[string]*auth.Identity
	rejectAll  bool
}

func (m *memIdentities) CreateIdentity(ctx context.Context, provider, entityID, password string) (*auth.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejectAll {
		return nil, apperror.New(apperror.CredentialPolicy, "password rejected")
	}
	identity := &auth.Identity{
		ID:          uuid.New(),
		Provider:    provider,
		EntityID:    entityID,
		AppMetadata: map[string]string{},
	}
	m.identities[identity.ID.String()] = identity
	return identity, nil
}

func (m *memIdentities) DeleteIdentity(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.identities, id)
	return nil
}

func (m *memIdentities) SetAppMetadata(ctx context.Context, id, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.identities[id]
	if !ok {
		return apperror.New(apperror.NotFound, "identity not found")
	}
	identity.AppMetadata[key] = value
	return nil
}

func (m *memIdentities) RemoveAppMetadata(ctx context.Context, id, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if identity, ok := m.identities[id]; ok {
		delete(identity.AppMetadata, key)
	}
	return nil
}

func (m *memIdentities) Authenticate(ctx context.Context, provider, entityID, password string) (*auth.Identity, error) {
	return nil, apperror.New(apperror.NotFound, "invalid credentials")
}

func storeTestService() (Service, *memStores, *memUsers, *memIdentities) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	stores := &memStores{stores: map[string]*Store{}}
	users := &memUsers{users: map[string]*user.User{}}
	identities := &memIdentities{identities: map[string]*auth.Identity{}}
	svc := NewService(stores, users, identities, saga.NewExecutor(log))
	return svc, stores, users, identities
}

func TestProvisionStoreSuccess(t *testing.T) {
	svc, stores, users, identities := storeTestService()

	result, err := svc.ProvisionStore(context.Background(), ProvisionStoreInput{
		StoreName:     "Colab Store",
		AdminEmail:    "admin@colab.test",
		AdminPassword: "Str0ngPW!",
	})
	require.NoError(t, err)

	assert.Equal(t, "Colab Store", result.Store.Name)
	assert.Equal(t, "usd", result.Store.DefaultCurrency)
	require.Len(t, stores.stores, 1)
	require.Len(t, users.users, 1)
	require.Len(t, identities.identities, 1)

	identity := identities.identities[result.Admin.AuthIdentityID]
	require.NotNil(t, identity)
	assert.Equal(t, result.Admin.ID.String(), identity.AppMetadata[ActorTypeUser])
	assert.Equal(t, result.Store.ID.String(), identity.AppMetadata[MetadataStoreID])
}

func TestProvisionStoreIdentityRejectionRollsBackAll(t *testing.T) {
	svc, stores, users, identities := storeTestService()
	identities.rejectAll = true

	_, err := svc.ProvisionStore(context.Background(), ProvisionStoreInput{
		StoreName:     "Colab Store",
		AdminEmail:    "admin@colab.test",
		AdminPassword: "short",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CredentialPolicy, apperror.KindOf(err))
	assert.Empty(t, stores.stores)
	assert.Empty(t, users.users)
	assert.Empty(t, identities.identities)
}

func TestProvisionStoreValidation(t *testing.T) {
	svc, stores, _, _ := storeTestService()

	_, err := svc.ProvisionStore(context.Background(), ProvisionStoreInput{AdminEmail: "a@b.test", AdminPassword: "Str0ngPW!"})
	require.Error(t, err)
	assert.Equal(t, apperror.Validation, apperror.KindOf(err))
	assert.Empty(t, stores.stores)
}
