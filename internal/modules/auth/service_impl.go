package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oab26/medusa-colabship/internal/apperror"
)

type providerService struct {
	repo Repository
}

// NewProvider creates the identity provider backed by repo.
func NewProvider(repo Repository) Provider {
	return &providerService{repo: repo}
}

func (s *providerService) CreateIdentity(ctx context.Context, provider, entityID, password string) (*Identity, error) {
	if provider == "" || entityID == "" {
		return nil, apperror.New(apperror.Validation, "provider and entity_id are required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.Newf(apperror.CredentialPolicy, "password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.CredentialPolicy, "hash password", err)
	}

	identity := &Identity{
		ID:           uuid.New(),
		Provider:     provider,
		EntityID:     entityID,
		PasswordHash: string(hash),
		AppMetadata:  map[string]string{},
	}
	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *providerService) DeleteIdentity(ctx context.Context, id string) error {
	err := s.repo.DeleteIdentity(ctx, id)
	if apperror.Is(err, apperror.NotFound) {
		return nil
	}
	return err
}

func (s *providerService) SetAppMetadata(ctx context.Context, id, key, value string) error {
	return s.repo.SetAppMetadata(ctx, id, key, value)
}

func (s *providerService) RemoveAppMetadata(ctx context.Context, id, key string) error {
	err := s.repo.RemoveAppMetadata(ctx, id, key)
	if apperror.Is(err, apperror.NotFound) {
		return nil
	}
	return err
}

func (s *providerService) Authenticate(ctx context.Context, provider, entityID, password string) (*Identity, error) {
	identity, err := s.repo.GetIdentityByEntity(ctx, provider, entityID)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, apperror.New(apperror.NotFound, "invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(apperror.NotFound, "invalid credentials")
	}
	return identity, nil
}

type service struct {
	provider Provider
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates the login service. Tokens are HS256 JWTs carrying the
// actor id and type resolved from the identity's app metadata.
func NewService(provider Provider, secret []byte) Service {
	return &service{provider: provider, secret: secret, tokenTTL: 24 * time.Hour}
}

// Claims are the token claims issued on login and checked by the middleware.
type Claims struct {
	ActorID   string `json:"actor_id"`
	ActorType string `json:"actor_type"`
	jwt.StandardClaims
}

func (s *service) Login(ctx context.Context, actorType, email, password string) (string, error) {
	identity, err := s.provider.Authenticate(ctx, ProviderEmailPass, email, password)
	if err != nil {
		return "", err
	}

	actorID, ok := identity.AppMetadata[actorType]
	if !ok || actorID == "" {
		return "", apperror.Newf(apperror.NotFound, "identity has no %s actor", actorType)
	}

	claims := &Claims{
		ActorID:   actorID,
		ActorType: actorType,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.ID.String(),
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.Wrap(apperror.Unavailable, "sign token", err)
	}
	return signed, nil
}
